package rules

// Patterns are case-insensitive regexp2 sources. Order matters: the first
// match wins, so narrow rules sit above the broader ones they overlap.
var defaultPatterns = []CommandRule{
	// Filesystem
	{Pattern: `\brm\s+(?:-\S+\s+)*-[a-z]*(?:r[a-z]*f|f[a-z]*r)[a-z]*\s+(?:/|~/?|\$HOME/?)(?:\*)?(?:\s|$)`, Reason: "rm -rf on root or home directory", Action: ActionBlock},
	{Pattern: `\bsudo\s+rm\b`, Reason: "sudo rm", Action: ActionBlock},
	{Pattern: `\brm\s+(?:-\S+\s+)*-[a-z]*[rf]`, Reason: "rm with recursive or force flags", Action: ActionAsk},
	{Pattern: `\brm\s+(?:\S+\s+)*--(?:recursive|force)\b`, Reason: "rm with --recursive or --force", Action: ActionAsk},
	{Pattern: `\bchmod\s+(?:-\S+\s+)*0?777\b`, Reason: "chmod 777", Action: ActionBlock},
	{Pattern: `\b(?:chmod|chown)\s+(?:-\S+\s+)*(?-i:-R)\b`, Reason: "recursive chmod/chown", Action: ActionAsk},
	{Pattern: `\bmkfs(?:\.\w+)?\b`, Reason: "mkfs (format filesystem)", Action: ActionBlock},
	{Pattern: `\bdd\s+.*\bof=/dev/`, Reason: "dd to a device", Action: ActionBlock},
	{Pattern: `>\s*/dev/(?:sd|nvme|hd|vd|disk)`, Reason: "redirect to a block device", Action: ActionBlock},
	{Pattern: `:\(\)\s*\{\s*:\s*\|\s*:\s*&\s*\}\s*;\s*:`, Reason: "fork bomb", Action: ActionBlock},
	{Pattern: `\bkill\s+-9\s+-1\b`, Reason: "kill all processes", Action: ActionBlock},
	{Pattern: `\b(?:curl|wget)\b[^|]*\|\s*(?:sudo\s+)?(?:ba|z|k|da)?sh\b`, Reason: "pipe remote script to shell", Action: ActionAsk},

	// Git
	{Pattern: `\bgit\s+reset\s+--hard\b`, Reason: "git reset --hard discards uncommitted changes", Action: ActionAsk},
	{Pattern: `\bgit\s+push\b.*\s--force(?!-with-lease)`, Reason: "git push --force (use --force-with-lease)", Action: ActionBlock},
	{Pattern: `\bgit\s+push\b.*\s-[a-z]*f\b`, Reason: "git push -f (use --force-with-lease)", Action: ActionBlock},
	{Pattern: `\bgit\s+clean\s+(?:-\S+\s+)*-[a-z]*f`, Reason: "git clean -f deletes untracked files", Action: ActionAsk},
	{Pattern: `\bgit\s+branch\s+(?:\S+\s+)*(?-i:-D)\b`, Reason: "git branch -D", Action: ActionAsk},
	{Pattern: `\bgit\s+checkout\s+(?:--\s+)?\.(?:\s|$)`, Reason: "git checkout . discards working tree changes", Action: ActionAsk},
	{Pattern: `\bgit\s+stash\s+(?:drop|clear)\b`, Reason: "git stash drop/clear", Action: ActionAsk},

	// SQL
	{Pattern: `\bDROP\s+TABLE\b`, Reason: "SQL DROP TABLE", Action: ActionBlock},
	{Pattern: `\bDROP\s+(?:DATABASE|SCHEMA)\b`, Reason: "SQL DROP DATABASE", Action: ActionBlock},
	{Pattern: `\bTRUNCATE\s+TABLE\b`, Reason: "SQL TRUNCATE TABLE", Action: ActionBlock},
	{Pattern: `\bDELETE\s+FROM\s+\w+\s*(?:;|$|["'])`, Reason: "SQL DELETE without WHERE", Action: ActionAsk},

	// Infrastructure
	{Pattern: `\bterraform\s+destroy\b`, Reason: "terraform destroy", Action: ActionAsk},
	{Pattern: `\bkubectl\s+delete\s+(?:namespace|ns|all)\b`, Reason: "kubectl delete namespace/all", Action: ActionAsk},
	{Pattern: `\baws\s+s3\s+rm\b.*--recursive`, Reason: "aws s3 rm --recursive", Action: ActionAsk},
	{Pattern: `\bdocker\s+system\s+prune\b`, Reason: "docker system prune", Action: ActionAsk},
	{Pattern: `\bgh\s+repo\s+delete\b`, Reason: "gh repo delete", Action: ActionBlock},
	{Pattern: `\b(?:shutdown|reboot|halt|poweroff)\b`, Reason: "system shutdown or reboot", Action: ActionAsk},
}

var defaultPaths = []PathRule{
	// Secrets: never touched.
	{Path: "~/.ssh/", Level: LevelZeroAccess},
	{Path: "~/.aws/", Level: LevelZeroAccess},
	{Path: "~/.gnupg/", Level: LevelZeroAccess},
	{Path: "~/.config/gcloud/", Level: LevelZeroAccess},
	{Path: "~/.azure/", Level: LevelZeroAccess},
	{Path: "~/.kube/", Level: LevelZeroAccess},
	{Path: "~/.docker/config.json", Level: LevelZeroAccess},
	{Path: "~/.netrc", Level: LevelZeroAccess},
	{Path: "~/.git-credentials", Level: LevelZeroAccess},
	{Path: "~/.npmrc", Level: LevelZeroAccess},
	{Path: ".env*", Level: LevelZeroAccess},
	{Path: "*.pem", Level: LevelZeroAccess},
	{Path: "*.key", Level: LevelZeroAccess},
	{Path: "*.p12", Level: LevelZeroAccess},
	{Path: "*.pfx", Level: LevelZeroAccess},
	{Path: "*.tfstate", Level: LevelZeroAccess},
	{Path: "id_rsa*", Level: LevelZeroAccess},
	{Path: "id_ed25519*", Level: LevelZeroAccess},

	// System and shell configuration: readable, not writable.
	{Path: "/etc/", Level: LevelReadOnly},
	{Path: "/boot/", Level: LevelReadOnly},
	{Path: "~/.bashrc", Level: LevelReadOnly},
	{Path: "~/.bash_profile", Level: LevelReadOnly},
	{Path: "~/.zshrc", Level: LevelReadOnly},
	{Path: "~/.profile", Level: LevelReadOnly},
	{Path: "~/.gitconfig", Level: LevelReadOnly},
	{Path: "~/.config/warden/", Level: LevelReadOnly},
	{Path: ".warden.json", Level: LevelReadOnly},
	{Path: "package-lock.json", Level: LevelReadOnly},
	{Path: "*.lock", Level: LevelReadOnly},
	{Path: "node_modules/", Level: LevelReadOnly},

	// Project files that may change but must not disappear.
	{Path: "~/.claude/", Level: LevelNoDelete},
	{Path: ".git/", Level: LevelNoDelete},
	{Path: ".gitignore", Level: LevelNoDelete},
	{Path: "CLAUDE.md", Level: LevelNoDelete},
	{Path: "README.md", Level: LevelNoDelete},
	{Path: "LICENSE", Level: LevelNoDelete},
}

// DefaultPatterns returns a fresh copy of the built-in command rules.
func DefaultPatterns() []CommandRule {
	out := make([]CommandRule, len(defaultPatterns))
	copy(out, defaultPatterns)
	return out
}

// DefaultPaths returns a fresh copy of the built-in path rules.
func DefaultPaths() []PathRule {
	out := make([]PathRule, len(defaultPaths))
	copy(out, defaultPaths)
	return out
}
