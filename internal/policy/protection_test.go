package policy

import (
	"testing"

	"github.com/adrianpk/warden/internal/rules"
)

func TestEvaluateShellCommand(t *testing.T) {
	list := []rules.PathRule{
		{Path: "~/.ssh/", Level: rules.LevelZeroAccess},
		{Path: "*.pem", Level: rules.LevelZeroAccess},
		{Path: "/etc/passwd", Level: rules.LevelZeroAccess},
		{Path: "/etc/", Level: rules.LevelReadOnly},
		{Path: "~/.bashrc", Level: rules.LevelReadOnly},
		{Path: "README.md", Level: rules.LevelNoDelete},
	}

	tests := []struct {
		name     string
		command  string
		wantOK   bool
		wantPath string
		wantOp   rules.Operation
	}{
		{"read readonly", "cat ~/.bashrc", false, "", ""},
		{"append readonly", "echo x >> ~/.bashrc", true, "~/.bashrc", rules.OpWrite},
		{"delete readonly", "rm ~/.bashrc", true, "~/.bashrc", rules.OpDelete},
		{"any mention of zero access", "ls ~/.ssh/", true, "~/.ssh/", rules.OpAccess},
		{"expanded zero access", "cat /home/dev/.ssh/id_rsa", true, "~/.ssh/", rules.OpAccess},
		{"glob zero access", "cat deploy/server.pem", true, "*.pem", rules.OpAccess},
		{"stricter rule first", "cat /etc/passwd", true, "/etc/passwd", rules.OpAccess},
		{"broader readonly", "echo 1 > /etc/hosts", true, "/etc/", rules.OpWrite},
		{"read broader readonly", "cat /etc/hosts", false, "", ""},
		{"edit no delete", "echo more >> README.md", false, "", ""},
		{"delete no delete", "rm README.md", true, "README.md", rules.OpDelete},
		{"unrelated", "go test ./...", false, "", ""},
		{"empty", "", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := EvaluateShellCommand(tt.command, list, testHome)
			if ok != tt.wantOK {
				t.Fatalf("EvaluateShellCommand(%q) ok = %v (%+v), want %v", tt.command, ok, v, tt.wantOK)
			}
			if !ok {
				return
			}
			if v.Rule.Path != tt.wantPath {
				t.Errorf("Rule.Path = %q, want %q", v.Rule.Path, tt.wantPath)
			}
			if v.Operation != tt.wantOp {
				t.Errorf("Operation = %q, want %q", v.Operation, tt.wantOp)
			}
		})
	}
}

func TestEvaluateShellCommandNoRules(t *testing.T) {
	if v, ok := EvaluateShellCommand("rm -rf ~/.ssh/", nil, testHome); ok {
		t.Errorf("expected no violation, got %+v", v)
	}
}

func TestEvaluateFileOp(t *testing.T) {
	list := []rules.PathRule{
		{Path: "~/.ssh/", Level: rules.LevelZeroAccess},
		{Path: "/etc/", Level: rules.LevelReadOnly},
		{Path: "LICENSE", Level: rules.LevelNoDelete},
	}

	tests := []struct {
		name string
		path string
		op   rules.Operation
		want Outcome
	}{
		{"read zero access", "/home/dev/.ssh/id_rsa", rules.OpAccess, OutcomeBlock},
		{"write zero access", "/home/dev/.ssh/config", rules.OpWrite, OutcomeBlock},
		{"delete zero access", "/home/dev/.ssh/config", rules.OpDelete, OutcomeBlock},
		{"read readonly", "/etc/hosts", rules.OpAccess, OutcomeAllow},
		{"write readonly", "/etc/hosts", rules.OpWrite, OutcomeBlock},
		{"delete readonly", "/etc/hosts", rules.OpDelete, OutcomeBlock},
		{"read no delete", "/proj/LICENSE", rules.OpAccess, OutcomeAllow},
		{"write no delete", "/proj/LICENSE", rules.OpWrite, OutcomeAllow},
		{"delete no delete", "/proj/LICENSE", rules.OpDelete, OutcomeBlock},
		{"unprotected", "/proj/main.go", rules.OpWrite, OutcomeAllow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := EvaluateFileOp(tt.path, tt.op, list, testHome)
			if d.Outcome != tt.want {
				t.Fatalf("EvaluateFileOp(%q, %s) = %q, want %q", tt.path, tt.op, d.Outcome, tt.want)
			}
			if d.Allowed() {
				return
			}
			if d.ProtectedPath == nil {
				t.Fatal("ProtectedPath should be set")
			}
			if d.Operation != tt.op {
				t.Errorf("Operation = %q, want %q", d.Operation, tt.op)
			}
			if d.MatchedText != tt.path {
				t.Errorf("MatchedText = %q, want %q", d.MatchedText, tt.path)
			}
		})
	}
}

func TestEvaluateFileOpReason(t *testing.T) {
	list := []rules.PathRule{{Path: "/etc/", Level: rules.LevelReadOnly}}
	d := EvaluateFileOp("/etc/hosts", rules.OpWrite, list, testHome)
	want := "read-only path /etc/: write not permitted"
	if d.Reason != want {
		t.Errorf("Reason = %q, want %q", d.Reason, want)
	}
}
