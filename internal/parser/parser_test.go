package parser

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		cmd  string
		want Command
	}{
		{
			name: "empty command",
			cmd:  "",
			want: Command{Raw: "", Env: map[string]string{}, Args: []string{}},
		},
		{
			name: "whitespace only",
			cmd:  "   ",
			want: Command{Raw: "   ", Env: map[string]string{}, Args: []string{}},
		},
		{
			name: "simple program",
			cmd:  "ls",
			want: Command{Raw: "ls", Env: map[string]string{}, Program: "ls", Args: []string{}},
		},
		{
			name: "program with args",
			cmd:  "rm -rf /tmp/build",
			want: Command{Raw: "rm -rf /tmp/build", Env: map[string]string{}, Program: "rm", Args: []string{"-rf", "/tmp/build"}},
		},
		{
			name: "env var prefix",
			cmd:  "PGPASSWORD=x psql -c 'DROP TABLE users'",
			want: Command{Raw: "PGPASSWORD=x psql -c 'DROP TABLE users'", Env: map[string]string{"PGPASSWORD": "x"}, Program: "psql", Args: []string{"-c", "DROP TABLE users"}},
		},
		{
			name: "env var only",
			cmd:  "FOO=bar",
			want: Command{Raw: "FOO=bar", Env: map[string]string{"FOO": "bar"}, Args: []string{}},
		},
		{
			name: "escaped space",
			cmd:  `cat my\ file.txt`,
			want: Command{Raw: `cat my\ file.txt`, Env: map[string]string{}, Program: "cat", Args: []string{"my file.txt"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.cmd)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.cmd, got, tt.want)
			}
		})
	}
}

func TestCommandString(t *testing.T) {
	cmd := Parse("git status")
	if cmd.String() != "git status" {
		t.Errorf("String() = %q, want %q", cmd.String(), "git status")
	}
}

func TestFields(t *testing.T) {
	got := Fields("  cat\t'~/.ssh/id rsa'  x ")
	want := []string{"cat", "'~/.ssh/id", "rsa'", "x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Fields() = %q, want %q", got, want)
	}
}

func TestBasename(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/any/deep/path/server.pem", "server.pem"},
		{"/any/deep/path.pem/notes.txt", "notes.txt"},
		{"server.pem", "server.pem"},
		{"dist/", "dist"},
		{"/a/b///", "b"},
		{"/", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Basename(tt.path); got != tt.want {
				t.Errorf("Basename(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestSegments(t *testing.T) {
	tests := []struct {
		name string
		cmd  string
		want []string
	}{
		{"single", "ls -la", []string{"ls -la"}},
		{"pipe", "cat x | grep y", []string{"cat x", "grep y"}},
		{"and or", "make && make test || echo fail", []string{"make", "make test", "echo fail"}},
		{"semicolon", "cd /tmp; rm x", []string{"cd /tmp", "rm x"}},
		{"quoted separator", `echo "a; b" | wc`, []string{`echo "a; b"`, "wc"}},
		{"background", "sleep 1 & echo hi", []string{"sleep 1 & echo hi"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segments(tt.cmd)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Segments(%q) = %q, want %q", tt.cmd, got, tt.want)
			}
		})
	}
}

func TestPrograms(t *testing.T) {
	got := Programs("FOO=1 git push --force && rm -rf build | tee log")
	want := []string{"git", "rm", "tee"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Programs() = %q, want %q", got, want)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"a b c", []string{"a", "b", "c"}},
		{"a  b", []string{"a", "b"}},
		{`a "b c" d`, []string{"a", "b c", "d"}},
		{"a 'b c' d", []string{"a", "b c", "d"}},
		{`a "it's" b`, []string{"a", "it's", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokenize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
