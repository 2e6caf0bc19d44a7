package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/taigrr/findr/internal/config"
)

// setupTestTree creates root/{a.txt, sub/b.txt} under a temp dir and chdirs there.
func setupTestTree(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "root", "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, file := range []string{"root/a.txt", "root/sub/b.txt"} {
		if err := os.WriteFile(filepath.Join(tmpDir, file), []byte("test"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	t.Chdir(tmpDir)
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func sortedLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	sort.Strings(lines)
	return lines
}

func native(paths ...string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.FromSlash(p)
	}
	sort.Strings(out)
	return out
}

func TestRootCommand_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"no filters", []string{"root"}, native("root", "root/a.txt", "root/sub", "root/sub/b.txt")},
		{"type f", []string{"root", "-t", "f"}, native("root/a.txt", "root/sub/b.txt")},
		{"type d long", []string{"root", "--type", "d"}, native("root", "root/sub")},
		{"type f or d", []string{"root", "-t", "f", "-t", "d"}, native("root", "root/a.txt", "root/sub", "root/sub/b.txt")},
		{"name", []string{"root", "-n", `b\.txt`}, native("root/sub/b.txt")},
		{"name with comma", []string{"root", "--name", `^[a-z]{1,1}\.txt$`}, native("root/a.txt", "root/sub/b.txt")},
		{"name and type", []string{"root", "-n", "sub", "-t", "f"}, nil},
		{"flags before paths", []string{"-t", "d", "root/sub"}, native("root/sub")},
		{"exclude", []string{"root", "-e", "sub"}, native("root", "root/a.txt")},
		{"max depth", []string{"root", "--max-depth", "0"}, native("root")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestTree(t)

			stdout, stderr, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, sortedLines(stdout)); diff != "" {
				t.Errorf("stdout mismatch (-want +got):\n%s", diff)
			}
			if stderr != "" {
				t.Errorf("stderr = %q, want empty", stderr)
			}
		})
	}
}

func TestRootCommand_InvalidType(t *testing.T) {
	setupTestTree(t)

	stdout, _, err := execute(t, "root", "-t", "x")
	if err == nil {
		t.Fatal("Execute() with -t x: expected error")
	}
	if !strings.Contains(err.Error(), `"x"`) {
		t.Errorf("error %q should name the invalid type", err.Error())
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
}

func TestRootCommand_InvalidName(t *testing.T) {
	setupTestTree(t)

	stdout, _, err := execute(t, "root", "-n", "ok", "-n", "[unterminated")
	if err == nil {
		t.Fatal("Execute() with invalid name: expected error")
	}
	if !strings.Contains(err.Error(), "[unterminated") {
		t.Errorf("error %q should contain the literal pattern", err.Error())
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
}

func TestRootCommand_MissingPathExitsCleanly(t *testing.T) {
	setupTestTree(t)

	stdout, stderr, err := execute(t, "missing", "root/sub")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if diff := cmp.Diff(native("root/sub", "root/sub/b.txt"), sortedLines(stdout)); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
	if got := sortedLines(stderr); len(got) != 1 || !strings.Contains(got[0], "missing") {
		t.Errorf("stderr = %q, want one line naming the missing path", stderr)
	}
}

func TestRootCommand_ConfigFile(t *testing.T) {
	setupTestTree(t)
	if err := os.WriteFile("findr.yaml", []byte("paths: [root]\ntypes: [f]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execute(t, "-c", "findr.yaml", "-n", "^a")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if diff := cmp.Diff(native("root/a.txt"), sortedLines(stdout)); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
}

func TestRootCommand_Verbose(t *testing.T) {
	setupTestTree(t)

	stdout, stderr, err := execute(t, "root", "-v", "-t", "f")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if diff := cmp.Diff(native("root/a.txt", "root/sub/b.txt"), sortedLines(stdout)); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(stderr, "walking") {
		t.Errorf("stderr = %q, want debug log lines", stderr)
	}
}

func TestFindHandler(t *testing.T) {
	t.Run("matches the command line", func(t *testing.T) {
		setupTestTree(t)
		handler := findHandler(config.Options{}, zerolog.Nop())

		res, out, err := handler(context.Background(), nil, FindInput{
			Paths: []string{"root"},
			Types: []string{"f"},
		})
		if err != nil || res != nil {
			t.Fatalf("handler() = %v, %v; want success", res, err)
		}

		stdout, _, err := execute(t, "root", "-t", "f")
		if err != nil {
			t.Fatal(err)
		}
		sort.Strings(out.Matches)
		if diff := cmp.Diff(sortedLines(stdout), out.Matches); diff != "" {
			t.Errorf("tool and command line differ (-cli +tool):\n%s", diff)
		}
	})

	t.Run("server defaults", func(t *testing.T) {
		setupTestTree(t)
		handler := findHandler(config.Options{
			Paths: []string{"root/sub"},
			Names: []string{`\.txt$`},
		}, zerolog.Nop())

		_, out, err := handler(context.Background(), nil, FindInput{})
		if err != nil {
			t.Fatalf("handler() error = %v", err)
		}
		if diff := cmp.Diff(native("root/sub/b.txt"), out.Matches); diff != "" {
			t.Errorf("Matches mismatch (-want +got):\n%s", diff)
		}

		depth := 1
		_, out, err = handler(context.Background(), nil, FindInput{Paths: []string{"root"}, MaxDepth: &depth})
		if err != nil {
			t.Fatalf("handler() error = %v", err)
		}
		if diff := cmp.Diff(native("root/a.txt"), out.Matches); diff != "" {
			t.Errorf("Matches mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("limit and errors", func(t *testing.T) {
		setupTestTree(t)
		handler := findHandler(config.Options{}, zerolog.Nop())

		_, out, err := handler(context.Background(), nil, FindInput{
			Paths: []string{"missing", "root"},
			Limit: 1,
		})
		if err != nil {
			t.Fatalf("handler() error = %v", err)
		}
		if len(out.Matches) != 1 || !out.Truncated {
			t.Errorf("got %v (truncated %v), want one match and truncated", out.Matches, out.Truncated)
		}
		if len(out.Errors) != 1 {
			t.Errorf("Errors = %v, want 1", out.Errors)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		handler := findHandler(config.Options{}, zerolog.Nop())

		tests := []struct {
			name  string
			input FindInput
			want  string
		}{
			{"type", FindInput{Types: []string{"z"}}, `"z"`},
			{"name", FindInput{Names: []string{"a("}}, `"a("`},
		}

		for _, tt := range tests {
			res, _, err := handler(context.Background(), nil, tt.input)
			if err == nil || res == nil || !res.IsError {
				t.Errorf("%s: handler() = %v, %v; want tool error", tt.name, res, err)
				continue
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("%s: error %q should contain %q", tt.name, err.Error(), tt.want)
			}
		}
	})
}

func TestRootCommand_SymlinkedRoot(t *testing.T) {
	setupTestTree(t)
	if err := os.Symlink("root", "link"); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"no filters", []string{"link"}, native("link", "link/a.txt", "link/sub", "link/sub/b.txt")},
		{"type f", []string{"link", "-t", "f"}, native("link/a.txt", "link/sub/b.txt")},
		{"type l", []string{"link", "-t", "l"}, native("link")},
		{"type d", []string{"link", "-t", "d"}, native("link/sub")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, sortedLines(stdout)); diff != "" {
				t.Errorf("stdout mismatch (-want +got):\n%s", diff)
			}
			if stderr != "" {
				t.Errorf("stderr = %q, want empty", stderr)
			}
		})
	}
}
