package command

import (
	"bytes"
	"context"
	"testing"
	"time"

	draugrerrors "github.com/Mahdiglm/draugr-deploy/errors"
)

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain name", "react-router-dom", false},
		{"scoped", "@remix-run/router", false},
		{"versioned", "react-router-dom@6.22.0", false},
		{"range", "react@^18.2.0", false},
		{"empty", "", true},
		{"uppercase", "React", true},
		{"flag injection", "--global", true},
		{"shell metacharacters", "pkg; rm -rf /", true},
		{"spaces", "react dom", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePackageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validatePackageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateManager(t *testing.T) {
	for _, name := range []string{"npm", "yarn", "pnpm", "bun"} {
		if err := validateManager(name); err != nil {
			t.Errorf("validateManager(%q) unexpected error: %v", name, err)
		}
	}
	for _, name := range []string{"", "pip", "npm install"} {
		if err := validateManager(name); err == nil {
			t.Errorf("validateManager(%q) expected error", name)
		}
	}
}

func TestValidateFileName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid path", "/path/to/file.txt", false},
		{"relative path", "dist", false},
		{"directory traversal", "../etc/passwd", true},
		{"command injection semicolon", "file.txt; rm -rf /", true},
		{"command injection pipe", "file.txt | cat", true},
		{"command injection ampersand", "file.txt & echo", true},
		{"command injection dollar", "$(whoami)", true},
		{"command injection backtick", "`whoami`", true},
		{"empty path", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFileName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFileName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateGitRef(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid branch", "gh-pages", false},
		{"valid with slash", "feature/add-button", false},
		{"valid with underscore", "my_branch", false},
		{"valid with dots", "v1.2.3", false},
		{"empty ref", "", true},
		{"double dot", "main..other", true},
		{"trailing slash", "pages/", true},
		{"command injection", "main; rm -rf /", true},
		{"spaces", "my branch", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateGitRef(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateGitRef(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestSafeBuilder_Build(t *testing.T) {
	sb := NewSafeBuilder()
	ctx := context.Background()

	t.Run("valid command", func(t *testing.T) {
		cmd, err := sb.Build(ctx, "echo", "hello")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cmd.name != "echo" {
			t.Errorf("expected command name 'echo', got %q", cmd.name)
		}
		if len(cmd.args) != 1 || cmd.args[0] != "hello" {
			t.Errorf("expected args ['hello'], got %v", cmd.args)
		}
		if cmd.String() != "echo hello" {
			t.Errorf("unexpected String(): %q", cmd.String())
		}
	})

	t.Run("empty command name", func(t *testing.T) {
		_, err := sb.Build(ctx, "")
		if err == nil {
			t.Error("expected error for empty command name")
		}
	})
}

func TestSafeBuilder_Validate(t *testing.T) {
	sb := NewSafeBuilder()

	if err := sb.Validate("packageName", "react-router-dom"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := sb.Validate("manager", "pip"); err == nil {
		t.Error("expected error for unsupported manager")
	}
	if err := sb.Validate("unknownType", "value"); err == nil {
		t.Error("expected error for unknown validator type")
	}
}

func TestSafeBuilder_WithTimeout(t *testing.T) {
	sb := NewSafeBuilder().WithTimeout(time.Hour)
	if sb.timeout != MaxTimeout {
		t.Errorf("expected timeout to be capped at %v, got %v", MaxTimeout, sb.timeout)
	}

	sb.WithTimeout(0)
	cmd, err := sb.Build(context.Background(), "true")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cmd.ctx.Deadline(); ok {
		t.Error("expected no deadline when timeout is disabled")
	}
}

func TestCommandTimeout(t *testing.T) {
	sb := NewSafeBuilder().WithTimeout(100 * time.Millisecond)

	cmd, err := sb.Build(context.Background(), "sleep", "10")
	if err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	err = cmd.Run(nil, nil, nil)
	duration := time.Since(start)

	if draugrerrors.GetCode(err) != draugrerrors.ErrCodeCommandFailed {
		t.Errorf("expected COMMAND_FAILED, got %v", err)
	}

	// Allow some margin for execution overhead
	if duration > 2*time.Second {
		t.Errorf("command took too long to timeout: %v", duration)
	}
}

func TestCommandRun(t *testing.T) {
	sb := NewSafeBuilder()

	t.Run("captures output", func(t *testing.T) {
		cmd, err := sb.Build(context.Background(), "echo", "installed")
		if err != nil {
			t.Fatal(err)
		}
		var out bytes.Buffer
		if err := cmd.Run(nil, &out, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.String() != "installed\n" {
			t.Errorf("unexpected output %q", out.String())
		}
	})

	t.Run("missing binary", func(t *testing.T) {
		cmd, err := sb.Build(context.Background(), "draugr-no-such-binary")
		if err != nil {
			t.Fatal(err)
		}
		err = cmd.Run(nil, nil, nil)
		if draugrerrors.GetCode(err) != draugrerrors.ErrCodeCommandNotFound {
			t.Errorf("expected COMMAND_NOT_FOUND, got %v", err)
		}
	})

	t.Run("extra environment", func(t *testing.T) {
		cmd, err := sb.Build(context.Background(), "sh", "-c", "echo $DRAUGR_EXTRA_VALUE")
		if err != nil {
			t.Fatal(err)
		}
		var out bytes.Buffer
		if err := cmd.WithEnv("DRAUGR_EXTRA_VALUE=set").Run(nil, &out, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.String() != "set\n" {
			t.Errorf("unexpected output %q", out.String())
		}
	})

	t.Run("non-zero exit", func(t *testing.T) {
		cmd, err := sb.Build(context.Background(), "false")
		if err != nil {
			t.Fatal(err)
		}
		err = cmd.Run(nil, nil, nil)
		if draugrerrors.GetCode(err) != draugrerrors.ErrCodeCommandFailed {
			t.Errorf("expected COMMAND_FAILED, got %v", err)
		}
	})
}
