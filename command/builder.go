package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	draugrerrors "github.com/Mahdiglm/draugr-deploy/errors"
)

const (
	// DefaultTimeout is the default command execution timeout
	DefaultTimeout = 2 * time.Minute

	// MaxTimeout is the maximum allowed timeout
	MaxTimeout = 30 * time.Minute
)

var (
	packageNamePattern = regexp.MustCompile(`^(@[a-z0-9~][a-z0-9._~-]*/)?[a-z0-9~][a-z0-9._~-]*(@[A-Za-z0-9.^~<>=*|_+-]+)?$`)
	gitRefPattern      = regexp.MustCompile(`^[a-zA-Z0-9/_.-]+$`)
)

// SafeBuilder provides secure command execution with validation
type SafeBuilder struct {
	timeout    time.Duration
	validators map[string]func(string) error
	executor   Executor
}

// NewSafeBuilder creates a new SafeBuilder instance with a RealExecutor
func NewSafeBuilder() *SafeBuilder {
	return NewSafeBuilderWithExecutor(&RealExecutor{})
}

// NewSafeBuilderWithExecutor creates a new SafeBuilder with a custom Executor
func NewSafeBuilderWithExecutor(exec Executor) *SafeBuilder {
	return &SafeBuilder{
		timeout:    DefaultTimeout,
		validators: makeDefaultValidators(),
		executor:   exec,
	}
}

// WithTimeout sets the timeout applied to built commands. Zero disables it.
func (sb *SafeBuilder) WithTimeout(timeout time.Duration) *SafeBuilder {
	if timeout > MaxTimeout {
		timeout = MaxTimeout
	}
	sb.timeout = timeout
	return sb
}

// makeDefaultValidators returns the default set of validators
func makeDefaultValidators() map[string]func(string) error {
	return map[string]func(string) error{
		"packageName": validatePackageName,
		"manager":     validateManager,
		"fileName":    validateFileName,
		"gitRef":      validateGitRef,
	}
}

// validatePackageName accepts registry names, optionally scoped and versioned
// (e.g. "@scope/pkg@^1.2.0").
func validatePackageName(name string) error {
	if name == "" {
		return fmt.Errorf("package name cannot be empty")
	}
	if len(name) > 214 {
		return fmt.Errorf("package name too long: %s (max 214 characters)", name)
	}
	if !packageNamePattern.MatchString(name) {
		return fmt.Errorf("invalid package name: %s", name)
	}
	return nil
}

func validateManager(name string) error {
	switch name {
	case "npm", "yarn", "pnpm", "bun":
		return nil
	case "":
		return fmt.Errorf("package manager cannot be empty")
	}
	return fmt.Errorf("unsupported package manager: %s (expected npm, yarn, pnpm or bun)", name)
}

// validateFileName ensures file paths are safe
func validateFileName(path string) error {
	if path == "" {
		return fmt.Errorf("file path cannot be empty")
	}

	// Prevent directory traversal
	if strings.Contains(path, "..") {
		return fmt.Errorf("file path cannot contain '..'")
	}

	// Prevent command injection via shell metacharacters
	if strings.ContainsAny(path, ";|&$`") {
		return fmt.Errorf("file path contains invalid characters")
	}

	return nil
}

// validateGitRef ensures git references are safe
func validateGitRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("git ref cannot be empty")
	}

	if !gitRefPattern.MatchString(ref) || strings.Contains(ref, "..") || strings.HasSuffix(ref, "/") {
		return fmt.Errorf("invalid git ref: %s", ref)
	}

	return nil
}

// Command represents a safe command configuration
type Command struct {
	ctx      context.Context
	cancel   context.CancelFunc
	name     string
	args     []string
	timeout  time.Duration
	env      []string
	executor Executor
}

// Build creates a new command with validation
func (sb *SafeBuilder) Build(ctx context.Context, name string, args ...string) (*Command, error) {
	if name == "" {
		return nil, fmt.Errorf("command name cannot be empty")
	}

	cmdCtx, cancel := ctx, context.CancelFunc(func() {})
	if sb.timeout > 0 {
		cmdCtx, cancel = context.WithTimeout(ctx, sb.timeout)
	}

	return &Command{
		ctx:      cmdCtx,
		cancel:   cancel,
		name:     name,
		args:     args,
		timeout:  sb.timeout,
		executor: sb.executor,
	}, nil
}

// Validate validates specific arguments
func (sb *SafeBuilder) Validate(argType string, value string) error {
	validator, exists := sb.validators[argType]
	if !exists {
		return fmt.Errorf("no validator for argument type: %s", argType)
	}

	return validator(value)
}

// WithEnv adds variables on top of the inherited environment.
func (c *Command) WithEnv(env ...string) *Command {
	c.env = append(c.env, env...)
	return c
}

// String renders the command line for logs.
func (c *Command) String() string {
	return strings.Join(append([]string{c.name}, c.args...), " ")
}

// Exec creates and returns an exec.Cmd. The caller owns the command's
// lifetime; prefer Run, which also releases the timeout.
func (c *Command) Exec() *exec.Cmd {
	cmd := c.executor.CommandContext(c.ctx, c.name, c.args...) //nolint:gosec // SafeBuilder provides validation
	if len(c.env) > 0 {
		cmd.Env = append(os.Environ(), c.env...)
	}
	return cmd
}

// Run executes the command with the given stdio and waits for it.
// A missing binary is reported as COMMAND_NOT_FOUND, any other failure as
// COMMAND_FAILED.
func (c *Command) Run(stdin io.Reader, stdout, stderr io.Writer) error {
	defer c.cancel()

	cmd := c.Exec()
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return draugrerrors.CommandNotFound(c.name, err)
		}
		return draugrerrors.CommandFailed(c.String(), err)
	}
	return nil
}
