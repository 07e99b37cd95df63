package errors

import (
	"fmt"
	"os/exec"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *DraugrError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *DraugrError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// CommandNotFound creates an error for an executable missing from PATH
func CommandNotFound(name string, err error) *DraugrError {
	return Wrap(err, ErrCodeCommandNotFound, fmt.Sprintf("command not found: %s", name)).
		WithDetail("command", name)
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *DraugrError {
	draugrErr := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	// Extract exit code if available
	if exitErr, ok := err.(*exec.ExitError); ok {
		draugrErr = draugrErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return draugrErr
}

// PublishFailed creates an error for a push that did not reach the remote
func PublishFailed(branch, remote string, err error) *DraugrError {
	return Wrap(err, ErrCodePublishFailed, fmt.Sprintf("failed to publish branch '%s'", branch)).
		WithDetail("branch", branch).
		WithDetail("remote", remote)
}

// PublishEmpty creates an error for a source directory with nothing to publish
func PublishEmpty(dir string) *DraugrError {
	return New(ErrCodePublishEmpty, fmt.Sprintf("no files to publish in %s", dir)).
		WithDetail("dir", dir)
}

// PromptAborted creates an error for input that ended before every answer was given
func PromptAborted(prompt string, err error) *DraugrError {
	return Wrap(err, ErrCodePromptAborted, fmt.Sprintf("input closed while waiting for %q", prompt)).
		WithDetail("prompt", prompt)
}

// AuthFailed creates a credential verification error
func AuthFailed(user string, reason string) *DraugrError {
	return New(ErrCodeAuthFailed, fmt.Sprintf("credentials for '%s' rejected: %s", user, reason)).
		WithDetail("user", user)
}

// StoreAccess creates a persisted client state error
func StoreAccess(op, key string, err error) *DraugrError {
	return Wrap(err, ErrCodeStoreAccess, fmt.Sprintf("%s %q failed", op, key)).
		WithDetail("op", op).
		WithDetail("key", key)
}

// UnknownOperation creates an error for a console operation that was never registered
func UnknownOperation(name string) *DraugrError {
	return New(ErrCodeUnknownOperation, fmt.Sprintf("no console operation named '%s'", name)).
		WithDetail("operation", name)
}
