package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	draugrerrors "github.com/Mahdiglm/draugr-deploy/errors"
)

func newTestRoot(args ...string) *cobra.Command {
	root := NewStandardCommand("draugr", "Deployment tools")
	root.SetArgs(args)
	return root
}

func TestStandardFlags(t *testing.T) {
	root := newTestRoot()
	for _, name := range []string{"verbose", "json", "config", "strict"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "v", root.PersistentFlags().Lookup("verbose").Shorthand)
	assert.Equal(t, "c", root.PersistentFlags().Lookup("config").Shorthand)
}

func TestOutcome(t *testing.T) {
	failure := errors.New("npm exited 1")

	var got error
	run := func(args ...string) error {
		root := newTestRoot(args...)
		root.AddCommand(&cobra.Command{
			Use: "install",
			RunE: func(cmd *cobra.Command, _ []string) error {
				got = Outcome(cmd, failure)
				return got
			},
		})
		return root.Execute()
	}

	assert.NoError(t, run("install"))
	assert.Nil(t, got)

	assert.ErrorIs(t, run("install", "--strict"), failure)
	assert.Equal(t, failure, got)
}

func TestGetOptions(t *testing.T) {
	var opts CommandOptions
	root := newTestRoot("sub", "-v", "--json", "-c", "x.yml")
	root.AddCommand(&cobra.Command{
		Use: "sub",
		Run: func(cmd *cobra.Command, _ []string) { opts = GetOptions(cmd) },
	})
	require.NoError(t, root.Execute())

	assert.Equal(t, CommandOptions{ConfigFile: "x.yml", Verbose: true, JSONOutput: true}, opts)
}

func TestLoadConfigFromFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draugr.yml")
	require.NoError(t, os.WriteFile(path, []byte("publish:\n  branch: pages\n"), 0o644))

	var loadedBranch string
	root := newTestRoot("sub", "--config", path)
	root.AddCommand(&cobra.Command{
		Use: "sub",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(cmd)
			if err != nil {
				return err
			}
			loadedBranch = cfg.Publish.Branch
			return nil
		},
	})
	require.NoError(t, root.Execute())
	assert.Equal(t, "pages", loadedBranch)
}

func TestErrorHandlerHints(t *testing.T) {
	tests := []struct {
		err  error
		hint string
	}{
		{draugrerrors.CommandNotFound("npm", errors.New("not found")), "'npm' is not installed"},
		{draugrerrors.PublishEmpty("dist"), "Nothing to publish in dist"},
		{draugrerrors.AuthFailed("alice", "bad token"), "credentials for 'alice'"},
		{draugrerrors.UnknownOperation("nope"), "Unknown console operation 'nope'"},
		{fmt.Errorf("deploy: %w", draugrerrors.PublishEmpty("build")), "Nothing to publish in build"},
		{fmt.Errorf("install: %w", draugrerrors.CommandNotFound("pnpm", errors.New("not found"))), "'pnpm' is not installed"},
		{errors.New("plain failure"), "Error: plain failure"},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		h := &ErrorHandler{Out: &out}
		assert.Equal(t, tt.err, h.Handle(tt.err))
		assert.Contains(t, out.String(), tt.hint)
	}
}

func TestErrorHandlerHintLine(t *testing.T) {
	var out bytes.Buffer
	h := &ErrorHandler{Out: &out}
	_ = h.Handle(fmt.Errorf("wrapped: %w", draugrerrors.UnknownOperation("nope").WithDetail("available", []string{"resetDraugrStorage"})))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "'nope'")
	assert.Contains(t, lines[1], "Available: [resetDraugrStorage]")
	assert.NotContains(t, out.String(), "<nil>")
}

func TestErrorHandlerVerboseDetails(t *testing.T) {
	var out bytes.Buffer
	h := &ErrorHandler{Verbose: true, Out: &out}
	_ = h.Handle(draugrerrors.PublishEmpty("dist"))
	assert.Contains(t, out.String(), `"code": "PUBLISH_EMPTY"`)
	assert.Nil(t, h.Handle(nil))
}

func TestStyledHelp(t *testing.T) {
	root := newTestRoot()
	root.AddCommand(&cobra.Command{Use: "deploy", Short: "Publish the site", Run: func(*cobra.Command, []string) {}})

	var out bytes.Buffer
	renderHelp(&out, root, 60)

	help := out.String()
	assert.Contains(t, help, "DRAUGR")
	assert.Contains(t, help, "deploy")
	assert.Contains(t, help, "--strict")
}

func TestWrapText(t *testing.T) {
	wrapped := wrapText(strings.Repeat("word ", 20), 20)
	for _, line := range strings.Split(wrapped, "\n") {
		assert.LessOrEqual(t, len(line), 20)
	}
}

func TestVersionCommandJSON(t *testing.T) {
	root := newTestRoot("version", "--json")
	root.AddCommand(NewVersionCommand("draugr", VersionInfo{Version: "v1.2.3", Commit: "abc"}))

	var out bytes.Buffer
	root.SetOut(&out)
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), `"version": "v1.2.3"`)
}
