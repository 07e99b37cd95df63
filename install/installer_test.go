package install

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/Mahdiglm/draugr-deploy/config"
	draugrerrors "github.com/Mahdiglm/draugr-deploy/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// substituteExecutor runs a different binary in place of the package manager
// and records what was asked for.
type substituteExecutor struct {
	binary string
	name   string
	args   []string
}

func (e *substituteExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	e.name, e.args = name, args
	return exec.CommandContext(ctx, e.binary, args...)
}

func newTestInstaller(binary string) (*Installer, *substituteExecutor, *bytes.Buffer, *test.Hook) {
	logger, hook := test.NewNullLogger()
	ex := &substituteExecutor{binary: binary}
	var out bytes.Buffer
	i := New()
	i.Executor = ex
	i.Stdin = strings.NewReader("")
	i.Stdout = &out
	i.Stderr = &out
	i.Logger = logrus.NewEntry(logger)
	return i, ex, &out, hook
}

func TestDefaults(t *testing.T) {
	i := New()
	assert.Equal(t, "npm", i.Manager)
	assert.Equal(t, "react-router-dom", i.Package)
	assert.Equal(t, []string{"install", "react-router-dom"}, i.Args())
}

func TestArgsPerManager(t *testing.T) {
	for _, manager := range []string{"yarn", "pnpm", "bun"} {
		i := FromConfig(config.InstallSection{Manager: manager})
		assert.Equal(t, []string{"add", "react-router-dom"}, i.Args(), manager)
	}

	i := FromConfig(config.InstallSection{Package: "@remix-run/router"})
	assert.Equal(t, "npm", i.Manager)
	assert.Equal(t, []string{"install", "@remix-run/router"}, i.Args())
}

func TestRunSuccessLogsConfirmation(t *testing.T) {
	i, ex, out, hook := newTestInstaller("echo")

	err := i.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "npm", ex.name)
	assert.Equal(t, "install react-router-dom\n", out.String())

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, "react-router-dom installed successfully!", hook.LastEntry().Message)
}

func TestRunMissingManagerLogsError(t *testing.T) {
	i, _, _, hook := newTestInstaller("draugr-missing-package-manager")

	var err error
	assert.NotPanics(t, func() {
		err = i.Run(context.Background())
	})

	require.Error(t, err)
	assert.True(t, draugrerrors.Is(err, draugrerrors.ErrCodeCommandNotFound))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "Error installing react-router-dom", entry.Message)
	assert.Equal(t, "npm", entry.Data["manager"])
}

func TestRunNonZeroExitLogsExitCode(t *testing.T) {
	i, _, _, hook := newTestInstaller("false")

	err := i.Run(context.Background())
	require.Error(t, err)
	assert.True(t, draugrerrors.Is(err, draugrerrors.ErrCodeCommandFailed))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, 1, entry.Data["exitCode"])
	assert.Equal(t, "npm install react-router-dom", entry.Data["command"])
}

func TestInstallRejectsInvalidInput(t *testing.T) {
	i, ex, _, _ := newTestInstaller("echo")
	i.Package = "react; rm -rf /"

	err := i.Install(context.Background())
	assert.True(t, draugrerrors.Is(err, draugrerrors.ErrCodeInvalidInput))
	assert.Empty(t, ex.name, "nothing should have been executed")

	i.Package = DefaultPackage
	i.Manager = "pip"
	err = i.Install(context.Background())
	assert.True(t, draugrerrors.Is(err, draugrerrors.ErrCodeInvalidInput))
}
