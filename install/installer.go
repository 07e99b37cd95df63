// Package install adds a package to the front-end project with the
// project's package manager.
package install

import (
	"context"
	"io"
	"os"

	"github.com/Mahdiglm/draugr-deploy/command"
	"github.com/Mahdiglm/draugr-deploy/config"
	draugrerrors "github.com/Mahdiglm/draugr-deploy/errors"
	"github.com/Mahdiglm/draugr-deploy/logging"
	"github.com/sirupsen/logrus"
)

const (
	DefaultManager = "npm"
	DefaultPackage = "react-router-dom"
)

// Installer runs `<manager> install|add <package>` with inherited stdio.
type Installer struct {
	Manager  string
	Package  string
	Executor command.Executor

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *logrus.Entry
}

// New returns an installer for react-router-dom via npm.
func New() *Installer {
	return &Installer{
		Manager:  DefaultManager,
		Package:  DefaultPackage,
		Executor: &command.RealExecutor{},
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Logger:   logging.NewLogger("install"),
	}
}

// FromConfig returns the default installer with the install section applied.
func FromConfig(section config.InstallSection) *Installer {
	i := New()
	if section.Manager != "" {
		i.Manager = section.Manager
	}
	if section.Package != "" {
		i.Package = section.Package
	}
	return i
}

// Args returns the manager arguments. npm spells the verb "install", the
// others "add".
func (i *Installer) Args() []string {
	verb := "add"
	if i.Manager == "npm" {
		verb = "install"
	}
	return []string{verb, i.Package}
}

// Install runs the package manager and blocks until it exits. There is no
// timeout; cancelling ctx kills the process.
func (i *Installer) Install(ctx context.Context) error {
	sb := command.NewSafeBuilderWithExecutor(i.Executor).WithTimeout(0)

	if err := sb.Validate("manager", i.Manager); err != nil {
		return draugrerrors.Wrap(err, draugrerrors.ErrCodeInvalidInput, "invalid package manager")
	}
	if err := sb.Validate("packageName", i.Package); err != nil {
		return draugrerrors.Wrap(err, draugrerrors.ErrCodeInvalidInput, "invalid package name")
	}

	cmd, err := sb.Build(ctx, i.Manager, i.Args()...)
	if err != nil {
		return draugrerrors.Wrap(err, draugrerrors.ErrCodeInternal, "failed to build install command")
	}

	i.Logger.WithField("command", cmd.String()).Debug("Running package manager")
	return cmd.Run(i.Stdin, i.Stdout, i.Stderr)
}

// Run installs and logs the outcome. The error is returned so the caller can
// decide whether a failure is fatal.
func (i *Installer) Run(ctx context.Context) error {
	err := i.Install(ctx)
	if err != nil {
		fields := logrus.Fields{"manager": i.Manager, "package": i.Package}
		if de, ok := err.(*draugrerrors.DraugrError); ok {
			for k, v := range de.Details {
				fields[k] = v
			}
		}
		i.Logger.WithFields(fields).WithError(err).Error("Error installing " + i.Package)
		return err
	}

	i.Logger.WithField("package", i.Package).Info(i.Package + " installed successfully!")
	return nil
}
