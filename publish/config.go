// Package publish pushes a built site directory as the entire tree of a
// hosting branch (gh-pages by default) on a remote git repository.
package publish

import (
	"fmt"

	"github.com/Mahdiglm/draugr-deploy/command"
	"github.com/Mahdiglm/draugr-deploy/config"
	draugrerrors "github.com/Mahdiglm/draugr-deploy/errors"
	"github.com/Mahdiglm/draugr-deploy/git"
)

const (
	DefaultBranch  = "gh-pages"
	DefaultMessage = "Updates"
)

// Identity is the commit author and committer.
type Identity struct {
	Name  string
	Email string
}

func (i Identity) String() string {
	return fmt.Sprintf("%s <%s>", i.Name, i.Email)
}

// Config describes one publish. RepoURL may embed credentials; it is never
// logged as-is.
type Config struct {
	SourceDir string
	Branch    string
	RepoURL   string
	Committer Identity
	Message   string
	// Dotfiles includes files and directories whose name starts with a dot.
	Dotfiles bool
	// Silent lowers progress logging to debug level.
	Silent  bool
	Exclude []string
}

// WithSection overlays the non-empty fields of a config file section.
func (c Config) WithSection(s config.PublishSection) Config {
	if s.Dir != "" {
		c.SourceDir = s.Dir
	}
	if s.Branch != "" {
		c.Branch = s.Branch
	}
	if s.Repo != "" {
		c.RepoURL = s.Repo
	}
	if s.Name != "" {
		c.Committer.Name = s.Name
	}
	if s.Email != "" {
		c.Committer.Email = s.Email
	}
	if s.Message != "" {
		c.Message = s.Message
	}
	if s.Dotfiles != nil {
		c.Dotfiles = *s.Dotfiles
	}
	if s.Silent != nil {
		c.Silent = *s.Silent
	}
	if len(s.Exclude) > 0 {
		c.Exclude = append([]string(nil), s.Exclude...)
	}
	return c
}

func (c Config) withDefaults() Config {
	if c.Branch == "" {
		c.Branch = DefaultBranch
	}
	if c.Message == "" {
		c.Message = DefaultMessage
	}
	return c
}

// Validate checks the fields a publish cannot start without.
func (c Config) Validate() error {
	if c.SourceDir == "" {
		return draugrerrors.New(draugrerrors.ErrCodeInvalidInput, "publish source directory is required")
	}
	if c.RepoURL == "" {
		return draugrerrors.New(draugrerrors.ErrCodeInvalidInput, "publish repository URL is required")
	}
	if err := command.NewSafeBuilder().Validate("gitRef", c.Branch); err != nil {
		return draugrerrors.Wrap(err, draugrerrors.ErrCodeInvalidInput, "invalid publish branch").
			WithDetail("branch", c.Branch)
	}
	return nil
}

// RedactedURL is RepoURL with any password masked.
func (c Config) RedactedURL() string {
	return git.Redact(c.RepoURL)
}
