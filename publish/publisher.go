package publish

import (
	"context"
	"io"

	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/sirupsen/logrus"

	draugrerrors "github.com/Mahdiglm/draugr-deploy/errors"
	"github.com/Mahdiglm/draugr-deploy/git"
	"github.com/Mahdiglm/draugr-deploy/logging"
)

// Publisher is the publish primitive.
type Publisher interface {
	Publish(ctx context.Context, cfg Config) error
}

// GitPublisher commits the source directory as a single orphan commit in an
// in-memory repository and force-pushes it to the target branch.
type GitPublisher struct {
	Logger *logrus.Entry
	// Progress receives the remote's sideband output unless the config is silent.
	Progress io.Writer
}

func NewGitPublisher() *GitPublisher {
	return &GitPublisher{Logger: logging.NewLogger("publish")}
}

func (g *GitPublisher) Publish(ctx context.Context, cfg Config) error {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logf := g.Logger.Infof
	progress := g.Progress
	if cfg.Silent {
		logf = g.Logger.Debugf
		progress = nil
	}

	src, files, err := collect(cfg)
	if err != nil {
		return err
	}
	logf("Publishing %d files from %s", len(files), cfg.SourceDir)

	snap, err := git.NewSnapshot(cfg.Branch)
	if err != nil {
		return draugrerrors.Wrap(err, draugrerrors.ErrCodeInternal, "failed to initialise publish repository")
	}

	for _, f := range files {
		r, err := src.Open(f.Name)
		if err != nil {
			return draugrerrors.Wrap(err, draugrerrors.ErrCodeInternal, "failed to read source file").
				WithDetail("file", f.Name)
		}
		err = snap.AddFile(f.Name, f.Mode, r)
		r.Close()
		if err != nil {
			return draugrerrors.Wrap(err, draugrerrors.ErrCodeInternal, "failed to stage source file").
				WithDetail("file", f.Name)
		}
		g.Logger.WithField("file", f.Name).Debug("Staged")
	}

	who := committer(cfg.Committer)
	hash, err := snap.Commit(cfg.Message, git.Signature{Name: who.Name, Email: who.Email})
	if err != nil {
		return draugrerrors.Wrap(err, draugrerrors.ErrCodeInternal, "failed to commit publish tree")
	}
	logf("Committed %s as %s", hash.String()[:7], who)

	// Credential helpers are only consulted once there is something to push.
	remote, err := git.ParseRemote(ctx, cfg.RepoURL)
	if err != nil {
		return draugrerrors.PublishFailed(cfg.Branch, cfg.RedactedURL(), redact(err))
	}

	logf("Pushing to %s (branch %s)", remote.URL, cfg.Branch)
	if err := snap.Push(ctx, remote, progress); err != nil {
		return draugrerrors.PublishFailed(cfg.Branch, remote.URL, redact(err))
	}

	logf("Published %s to %s", cfg.Branch, remote.URL)
	return nil
}

// committer fills a missing name or email from the user's global git config.
func committer(id Identity) Identity {
	if id.Name != "" && id.Email != "" {
		return id
	}
	if global, err := gitconfig.LoadConfig(gitconfig.GlobalScope); err == nil {
		if id.Name == "" {
			id.Name = global.User.Name
		}
		if id.Email == "" {
			id.Email = global.User.Email
		}
	}
	if id.Name == "" {
		id.Name = "draugr"
	}
	if id.Email == "" {
		id.Email = "draugr@localhost"
	}
	return id
}

// redactedError masks credentials in a wrapped error's message.
type redactedError struct {
	err error
}

func redact(err error) error {
	if err == nil {
		return nil
	}
	return &redactedError{err: err}
}

func (e *redactedError) Error() string { return git.Redact(e.err.Error()) }
func (e *redactedError) Unwrap() error { return e.err }
