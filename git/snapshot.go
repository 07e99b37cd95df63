// Package git builds single-commit snapshots of a file tree in memory and
// force-pushes them to a remote branch.
package git

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
)

const remoteName = "origin"

// Signature identifies the committer of a snapshot.
type Signature struct {
	Name  string
	Email string
}

// Snapshot is an in-memory repository holding one orphan branch.
type Snapshot struct {
	Branch string

	fs   billy.Filesystem
	repo *gogit.Repository
	wt   *gogit.Worktree
	now  func() time.Time
}

// NewSnapshot initialises an empty in-memory repository whose HEAD points at
// refs/heads/<branch>.
func NewSnapshot(branch string) (*Snapshot, error) {
	fs := memfs.New()
	repo, err := gogit.Init(memory.NewStorage(), fs)
	if err != nil {
		return nil, err
	}

	head := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(branch))
	if err := repo.Storer.SetReference(head); err != nil {
		return nil, err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, err
	}

	return &Snapshot{Branch: branch, fs: fs, repo: repo, wt: wt, now: time.Now}, nil
}

// AddFile copies r into the worktree at name (slash separated) and stages it.
func (s *Snapshot) AddFile(name string, mode os.FileMode, r io.Reader) error {
	if dir := path.Dir(name); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := s.fs.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	_, err = s.wt.Add(name)
	return err
}

// Commit records the staged tree as the branch's only commit.
func (s *Snapshot) Commit(message string, who Signature) (plumbing.Hash, error) {
	sig := &object.Signature{Name: who.Name, Email: who.Email, When: s.now()}
	return s.wt.Commit(message, &gogit.CommitOptions{
		Author:    sig,
		Committer: sig,
	})
}

// Push force-pushes the branch to the same branch on remote, replacing
// whatever history it had. An up-to-date remote is not an error.
func (s *Snapshot) Push(ctx context.Context, remote *Remote, progress io.Writer) error {
	if _, err := s.repo.Remote(remoteName); errors.Is(err, gogit.ErrRemoteNotFound) {
		_, err = s.repo.CreateRemote(&config.RemoteConfig{
			Name: remoteName,
			URLs: []string{remote.URL},
		})
		if err != nil {
			return err
		}
	}

	ref := plumbing.NewBranchReferenceName(s.Branch)
	err := s.repo.PushContext(ctx, &gogit.PushOptions{
		RemoteName: remoteName,
		RefSpecs:   []config.RefSpec{config.RefSpec("+" + ref.String() + ":" + ref.String())},
		Auth:       remote.Auth,
		Force:      true,
		Progress:   progress,
	})
	if errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return nil
	}
	return err
}
