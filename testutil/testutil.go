package testutil

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// RequireGit skips the test if the git binary is not available. Pushing to a
// local path goes through git-receive-pack.
func RequireGit(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// IsolateGitConfig points git at an empty home directory so the developer's
// global and system configuration (credential helpers included) is not read.
// The returned home receives .gitconfig when gitconfig is not empty.
func IsolateGitConfig(t *testing.T, gitconfig string) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(home, ".gitconfig"))
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "")

	if gitconfig != "" {
		require.NoError(t, os.WriteFile(filepath.Join(home, ".gitconfig"), []byte(gitconfig), 0o644))
	}
	return home
}

// InitBareRemote creates an empty bare repository and returns its path.
func InitBareRemote(t *testing.T) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "remote.git")
	_, err := gogit.PlainInit(dir, true)
	require.NoError(t, err, "failed to init bare remote")
	return dir
}

// WriteSiteTree writes files (slash-separated path -> content) under dir.
func WriteSiteTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// BranchFiles returns the tree at the tip of branch in the repository at path.
func BranchFiles(t *testing.T, path, branch string) map[string]string {
	t.Helper()

	commit := branchTip(t, path, branch)
	files := make(map[string]string)

	iter, err := commit.Files()
	require.NoError(t, err)
	err = iter.ForEach(func(f *object.File) error {
		r, err := f.Reader()
		if err != nil {
			return err
		}
		defer r.Close()
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		files[f.Name] = string(data)
		return nil
	})
	require.NoError(t, err)
	return files
}

// BranchHistory returns the commits reachable from branch, newest first.
func BranchHistory(t *testing.T, path, branch string) []*object.Commit {
	t.Helper()

	tip := branchTip(t, path, branch)
	var history []*object.Commit
	iter := object.NewCommitPreorderIter(tip, nil, nil)
	require.NoError(t, iter.ForEach(func(c *object.Commit) error {
		history = append(history, c)
		return nil
	}))
	return history
}

func branchTip(t *testing.T, path, branch string) *object.Commit {
	t.Helper()

	repo, err := gogit.PlainOpen(path)
	require.NoError(t, err)
	ref, err := repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	require.NoError(t, err, "branch %s not found", branch)
	commit, err := repo.CommitObject(ref.Hash())
	require.NoError(t, err)
	return commit
}
