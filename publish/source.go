package publish

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/moby/patternmatcher"

	draugrerrors "github.com/Mahdiglm/draugr-deploy/errors"
)

type sourceFile struct {
	Name string // slash separated, relative to the source root
	Mode os.FileMode
}

// collect lists the files under cfg.SourceDir that make up the published
// tree, in walk order.
func collect(cfg Config) (billy.Filesystem, []sourceFile, error) {
	info, err := os.Stat(cfg.SourceDir)
	if err != nil {
		return nil, nil, draugrerrors.Wrap(err, draugrerrors.ErrCodeInvalidInput, "cannot read publish source directory").
			WithDetail("dir", cfg.SourceDir)
	}
	if !info.IsDir() {
		return nil, nil, draugrerrors.New(draugrerrors.ErrCodeInvalidInput, "publish source is not a directory").
			WithDetail("dir", cfg.SourceDir)
	}

	var excludes *patternmatcher.PatternMatcher
	if len(cfg.Exclude) > 0 {
		excludes, err = patternmatcher.New(cfg.Exclude)
		if err != nil {
			return nil, nil, draugrerrors.Wrap(err, draugrerrors.ErrCodeInvalidInput, "invalid exclude pattern")
		}
	}

	fs := osfs.New(cfg.SourceDir)
	var files []sourceFile

	err = util.Walk(fs, ".", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if p == "." {
			return nil
		}
		name := filepath.ToSlash(p)

		if !cfg.Dotfiles && strings.HasPrefix(path.Base(name), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if excludes != nil {
			matched, err := excludes.MatchesOrParentMatches(name)
			if err != nil {
				return err
			}
			if matched {
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if info.IsDir() {
			return nil
		}

		if info.Mode()&os.ModeSymlink != 0 {
			target, err := fs.Stat(p)
			if err != nil || target.IsDir() {
				// Dangling links and links to directories are not published.
				return nil
			}
			info = target
		}

		files = append(files, sourceFile{Name: name, Mode: info.Mode()})
		return nil
	})
	if err != nil {
		return nil, nil, draugrerrors.Wrap(err, draugrerrors.ErrCodeInternal, "failed to walk publish source").
			WithDetail("dir", cfg.SourceDir)
	}

	if len(files) == 0 {
		return nil, nil, draugrerrors.PublishEmpty(cfg.SourceDir)
	}
	return fs, files, nil
}
