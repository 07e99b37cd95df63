package publish

import (
	"context"

	"github.com/sirupsen/logrus"
)

// UnattendedConfig is the fixed deployment of the DRAUGR front-end. The URL
// carries no credentials, so the push relies on ambient ones.
func UnattendedConfig() Config {
	return Config{
		SourceDir: "dist",
		Branch:    "gh-pages",
		RepoURL:   "https://github.com/Mahdiglm/DRAUGR-FrontEnd.git",
		Committer: Identity{
			Name:  "Mahdiglm",
			Email: "Mahdiglm@users.noreply.github.com",
		},
		Message:  "Deploy to GitHub Pages",
		Dotfiles: true,
		Silent:   false,
	}
}

// Deploy publishes cfg once and logs the outcome. There is no retry; the
// error is returned only so the caller can choose an exit status.
func Deploy(ctx context.Context, p Publisher, cfg Config, logger *logrus.Entry) error {
	result := <-Start(ctx, p, cfg)
	if result.Err != nil {
		logger.WithError(result.Err).Error("Deployment error")
		return result.Err
	}
	logger.WithField("branch", cfg.withDefaults().Branch).Info("Deployed successfully!")
	return nil
}
