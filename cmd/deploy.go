package cmd

import (
	"bytes"
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Mahdiglm/draugr-deploy/cli"
	"github.com/Mahdiglm/draugr-deploy/config"
	"github.com/Mahdiglm/draugr-deploy/publish"
	"github.com/Mahdiglm/draugr-deploy/tui/components/loading"
)

func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Publish dist to the gh-pages branch using ambient credentials",
		Long: `Force-pushes the contents of the build directory as the entire tree of the
gh-pages branch of the DRAUGR front-end repository. Credentials come from the
environment (GITHUB_TOKEN or GH_TOKEN) or the git credential setup of the machine.`,
		Example: `# Publish with the built-in settings
draugr deploy

# Fail the shell pipeline when the publish fails
draugr deploy --strict`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cli.GetLogger(cmd, "deploy")

			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			pubCfg := publish.UnattendedConfig().WithSection(cfg.Publish)

			err = publish.Deploy(cmd.Context(), newPublisher(cmd, logger), pubCfg, logger)
			return cli.Outcome(cmd, err)
		},
	}
	return cmd
}

func NewDeployInteractiveCmd() *cobra.Command {
	var mask, verify bool

	cmd := &cobra.Command{
		Use:   "deploy-interactive",
		Short: "Prompt for GitHub credentials, then publish dist to gh-pages",
		Long: `Asks for a GitHub username and personal access token, then force-pushes the
build directory to the gh-pages branch with those credentials. The
credentials are kept in memory only.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cli.GetLogger(cmd, "deploy")

			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}

			p := publish.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), newPublisher(cmd, logger))
			p.Logger = logger
			p.Configure = interactiveOverrides(cfg.Publish)

			if mask {
				if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
					p.ReadSecret = func() (string, error) {
						b, err := term.ReadPassword(int(f.Fd()))
						return string(b), err
					}
				}
			}
			if verify {
				p.Verify = (&publish.Verifier{}).Verify
			}

			err = p.Run(cmd.Context())
			return cli.Outcome(cmd, err)
		},
	}

	cmd.Flags().BoolVar(&mask, "mask", false, "Do not echo the token while typing it")
	cmd.Flags().BoolVar(&verify, "verify", false, "Check the token against the GitHub API before pushing")
	return cmd
}

// interactiveOverrides applies the source, commit and identity settings of
// the publish section. The target and credentials come from the answers.
func interactiveOverrides(section config.PublishSection) func(publish.Config) publish.Config {
	return func(c publish.Config) publish.Config {
		c.SourceDir = orDefault(section.Dir, c.SourceDir)
		c.Message = orDefault(section.Message, c.Message)
		c.Committer.Name = orDefault(section.Name, c.Committer.Name)
		c.Committer.Email = orDefault(section.Email, c.Committer.Email)
		if len(section.Exclude) > 0 {
			c.Exclude = append([]string(nil), section.Exclude...)
		}
		return c
	}
}

// indicatorPublisher shows the loading indicator while the wrapped publish runs.
type indicatorPublisher struct {
	inner  publish.Publisher
	logger *logrus.Entry
	out    *os.File
}

func (p *indicatorPublisher) Publish(ctx context.Context, cfg publish.Config) error {
	// Log lines would tear the indicator; hold them until it is gone.
	var held bytes.Buffer
	previous := p.logger.Logger.Out
	p.logger.Logger.SetOutput(&held)
	defer func() {
		p.logger.Logger.SetOutput(previous)
		_, _ = previous.Write(held.Bytes())
	}()

	return loading.Run(ctx, p.out, func(ctx context.Context) error {
		return p.inner.Publish(ctx, cfg)
	})
}

// newPublisher returns the git publisher, wrapped in the loading indicator
// when stdout is an interactive terminal and output is meant for humans.
func newPublisher(cmd *cobra.Command, logger *logrus.Entry) publish.Publisher {
	g := publish.NewGitPublisher()
	g.Logger = logger

	opts := cli.GetOptions(cmd)
	out, ok := cmd.OutOrStdout().(*os.File)
	if !ok || opts.JSONOutput || opts.Verbose || !isatty.IsTerminal(out.Fd()) {
		return g
	}
	return &indicatorPublisher{inner: g, logger: logger, out: out}
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
