package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Mahdiglm/draugr-deploy/cli"
	"github.com/Mahdiglm/draugr-deploy/install"
)

func NewInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Add react-router-dom to the front-end project",
		Long: `Runs the project's package manager (npm by default) to add one package,
with the terminal attached so installer output is shown live. A failure is
logged; the exit status stays 0 unless --strict is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}

			installer := install.FromConfig(cfg.Install)
			installer.Logger = cli.GetLogger(cmd, "install")
			installer.Stdin = cmd.InOrStdin()
			installer.Stdout = cmd.OutOrStdout()
			installer.Stderr = cmd.ErrOrStderr()

			return cli.Outcome(cmd, installer.Run(cmd.Context()))
		},
	}
	return cmd
}
