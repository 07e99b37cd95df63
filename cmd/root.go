package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Mahdiglm/draugr-deploy/cli"
	"github.com/Mahdiglm/draugr-deploy/pkg/console"
	"github.com/Mahdiglm/draugr-deploy/state"
	"github.com/Mahdiglm/draugr-deploy/version"
)

// NewRootCmd builds the draugr command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := cli.NewStandardCommand(
		"draugr",
		"Deployment and maintenance tools for the DRAUGR front-end",
	)

	info := version.GetInfo()
	rootCmd.Version = info.Version
	cli.SetVersionTemplate(rootCmd, versionInfo(info))

	// The console registry is bound to the configured state store before
	// any subcommand runs.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		console.Init(store)
		return nil
	}

	rootCmd.AddCommand(NewDeployCmd())
	rootCmd.AddCommand(NewDeployInteractiveCmd())
	rootCmd.AddCommand(NewInstallCmd())
	rootCmd.AddCommand(NewResetStorageCmd())
	rootCmd.AddCommand(NewConsoleCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	cli.ApplyStyledHelpRecursive(rootCmd)
	return rootCmd
}

func openStore(cmd *cobra.Command) (*state.FileStore, error) {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return state.NewFileStore(cfg.State.Path)
}
