package main

import (
	"os"

	"github.com/Mahdiglm/draugr-deploy/cli"
	"github.com/Mahdiglm/draugr-deploy/cmd"
	"github.com/Mahdiglm/draugr-deploy/tui"
)

func main() {
	tui.InitializeTUI()

	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		cli.NewErrorHandler(verbose).Handle(err)
		os.Exit(1)
	}
}
