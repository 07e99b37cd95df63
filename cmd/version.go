package cmd

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Mahdiglm/draugr-deploy/cli"
	"github.com/Mahdiglm/draugr-deploy/version"
)

func NewVersionCmd() *cobra.Command {
	return cli.NewVersionCommand("draugr", versionInfo(version.GetInfo()))
}

func versionInfo(info version.Info) cli.VersionInfo {
	return cli.VersionInfo{
		Version:   info.Version,
		Commit:    info.Commit,
		Branch:    info.Branch,
		BuildDate: info.BuildDate,
		BuildArch: runtime.GOARCH,
	}
}
