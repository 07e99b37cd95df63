package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Mahdiglm/draugr-deploy/config"
	"github.com/Mahdiglm/draugr-deploy/logging"
)

// CommandOptions holds common options for draugr commands
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
	JSONOutput bool
	Strict     bool
}

// NewStandardCommand creates a new command with the standard flags
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to draugr.yml config file")
	cmd.PersistentFlags().Bool("strict", false, "Exit non-zero when a tool fails instead of only logging")

	SetStyledHelp(cmd)

	return cmd
}

// GetLogger returns the component logger adjusted for --verbose and --json.
func GetLogger(cmd *cobra.Command, component string) *logrus.Entry {
	entry := logging.NewLogger(component)
	logger := entry.Logger

	opts := GetOptions(cmd)
	if opts.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	if opts.JSONOutput {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return entry
}

// GetOptions extracts common options from a command
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	strict, _ := cmd.Flags().GetBool("strict")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
		Strict:     strict,
	}
}

// LoadConfig loads --config if given, otherwise the nearest draugr config.
// No config file yields the built-in defaults.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path := GetOptions(cmd).ConfigFile; path != "" {
		return config.Load(path)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.LoadFrom(cwd)
}

// Outcome turns a tool failure that has already been logged into the
// command's result: swallowed by default, returned under --strict.
func Outcome(cmd *cobra.Command, err error) error {
	if err != nil && GetOptions(cmd).Strict {
		return err
	}
	return nil
}
