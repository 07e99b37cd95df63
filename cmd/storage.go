package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mahdiglm/draugr-deploy/cli"
	"github.com/Mahdiglm/draugr-deploy/logging"
	"github.com/Mahdiglm/draugr-deploy/pkg/console"
	"github.com/Mahdiglm/draugr-deploy/state"
	"github.com/Mahdiglm/draugr-deploy/tui/components/table"
)

var errResetFailed = errors.New("storage reset did not complete")

func NewResetStorageCmd() *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "reset-storage",
		Short: "Sign out and empty the cart in the persisted client state",
		Long: `Removes the token and user keys and stores an empty cart. The same
operation is available as 'draugr console resetDraugrStorage'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}

			if !state.ResetLocalStorage(store) {
				return cli.Outcome(cmd, errResetFailed)
			}

			if show {
				return printSnapshot(cmd, store)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Print the stored keys after the reset")
	return cmd
}

func NewConsoleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "console [operation]",
		Short: "Run a named maintenance operation, or list them",
		Example: `# List operations
draugr console

# Reset the persisted client state
draugr console resetDraugrStorage`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				rows := make([][]string, 0)
				for _, name := range console.Names() {
					rows = append(rows, []string{name})
				}
				fmt.Fprintln(cmd.OutOrStdout(), table.Render([]string{"Operation"}, rows))
				return nil
			}

			ok, err := console.Invoke(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return cli.Outcome(cmd, errResetFailed)
			}
			return nil
		},
	}
	return cmd
}

func printSnapshot(cmd *cobra.Command, store *state.FileStore) error {
	entries, err := store.Snapshot()
	if err != nil {
		return err
	}
	pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
	pretty.Path("state", store.Path)
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Key, e.Value})
	}
	fmt.Fprintln(cmd.OutOrStdout(), table.Render([]string{"Key", "Value"}, rows))
	return nil
}
