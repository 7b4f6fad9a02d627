package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard the edited itinerary",
		Long: `Discards the persisted editable itinerary. The next run starts from
the built-in default (or a fresh import). The feed cache is kept.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd, app)
			if err != nil {
				return err
			}
			defer st.Close()

			st.Reset()
			fmt.Fprintln(cmd.OutOrStdout(), "itinerary reset")
			return nil
		},
	}
}
