package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"wayplan/internal/feed"
)

func newImportCmd(app *App) *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Fetch the shared feed and seed the editable itinerary",
		Long: `Fetches the tabular feed, parses it into an itinerary, and stores it
as the editable copy. When the feed is unreachable the last successfully
fetched copy is used instead; with no cached copy the command fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				url = app.Cfg.Feed.URL
			}
			if url == "" {
				return fmt.Errorf("no feed URL: pass --url or set feed.url")
			}

			st, err := openStore(cmd, app)
			if err != nil {
				return err
			}
			defer st.Close()

			client := &feed.Client{URL: url, Timeout: app.Cfg.Feed.Timeout()}
			it, fresh, err := feed.Refresh(cmd.Context(), client, st)
			if err != nil {
				return err
			}
			st.Save(it)

			days := len(it.Days)
			visits := 0
			for _, d := range it.Days {
				visits += len(d.Visits)
			}
			src := "feed"
			if !fresh {
				src = "cache (feed unreachable)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d day(s), %d place(s) from %s\n", days, visits, src)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "feed URL (overrides feed.url)")
	return cmd
}
