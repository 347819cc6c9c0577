package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/yakstack/internal/engine"
)

// yakRow is the JSON rendering of one yak in `yaks` output.
type yakRow struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Notes        int    `json:"notes"`
	Current      bool   `json:"current"`
	LastActivity string `json:"last_activity,omitempty"`
}

// NewYaksCommand creates the yaks command: list materialized yaks.
func NewYaksCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "yaks",
		Short: "List yaks with their note counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), opts, func(ctx context.Context, e *engine.Engine) error {
				current := e.CurrentYakID()

				rows := make([]yakRow, 0)
				for _, y := range e.Yaks() {
					row := yakRow{
						ID:      y.ID,
						Name:    y.Name,
						Notes:   len(e.NoteIndex(y.ID)),
						Current: y.ID == current,
					}
					if !y.LastActivity.IsZero() {
						row.LastActivity = y.LastActivity.Format("2006-01-02 15:04:05")
					}
					rows = append(rows, row)
				}

				w := cmd.OutOrStdout()
				if opts.Format == "json" {
					enc := json.NewEncoder(w)
					enc.SetIndent("", "  ")
					return enc.Encode(rows)
				}

				for _, r := range rows {
					marker := " "
					if r.Current {
						marker = "*"
					}
					fmt.Fprintf(w, "%s %s  %s  (%d notes)\n", marker, r.ID, r.Name, r.Notes)
				}
				return nil
			})
		},
	}
}
