package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/yakstack/internal/store"
)

// NewLogCommand creates the log command: dump the raw frame log.
func NewLogCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Dump the frame log in append order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(opts.DBPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "open store", err)
			}
			defer s.Close()

			frames, err := s.Frames(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "read frames", err)
			}

			w := cmd.OutOrStdout()
			if opts.Format == "json" {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(frames)
			}

			for _, f := range frames {
				line := fmt.Sprintf("%s  %s", f.ID, f.Topic)
				if f.Hash != "" {
					line += "  hash=" + f.Hash
				}
				if f.Meta != nil {
					if f.Meta.ContainerID != "" {
						line += "  yak=" + f.Meta.ContainerID
					}
					if f.Meta.OriginalNoteID != "" {
						line += "  supersedes=" + f.Meta.OriginalNoteID
					}
				}
				fmt.Fprintln(w, line)
			}
			return nil
		},
	}
}
