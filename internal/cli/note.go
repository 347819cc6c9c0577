package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/yakstack/internal/engine"
)

// NewNoteCommand creates the note command group.
func NewNoteCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Create and edit notes",
	}
	cmd.AddCommand(newNoteAddCommand(opts))
	cmd.AddCommand(newNoteEditCommand(opts))
	return cmd
}

// newNoteAddCommand appends a note.create request for the current yak and
// prints the assigned frame ID. The note materializes when its frame is
// observed back; the printed ID is the transport acknowledgment only.
func newNoteAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <content>...",
		Short: "Create a note in the current yak",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.Join(args, " ")
			return withEngine(cmd.Context(), opts, func(ctx context.Context, e *engine.Engine) error {
				id, err := e.CreateNote(ctx, content)
				if err != nil {
					return WrapExitError(ExitCommandError, "create note", err)
				}
				if id == "" {
					return NewExitError(ExitFailure, "no current yak")
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			})
		},
	}
}

// newNoteEditCommand appends a note.edit request superseding an existing
// note.
func newNoteEditCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <note-id> <content>...",
		Short: "Supersede an existing note with new content",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			noteID := args[0]
			content := strings.Join(args[1:], " ")
			return withEngine(cmd.Context(), opts, func(ctx context.Context, e *engine.Engine) error {
				id, err := e.EditNote(ctx, noteID, content)
				if err != nil {
					return WrapExitError(ExitCommandError, "edit note", err)
				}
				if id == "" {
					return NewExitError(ExitFailure, fmt.Sprintf("note %s not found", noteID))
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			})
		},
	}
}
