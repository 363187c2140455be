package cli

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// Clipboard messages.
const (
	msgCopied     = "Grid copied to clipboard"
	msgCopyFailed = "Failed to copy the grid"
)

// clipboardWrite places text on the system clipboard. Tests replace it.
var clipboardWrite = clipboard.WriteAll

// systemClipboard adapts clipboardWrite to tui.Clipboard.
type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboardWrite(text) }

func newCopyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy",
		Short: "Copy the serialized grid to the clipboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.ErrOrStderr(), nil)
			if err != nil {
				return err
			}
			defer s.detach()

			if err := clipboardWrite(s.grid.Serialize()); err != nil {
				s.log.WithError(err).Debug("clipboard write failed")
				return sysError("%s: %w", msgCopyFailed, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msgCopied)
			return s.commit()
		},
	}
}
