package cli

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/xgrid/internal/tui"
	"github.com/mesh-intelligence/xgrid/internal/undo"
	"github.com/mesh-intelligence/xgrid/pkg/grid"
)

// newScreen returns an initialized terminal screen. Tests replace it with a
// simulation screen.
var newScreen = func() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the grid interactively",
		Long: "Open the grid in the terminal editor.\n\n" +
			"  arrows     move (wrapping at the edges)\n" +
			"  space      toggle black/white (mirrored)\n" +
			"  o          toggle circle\n" +
			"  u, Ctrl-Z  undo\n" +
			"  r, Ctrl-Y  redo\n" +
			"  R          reset (press y to confirm)\n" +
			"  c          copy to clipboard\n" +
			"  q, Esc     quit",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Log lines would corrupt the screen; hold them until it is closed.
			var logBuf bytes.Buffer
			e, err := loadEnv(&logBuf)
			if err != nil {
				return err
			}
			defer io.Copy(cmd.ErrOrStderr(), &logBuf)

			screen, err := newScreen()
			if err != nil {
				return sysError("open terminal: %w", err)
			}

			ed := tui.New(screen, tui.Options{
				History:   undo.New(e.undoDepth),
				Clipboard: systemClipboard{},
				Logger:    e.log,
			})
			s, err := e.open(func(opts *grid.Options) {
				opts.Focuser = ed
				opts.OnChange = ed.OnChange
			})
			if err != nil {
				screen.Fini()
				return err
			}
			defer s.detach()

			ed.SetGrid(s.grid)
			ed.Run()
			screen.Fini()

			if err := s.commit(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), totalLine(s.grid))
			return nil
		},
	}
}
