package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/xgrid/internal/export"
)

func newExportCmd() *cobra.Command {
	var h export.Header
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the grid as a puzzle text file",
		Long: "Write the puzzle text format: title, author, copyright and note lines, the\n" +
			"grid ('.' white, space black), a blank line, then one empty clue line per\n" +
			"across entry followed by one per down entry.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.ErrOrStderr(), nil)
			if err != nil {
				return err
			}
			defer s.detach()

			if output == "" {
				if err := export.WriteText(cmd.OutOrStdout(), s.grid, h); err != nil {
					return sysError("write export: %w", err)
				}
				return s.commit()
			}

			f, err := os.Create(output)
			if err != nil {
				return sysError("create %s: %w", output, err)
			}
			if err := export.WriteText(f, s.grid, h); err != nil {
				f.Close()
				return sysError("write %s: %w", output, err)
			}
			if err := f.Close(); err != nil {
				return sysError("close %s: %w", output, err)
			}
			s.log.WithField("file", output).Info("grid exported")
			return s.commit()
		},
	}
	cmd.Flags().StringVar(&h.Title, "title", "", "puzzle title")
	cmd.Flags().StringVar(&h.Author, "author", "", "puzzle author")
	cmd.Flags().StringVar(&h.Copyright, "copyright", "", "copyright line")
	cmd.Flags().StringVar(&h.Note, "note", "", "note line")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
