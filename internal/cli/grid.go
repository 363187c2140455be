package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// resetConfirmation is the answer reset expects on stdin.
const resetConfirmation = "yes"

func newShowCmd() *cobra.Command {
	var numbers bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the grid",
		Long:  "Print the grid: '#' is a black square, '.' a white one and 'o' a circled one.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.ErrOrStderr(), nil)
			if err != nil {
				return err
			}
			defer s.detach()

			out := cmd.OutOrStdout()
			switch {
			case flags.jsonMode:
				if err := writeJSON(out, newGridJSON(s.grid)); err != nil {
					return sysError("write output: %w", err)
				}
			case numbers:
				renderNumbers(out, s.grid)
				fmt.Fprintln(out, totalLine(s.grid))
			default:
				renderGrid(out, s.grid)
				fmt.Fprintln(out, totalLine(s.grid))
			}
			return s.commit()
		},
	}
	cmd.Flags().BoolVar(&numbers, "numbers", false, "show entry numbers")
	return cmd
}

func newToggleCmd() *cobra.Command {
	var black, white bool

	cmd := &cobra.Command{
		Use:   "toggle <row> <col>",
		Short: "Flip a square between white and black",
		Long: "Flip the square at (row, col), counted from 0, between white and black.\n" +
			"The point-symmetric square takes the same color.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.ErrOrStderr(), nil)
			if err != nil {
				return err
			}
			defer s.detach()

			row, col, err := parseCoords(args, s.grid.Size())
			if err != nil {
				return err
			}
			target := !s.grid.CellAt(row, col).IsWhite()
			switch {
			case black:
				target = false
			case white:
				target = true
			}
			s.grid.ToggleWhite(row, col, target)
			if err := s.commit(); err != nil {
				return err
			}

			renderGrid(cmd.OutOrStdout(), s.grid)
			fmt.Fprintln(cmd.OutOrStdout(), totalLine(s.grid))
			return nil
		},
	}
	cmd.Flags().BoolVar(&black, "black", false, "make the square black")
	cmd.Flags().BoolVar(&white, "white", false, "make the square white")
	cmd.MarkFlagsMutuallyExclusive("black", "white")
	return cmd
}

func newCircleCmd() *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "circle <row> <col>",
		Short: "Flip the circle on a square",
		Long:  "Flip the circle on the square at (row, col), counted from 0. Circles are not mirrored.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.ErrOrStderr(), nil)
			if err != nil {
				return err
			}
			defer s.detach()

			row, col, err := parseCoords(args, s.grid.Size())
			if err != nil {
				return err
			}
			target := !s.grid.CellAt(row, col).IsCircle()
			if off {
				target = false
			}
			s.grid.ToggleCircle(row, col, target)
			if err := s.commit(); err != nil {
				return err
			}

			renderGrid(cmd.OutOrStdout(), s.grid)
			return nil
		},
	}
	cmd.Flags().BoolVar(&off, "off", false, "remove the circle")
	return cmd
}

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Make every square white and uncircled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				fmt.Fprintln(cmd.OutOrStdout(), "Are you sure you want to reset? Type yes")
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if strings.TrimSpace(answer) != resetConfirmation {
					return userError("reset cancelled")
				}
			}

			s, err := openSession(cmd.ErrOrStderr(), nil)
			if err != nil {
				return err
			}
			defer s.detach()

			s.grid.Reset()
			if err := s.commit(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), totalLine(s.grid))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.ErrOrStderr(), nil)
			if err != nil {
				return err
			}
			defer s.detach()

			if flags.jsonMode {
				across, down := s.grid.EntryCounts()
				if err := writeJSON(cmd.OutOrStdout(), countJSON{Across: across, Down: down, Total: across + down}); err != nil {
					return sysError("write output: %w", err)
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), totalLine(s.grid))
			}
			return s.commit()
		},
	}
}

func newEntriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entries",
		Short: "List the across and down entry numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.ErrOrStderr(), nil)
			if err != nil {
				return err
			}
			defer s.detach()

			if flags.jsonMode {
				if err := writeJSON(cmd.OutOrStdout(), newGridJSON(s.grid)); err != nil {
					return sysError("write output: %w", err)
				}
				return s.commit()
			}
			across, down := s.grid.Entries()
			fmt.Fprintf(cmd.OutOrStdout(), "Across (%d): %s\nDown (%d): %s\n",
				len(across), joinInts(across), len(down), joinInts(down))
			return s.commit()
		},
	}
}

// parseCoords parses row and column arguments and checks them against the
// grid size.
func parseCoords(args []string, size int) (row, col int, err error) {
	row, err = strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, userError("invalid row %q", args[0])
	}
	col, err = strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, userError("invalid column %q", args[1])
	}
	if row < 0 || row >= size || col < 0 || col >= size {
		return 0, 0, userError("position (%d, %d) is outside the %dx%d grid", row, col, size, size)
	}
	return row, col, nil
}

