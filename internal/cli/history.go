package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/xgrid/pkg/grid"
	"github.com/mesh-intelligence/xgrid/pkg/types"
)

// historyJSON is the --json form of one stored version.
type historyJSON struct {
	Version   int64     `json:"version"`
	Operation string    `json:"operation"`
	CreatedAt time.Time `json:"created_at"`
	Across    int       `json:"across"`
	Down      int       `json:"down"`
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List the stored versions of the grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.ErrOrStderr(), nil)
			if err != nil {
				return err
			}
			defer s.detach()

			entries, err := s.backend.History(grid.StoreKey)
			if err != nil {
				return sysError("read history: %w", err)
			}

			out := cmd.OutOrStdout()
			rows := make([]historyJSON, 0, len(entries))
			for _, h := range entries {
				across, down := grid.Parse(s.size, h.Data).EntryCounts()
				rows = append(rows, historyJSON{
					Version:   h.Version,
					Operation: h.Operation,
					CreatedAt: h.CreatedAt,
					Across:    across,
					Down:      down,
				})
			}
			if flags.jsonMode {
				if err := writeJSON(out, rows); err != nil {
					return sysError("write output: %w", err)
				}
				return nil
			}
			for _, r := range rows {
				fmt.Fprintf(out, "v%-4d %-7s %s  %d entries (%d across, %d down)\n",
					r.Version, r.Operation, r.CreatedAt.Local().Format(time.DateTime),
					r.Across+r.Down, r.Across, r.Down)
			}
			return nil
		},
	}
}

func newRevertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revert [version]",
		Short: "Restore a stored version of the grid",
		Long: "Restore a stored version of the grid (default: the version before the\n" +
			"current one). The restored pattern is saved as a new version.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.ErrOrStderr(), nil)
			if err != nil {
				return err
			}
			defer s.detach()

			entries, err := s.backend.History(grid.StoreKey)
			if err != nil {
				return sysError("read history: %w", err)
			}

			target, err := revertTarget(entries, args)
			if err != nil {
				return err
			}
			s.grid.Restore(target.Data)
			if err := s.commit(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Reverted to version %d\n", target.Version)
			renderGrid(cmd.OutOrStdout(), s.grid)
			fmt.Fprintln(cmd.OutOrStdout(), totalLine(s.grid))
			return nil
		},
	}
}

var errNoEarlierVersion = errors.New("no earlier version to revert to")

// revertTarget picks the entry named by args, or the one preceding the
// latest entry.
func revertTarget(entries []types.SlotHistoryEntry, args []string) (*types.SlotHistoryEntry, error) {
	if len(args) == 0 {
		if len(entries) < 2 {
			return nil, userError("%w", errNoEarlierVersion)
		}
		return &entries[len(entries)-2], nil
	}

	v, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return nil, userError("invalid version %q", args[0])
	}
	for i := range entries {
		if entries[i].Version == v {
			return &entries[i], nil
		}
	}
	return nil, userError("version %d: %w", v, types.ErrNotFound)
}
