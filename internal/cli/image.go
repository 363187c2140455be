package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/xgrid/internal/vision"
)

// gridExtractor detects a grid pattern in an image.
type gridExtractor interface {
	ExtractGrid(ctx context.Context, image []byte, mimeType string) (*vision.Extraction, error)
}

// newExtractor builds the Gemini client. Tests replace it.
var newExtractor = func(ctx context.Context, project, region, model string) (gridExtractor, error) {
	return vision.NewClient(ctx, project, region, model)
}

func newImportImageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-image <file>",
		Short: "Replace the grid with one detected in a photo",
		Long: "Send a JPEG or PNG photo of a crossword grid to Gemini and replace the\n" +
			"stored grid with the detected pattern. Requires gemini.project in config.yaml\n" +
			"(or XGRID_GEMINI_PROJECT) and Application Default Credentials.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			mimeType, err := vision.MIMEType(path)
			if err != nil {
				return userError("%w", err)
			}
			image, err := os.ReadFile(path)
			if err != nil {
				return userError("read image: %w", err)
			}

			e, err := loadEnv(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if e.geminiProject == "" {
				return userError("gemini.project is not configured")
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			client, err := newExtractor(ctx, e.geminiProject, e.geminiRegion, e.geminiModel)
			if err != nil {
				return sysError("gemini client: %w", err)
			}
			e.log.WithFields(logrus.Fields{"file": path, "model": e.geminiModel}).Info("extracting grid")
			extraction, err := client.ExtractGrid(ctx, image, mimeType)
			if err != nil {
				return sysError("extract grid: %w", err)
			}

			s, err := e.open(nil)
			if err != nil {
				return err
			}
			defer s.detach()

			s.grid.Restore(extraction.Serialize(s.size))
			if err := s.commit(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %dx%d grid from %s\n", extraction.Rows, extraction.Cols, path)
			renderGrid(out, s.grid)
			fmt.Fprintln(out, totalLine(s.grid))
			return nil
		},
	}
}
