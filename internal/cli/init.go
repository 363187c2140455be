package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/xgrid/internal/paths"
	"github.com/mesh-intelligence/xgrid/internal/undo"
	"github.com/mesh-intelligence/xgrid/internal/vision"
	"github.com/mesh-intelligence/xgrid/pkg/grid"
)

// configFile holds the structure written to config.yaml by init.
type configFile struct {
	Size      int          `yaml:"size"`
	DataDir   string       `yaml:"data_dir,omitempty"`
	LogLevel  string       `yaml:"log_level"`
	LogFormat string       `yaml:"log_format"`
	UndoDepth int          `yaml:"undo_depth"`
	Gemini    geminiConfig `yaml:"gemini"`
}

type geminiConfig struct {
	Project string `yaml:"project,omitempty"`
	Region  string `yaml:"region"`
	Model   string `yaml:"model"`
}

func newInitCmd() *cobra.Command {
	var size int
	var project string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize xgrid configuration and storage",
		Long: "Create the configuration and data directories, write config.yaml if missing\n" +
			"and store a blank grid.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, size, project)
		},
	}
	cmd.Flags().IntVar(&size, "size", grid.DefaultSize, "grid dimension written to config.yaml")
	cmd.Flags().StringVar(&project, "gemini-project", "", "Google Cloud project used by import-image")
	return cmd
}

func runInit(cmd *cobra.Command, size int, project string) error {
	if size < 1 {
		return userError("invalid size %d: must be at least 1", size)
	}

	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return sysError("resolve config dir: %w", err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return sysError("create config directory: %w", err)
	}

	dataDir := ""
	if flags.dataDir != "" {
		if dataDir, err = filepath.Abs(flags.dataDir); err != nil {
			return sysError("resolve data dir: %w", err)
		}
	}

	cfg := configFile{
		Size:      size,
		DataDir:   dataDir,
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
		UndoDepth: undo.DefaultDepth,
		Gemini: geminiConfig{
			Project: project,
			Region:  vision.DefaultRegion,
			Model:   vision.DefaultModel,
		},
	}
	if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt), cfg); err != nil {
		return sysError("write config: %w", err)
	}

	s, err := openSession(cmd.ErrOrStderr(), nil)
	if err != nil {
		return err
	}
	defer s.detach()
	if err := s.commit(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "xgrid initialized successfully\nconfig: %s\ndata:   %s\n", s.configDir, s.dataDir)
	return nil
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. If it already exists, the function returns nil (idempotent).
func writeConfigIfMissing(path string, cfg configFile) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
