package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/xgrid/internal/logging"
	"github.com/mesh-intelligence/xgrid/internal/paths"
	"github.com/mesh-intelligence/xgrid/internal/undo"
	"github.com/mesh-intelligence/xgrid/internal/vision"
	"github.com/mesh-intelligence/xgrid/pkg/grid"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "XGRID"

	cfgKeyDataDir       = "data_dir"
	cfgKeySize          = "size"
	cfgKeyLogLevel      = "log_level"
	cfgKeyLogFormat     = "log_format"
	cfgKeyUndoDepth     = "undo_depth"
	cfgKeyGeminiProject = "gemini.project"
	cfgKeyGeminiRegion  = "gemini.region"
	cfgKeyGeminiModel   = "gemini.model"

	defaultLogLevel  = "warn"
	defaultLogFormat = logging.FormatText
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# xgrid configuration

# Grid dimension (rows and columns)
size: 15

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Logging: level is one of debug, info, warn, error; format is text or json
log_level: warn
log_format: text

# Undo steps kept by the interactive editor
undo_depth: 100

# Photo import through Gemini on Vertex AI
gemini:
  # project:
  region: europe-west1
  model: gemini-2.5-flash
`

// settings is the resolved configuration of one command run.
type settings struct {
	configDir string
	dataDir   string
	size      int
	undoDepth int

	geminiProject string
	geminiRegion  string
	geminiModel   string
}

// env bundles the settings and logger shared by the commands.
type env struct {
	settings
	log *logrus.Logger
}

// loadConfig reads config.yaml from configDir using Viper. It creates the
// directory and a default config.yaml on first run. Values may be
// overridden by XGRID_-prefixed environment variables (XGRID_SIZE,
// XGRID_GEMINI_PROJECT, ...); data_dir follows its own precedence chain in
// paths.ResolveDataDir.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeySize, grid.DefaultSize)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyLogFormat, defaultLogFormat)
	v.SetDefault(cfgKeyUndoDepth, undo.DefaultDepth)
	v.SetDefault(cfgKeyGeminiRegion, vision.DefaultRegion)
	v.SetDefault(cfgKeyGeminiModel, vision.DefaultModel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{
		cfgKeySize, cfgKeyLogLevel, cfgKeyLogFormat, cfgKeyUndoDepth,
		cfgKeyGeminiProject, cfgKeyGeminiRegion, cfgKeyGeminiModel,
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// loadEnv resolves directories, reads the configuration and builds the
// logger. Log output goes to logOut.
func loadEnv(logOut io.Writer) (*env, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, sysError("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return nil, sysError("%w", err)
	}

	dataDir, err := paths.ResolveDataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, sysError("resolve data dir: %w", err)
	}

	size := v.GetInt(cfgKeySize)
	if size < 1 {
		return nil, userError("invalid size %d in configuration: must be at least 1", size)
	}

	level := flags.logLevel
	if level == "" {
		level = v.GetString(cfgKeyLogLevel)
	}
	log, err := logging.New(level, v.GetString(cfgKeyLogFormat), logOut)
	if err != nil {
		return nil, userError("%w", err)
	}

	return &env{
		settings: settings{
			configDir:     configDir,
			dataDir:       dataDir,
			size:          size,
			undoDepth:     v.GetInt(cfgKeyUndoDepth),
			geminiProject: v.GetString(cfgKeyGeminiProject),
			geminiRegion:  v.GetString(cfgKeyGeminiRegion),
			geminiModel:   v.GetString(cfgKeyGeminiModel),
		},
		log: log,
	}, nil
}
