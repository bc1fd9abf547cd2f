package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/njchilds90/symroot"
	"github.com/njchilds90/symroot/internal/server"
)

const (
	configBaseName = "symroot"
	envPrefix      = "SYMROOT"

	configFlagName  = "config"
	verboseFlagName = "verbose"
	noColorFlagName = "no-color"

	maxPowerKey      = "simplify.max_power_expansion"
	foldKey          = "simplify.fold_transcendental"
	maxOrderKey      = "simplify.max_order"
	toleranceKey     = "roots.tolerance"
	maxIterKey       = "roots.max_iterations"
	maxBisectKey     = "roots.max_bisections"
	serverAddrKey    = "server.addr"
	serverClientsKey = "server.max_clients"
	parallelKey      = "roots.parallel"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultServerAddr    = ":8080"
	defaultMaxClients    = 100
	defaultParallel      = 4
	defaultLogFilename   = ".symroot.log"
	defaultLogLevel      = "info"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

// newViper returns a viper instance carrying every default. Values resolve
// as flag > env (SYMROOT_ROOTS_TOLERANCE) > config file > default.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(configBaseName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", configBaseName))
	}
	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	def := symroot.DefaultConfig()
	v.SetDefault(maxPowerKey, def.MaxPowerExpansion)
	v.SetDefault(foldKey, def.FoldTranscendental)
	v.SetDefault(maxOrderKey, def.MaxOrder)
	v.SetDefault(toleranceKey, def.Roots.Tolerance)
	v.SetDefault(maxIterKey, def.Roots.MaxIterations)
	v.SetDefault(maxBisectKey, def.Roots.MaxBisections)
	v.SetDefault(parallelKey, defaultParallel)
	v.SetDefault(serverAddrKey, defaultServerAddr)
	v.SetDefault(serverClientsKey, defaultMaxClients)

	v.SetDefault(logFilenameKey, defaultLogFilename)
	v.SetDefault(logLevelKey, defaultLogLevel)
	v.SetDefault(logVerboseKey, false)
	v.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	v.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	v.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	v.SetDefault(logCompressKey, defaultLogCompress)
	return v
}

// readConfig loads the config file. A missing file is only an error when
// its path was given explicitly.
func readConfig(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	}
	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err == nil || (path == "" && errors.As(err, &notFound)) {
		return nil
	}
	return fmt.Errorf("read config: %w", err)
}

// engineConfig assembles the library configuration from v.
func engineConfig(v *viper.Viper) symroot.Config {
	cfg := symroot.DefaultConfig()
	cfg.MaxPowerExpansion = v.GetInt(maxPowerKey)
	cfg.FoldTranscendental = v.GetBool(foldKey)
	cfg.MaxOrder = v.GetInt(maxOrderKey)
	cfg.Roots.Tolerance = v.GetFloat64(toleranceKey)
	cfg.Roots.MaxIterations = v.GetInt(maxIterKey)
	cfg.Roots.MaxBisections = v.GetInt(maxBisectKey)
	return cfg
}

func serverOptions(v *viper.Viper) server.Options {
	return server.Options{
		Addr:       v.GetString(serverAddrKey),
		MaxClients: v.GetInt(serverClientsKey),
		Config:     engineConfig(v),
	}
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(v *viper.Viper, flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}
	cobra.CheckErr(v.BindPFlag(key, flag))
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// numeric slog levels, e.g. -4 for debug
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// newLogger writes text records to a rotating log file. Debug level is used
// when verbose is set.
func newLogger(v *viper.Viper) *slog.Logger {
	logPath := strings.TrimSpace(v.GetString(logFilenameKey))
	if logPath == "" {
		logPath = defaultLogFilename
	}

	level := parseSlogLevel(v.GetString(logLevelKey), slog.LevelInfo)
	if v.GetBool(logVerboseKey) {
		level = slog.LevelDebug
	}

	w := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    v.GetInt(logMaxSizeKey),
		MaxBackups: v.GetInt(logMaxBackupsKey),
		MaxAge:     v.GetInt(logMaxAgeKey),
		Compress:   v.GetBool(logCompressKey),
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	}))
}
