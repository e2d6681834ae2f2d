package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/icodeforyou/option-go/logging"
	"github.com/icodeforyou/option-go/types/option"
	"github.com/spf13/viper"
)

type AppConfigDatabase struct {
	// Path to the SQLite file, default: "option-go.db"
	Path *string
}

func (d AppConfigDatabase) GetPath() string {
	return option.FromPtr(d.Path).UnwrapOr("option-go.db")
}

type AppConfigLogging struct {
	// Min log level for database : "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(option.FromPtr(l.DbLevel))
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	isText := option.MapOr(option.FromPtr(l.DbAttrsFormat), false, func(f string) bool {
		return strings.EqualFold(f, "text")
	})
	if isText {
		return logging.LogAttrFormatText
	}
	return logging.LogAttrFormatJSON
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	return option.FromPtr(l.DbMaxEntries).UnwrapOr(10000)
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return logging.LevelFromString(option.FromPtr(l.ConsoleLevel))
}

type AppConfigFormat struct {
	// Nesting depth printed before values are elided, default: option.DefaultDepth
	Depth *int `mapstructure:"depth"`
}

func (f AppConfigFormat) GetDepth() int {
	return option.FromPtr(f.Depth).UnwrapOr(option.DefaultDepth)
}

type AppConfigMaintenance struct {
	// Cron spec for the log purge, default: "30 2 * * *"
	RunAt *string `mapstructure:"run_at"`
}

func (m AppConfigMaintenance) GetRunAt() string {
	return option.FromPtr(m.RunAt).
		Filter(func(s string) bool { return strings.TrimSpace(s) != "" }).
		UnwrapOr("30 2 * * *")
}

type AppConfig struct {
	Database    AppConfigDatabase    `mapstructure:"database"`
	Logging     AppConfigLogging     `mapstructure:"logging"`
	Format      AppConfigFormat      `mapstructure:"format"`
	Maintenance AppConfigMaintenance `mapstructure:"maintenance"`
}

// Load reads path, or config/config.yaml when path is empty. A missing
// default file is not an error; every setting has a default.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("config")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range []string{
		"database.path",
		"logging.db_level",
		"logging.db_attrs_format",
		"logging.db_max_entries",
		"logging.console_level",
		"format.depth",
		"maintenance.run_at",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("unable to bind env for %s: %w", key, err)
		}
	}

	var c AppConfig

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	return &c, nil
}
