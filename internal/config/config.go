package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/hanzi/internal/catalog"
	"github.com/abhisek/hanzi/internal/quiz"
	"github.com/abhisek/hanzi/internal/store"
)

// EnvPrefix is prepended to every environment override, e.g.
// HANZI_STORAGE_DRIVER for storage.driver.
const EnvPrefix = "HANZI"

// Config holds all runtime settings.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Log     LogConfig     `mapstructure:"log"`
	Quiz    QuizConfig    `mapstructure:"quiz"`
	Speech  SpeechConfig  `mapstructure:"speech"`
	Study   StudyConfig   `mapstructure:"study"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"` // sqlite, sqlite3 or postgres
	DSN    string `mapstructure:"dsn"`    // empty means the default SQLite file
}

type CatalogConfig struct {
	Path string `mapstructure:"path"` // empty means the embedded dataset
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type QuizConfig struct {
	Questions int    `mapstructure:"questions"`
	Mode      string `mapstructure:"mode"`
	Level     string `mapstructure:"level"`
}

type SpeechConfig struct {
	Command string `mapstructure:"command"` // empty disables pronunciation
	Locale  string `mapstructure:"locale"`
}

type StudyConfig struct {
	TickMinutes int `mapstructure:"tick_minutes"`
}

// Options controls where Load looks.
type Options struct {
	// File is an explicit config file. When empty, config.yaml is looked
	// up in the user config directory and a missing file is not an error.
	File string
	// EnvFiles are dotenv files loaded before the environment is read.
	// Missing files are skipped. Defaults to ".env".
	EnvFiles []string
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Storage: StorageConfig{Driver: store.DriverSQLite},
		Log:     LogConfig{Level: "info", File: defaultLogFile()},
		Quiz:    QuizConfig{Questions: quiz.DefaultQuestionCount, Mode: string(quiz.ModeMeaning)},
		Speech:  SpeechConfig{Locale: "zh-CN"},
		Study:   StudyConfig{TickMinutes: 1},
	}
}

// Load reads configuration with precedence env > file > defaults.
func Load(opts Options) (Config, error) {
	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", opts.File, err)
		}
	} else if dir := configDir(); dir != "" {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case store.DriverSQLite, store.DriverSQLiteCGO:
	case store.DriverPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Quiz.Questions <= 0 {
		return fmt.Errorf("quiz.questions must be positive, got %d", c.Quiz.Questions)
	}
	if _, err := quiz.ParseMode(c.Quiz.Mode); err != nil {
		return err
	}
	if _, err := catalog.ParseLevel(c.Quiz.Level); err != nil {
		return err
	}
	if c.Study.TickMinutes < 0 {
		return fmt.Errorf("study.tick_minutes must not be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("storage.driver", d.Storage.Driver)
	v.SetDefault("storage.dsn", d.Storage.DSN)
	v.SetDefault("catalog.path", d.Catalog.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("quiz.questions", d.Quiz.Questions)
	v.SetDefault("quiz.mode", d.Quiz.Mode)
	v.SetDefault("quiz.level", d.Quiz.Level)
	v.SetDefault("speech.command", d.Speech.Command)
	v.SetDefault("speech.locale", d.Speech.Locale)
	v.SetDefault("study.tick_minutes", d.Study.TickMinutes)
}

// configDir returns $XDG_CONFIG_HOME/hanzi or ~/.config/hanzi.
func configDir() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "hanzi")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "hanzi")
}

// defaultLogFile places the log next to the default database.
func defaultLogFile() string {
	db, err := store.DefaultDBPath()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(db), "hanzi.log")
}
