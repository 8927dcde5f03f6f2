package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config exposes the settings every surface needs.
type Config interface {
	BasePath() string
	APIURL() string
	Timeout() time.Duration
	LogFile() string
	LogLevel() string
}

const (
	DefaultPath   = "~/.dreamlog"
	DefaultAPIURL = "http://localhost:8000/api"
)

// LoadConfig reads .dreamlog(.yaml|.json|.toml) from $DREAMLOG_CONFIG_PATH,
// the working directory or $HOME, layered under DREAMLOG_* environment
// variables and any flags already bound to v. A nil v gets a fresh instance.
func LoadConfig(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	v.SetDefault("path", DefaultPath)
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("timeout", "15s")
	v.SetDefault("log_level", "info")
	v.SetConfigName(".dreamlog")
	v.SetEnvPrefix("DREAMLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("DREAMLOG_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	base, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	logFile := v.GetString("log_file")
	if logFile == "" {
		logFile = filepath.Join(base, "dreamlog.log")
	} else if logFile, err = homedir.Expand(logFile); err != nil {
		return nil, fmt.Errorf("store: expand log_file: %w", err)
	}
	timeout := v.GetDuration("timeout")
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &fileConfig{
		Path:  base,
		API:   strings.TrimRight(v.GetString("api_url"), "/"),
		Wait:  timeout,
		Log:   logFile,
		Level: v.GetString("log_level"),
	}, nil
}

type fileConfig struct {
	Path  string        `json:"path"`
	API   string        `json:"api_url"`
	Wait  time.Duration `json:"timeout"`
	Log   string        `json:"log_file"`
	Level string        `json:"log_level"`
}

func (f *fileConfig) BasePath() string       { return f.Path }
func (f *fileConfig) APIURL() string         { return f.API }
func (f *fileConfig) Timeout() time.Duration { return f.Wait }
func (f *fileConfig) LogFile() string        { return f.Log }
func (f *fileConfig) LogLevel() string       { return f.Level }
