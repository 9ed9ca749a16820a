package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config holds the resolved runtime configuration. Values come from the
// config file, CALCPAD_* environment variables, and built-in defaults, in
// rising precedence of env over file over defaults.
type Config struct {
	StorePath      string
	SuggestURL     string
	SuggestToken   string
	SuggestTimeout time.Duration
	SuggestRetries int
}

// LoadConfig reads configuration from cfgFile, or from $HOME/.calcpad.yaml
// when cfgFile is empty. A missing default config file is fine; a missing
// explicitly named one is an error. The file is never created automatically.
func LoadConfig(cfgFile string) (Config, error) {
	v := viper.New()

	home, err := homedir.Dir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(home)
		v.SetConfigName(".calcpad")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("CALCPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("store.path", filepath.Join(home, ".calcpad", "state.db"))
	v.SetDefault("suggest.url", "")
	v.SetDefault("suggest.token", "")
	v.SetDefault("suggest.timeout_seconds", 10)
	v.SetDefault("suggest.retries", 2)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return Config{
		StorePath:      v.GetString("store.path"),
		SuggestURL:     v.GetString("suggest.url"),
		SuggestToken:   v.GetString("suggest.token"),
		SuggestTimeout: time.Duration(v.GetInt("suggest.timeout_seconds")) * time.Second,
		SuggestRetries: v.GetInt("suggest.retries"),
	}, nil
}
