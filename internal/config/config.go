// This file defines the configuration structure for the application.
package config

import (
	// use Viper for loading the config.yml file.
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration settings for the application.
// It maps directly to the structure of config.yml.
type Config struct {
	Port         int    `mapstructure:"port"`
	CacheTTL     int    `mapstructure:"cache_ttl"`     // seconds
	WarmInterval int    `mapstructure:"warm_interval"` // minutes, 0 disables the warm scan job
	Provider     string `mapstructure:"provider"`
	Library      struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"library"`
	Metadata struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"metadata"`
	Settings struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"settings"`
}

// Load reads configuration from a file named "config.yml" in the
// current directory and unmarshals it into a Config struct.
func Load() (*Config, error) {
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or "yaml"
	viper.AddConfigPath(".")      // looking for config in the current directory

	// --- Environment Variable Overrides ---
	// e.g. HONDANA_LIBRARY_PATH overrides the `library.path` key.
	viper.SetEnvPrefix("HONDANA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("port", 8000)
	viper.SetDefault("cache_ttl", 300)
	viper.SetDefault("warm_interval", 0)
	viper.SetDefault("provider", "mockhub")
	viper.SetDefault("library.path", "./downloads")
	viper.SetDefault("metadata.path", "./metadata.json")
	viper.SetDefault("settings.path", "./settings.json")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error and use defaults
		} else {
			// Config file was found but another error was produced
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
