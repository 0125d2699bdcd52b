package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/sirupsen/logrus"
)

const (
	DefaultConfigPath = "/etc/avweb.yaml"
	DefaultBinary     = "avconv"
	DefaultParallel   = 5
)

type Config struct {
	AVWeb       AVWeb       `yaml:"avweb"`
	Transcoding Transcoding `yaml:"transcoding"`
}

type AVWeb struct {
	LogLevel logrus.Level `yaml:"log_level"`
}

type Transcoding struct {
	// Binary is the transcoder executable, looked up in PATH if not absolute.
	Binary string `yaml:"binary"`
	// Parallel is the maximum number of transcoder processes running at once.
	Parallel int64 `yaml:"parallel"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		AVWeb: AVWeb{
			LogLevel: logrus.InfoLevel,
		},
		Transcoding: Transcoding{
			Binary:   DefaultBinary,
			Parallel: DefaultParallel,
		},
	}
}

// New reads the configuration from customPath, AVWEB_CONFIG or the default
// location, in that order. Only the default location is allowed to be absent.
func New(customPath string) (*Config, error) {
	avwebCfgPath := DefaultConfigPath
	explicit := false

	if envPath, ok := os.LookupEnv("AVWEB_CONFIG"); ok && envPath != "" {
		avwebCfgPath = envPath
		explicit = true
	}

	if customPath != "" {
		avwebCfgPath = customPath
		explicit = true
	}

	rawConfig, err := os.ReadFile(avwebCfgPath)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("%w: %w (%w)", ErrConfiguration, ErrCantReadConfigFile, err)
	}

	return Parse(rawConfig)
}

// Parse decodes raw YAML on top of the defaults and validates the result.
func Parse(rawConfig []byte) (*Config, error) {
	config := Default()

	err := yaml.Unmarshal(rawConfig, config)
	if err != nil {
		return nil, fmt.Errorf("%w: %w (%w)", ErrConfiguration, ErrCantParseConfigFile, err)
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.Transcoding.Binary == "" {
		c.Transcoding.Binary = DefaultBinary
	}

	// Zero would never admit a job, so treat it as unset.
	if c.Transcoding.Parallel == 0 {
		c.Transcoding.Parallel = DefaultParallel
	}

	if c.Transcoding.Parallel < 0 {
		return fmt.Errorf(
			"%w: %w (%d)", ErrConfiguration, ErrInvalidParallel, c.Transcoding.Parallel,
		)
	}

	return nil
}
