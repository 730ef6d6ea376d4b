package config

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var Path = "imgdoc.yaml"

var instance *DocsConfig
var singletonLock = &sync.Once{}

type GeneralConfig struct {
	LogDirectory string `yaml:"logDirectory"`
	LogColors    bool   `yaml:"logColors"`
	JsonLogs     bool   `yaml:"jsonLogs"`
	LogLevel     string `yaml:"logLevel"`
}

type ScanConfig struct {
	NumWorkers int `yaml:"numWorkers"`
}

type SentryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Dsn         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
	Debug       bool   `yaml:"debug"`
}

type DocsConfig struct {
	General GeneralConfig `yaml:"general"`
	Scan    ScanConfig    `yaml:"scan"`
	Sentry  SentryConfig  `yaml:"sentry"`
}

func NewDefaultConfig() *DocsConfig {
	return &DocsConfig{
		General: GeneralConfig{
			LogDirectory: "-",
			LogColors:    false,
			JsonLogs:     false,
			LogLevel:     "info",
		},
		Scan: ScanConfig{
			NumWorkers: 4,
		},
		Sentry: SentryConfig{
			Enabled: false,
		},
	}
}

// Get returns the loaded configuration. A missing config file is not an
// error: the defaults cover the common standalone invocation.
func Get() *DocsConfig {
	singletonLock.Do(func() {
		c, err := reloadConfig()
		if err != nil {
			logrus.Warn("Error loading configuration, using defaults: ", err)
			c = NewDefaultConfig()
		}
		instance = c
	})
	return instance
}

func reloadConfig() (*DocsConfig, error) {
	c := NewDefaultConfig()

	if _, err := os.Stat(Path); os.IsNotExist(err) {
		return c, nil
	}

	buffer, err := os.ReadFile(Path)
	if err != nil {
		return nil, err
	}
	if err = yaml.Unmarshal(buffer, c); err != nil {
		return nil, err
	}
	return c, nil
}
