package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileNames are the config files Load looks for, in order.
var FileNames = []string{".bucketspectre.yaml", ".bucketspectre.yml"}

// Config holds bucketspectre configuration loaded from .bucketspectre.yaml.
type Config struct {
	Regions         []string `yaml:"regions"`
	Profile         string   `yaml:"profile"`
	Project         string   `yaml:"project"`
	CredentialsFile string   `yaml:"credentials_file"`
	Buckets         []string `yaml:"buckets"`
	BucketPrefix    string   `yaml:"bucket_prefix"`
	Prefix          string   `yaml:"prefix"`
	Mode            string   `yaml:"mode"`
	Versions        bool     `yaml:"versions"`
	GroupBy         string   `yaml:"group_by"`
	SizeUnit        string   `yaml:"size_unit"`
	DateFormat      string   `yaml:"date_format"`
	NameWidth       int      `yaml:"name_width"`
	Workers         int      `yaml:"workers"`
	Format          string   `yaml:"format"`
	Timeout         string   `yaml:"timeout"`
}

// TimeoutDuration parses the timeout string as a duration.
func (c Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Load searches for .bucketspectre.yaml or .bucketspectre.yml in the given
// directory and returns the parsed config. Returns an empty Config if no
// file is found.
func Load(dir string) (Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}

		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	return Config{}, nil
}
