package site

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by errors about invalid site configuration.
var ErrInvalidConfig = errors.New("invalid site config")

// Config is the site configuration.
type Config struct {
	// Directory containing the Markdown sources.
	Content string `yaml:"content" toml:"content"`
	// Directory whose content is copied verbatim into Public. Optional.
	Static string `yaml:"static" toml:"static"`
	// Directory to write the site into. It is wiped on each build, unless
	// Cache is set; then only outputs of removed pages are deleted.
	Public string `yaml:"public" toml:"public"`
	// Path of the page template, containing the {{ Title }} and
	// {{ Content }} placeholders.
	Template string `yaml:"template" toml:"template"`
	// Path of the page cache. Optional; when empty, every page is generated
	// on each build.
	Cache string `yaml:"cache" toml:"cache"`
	// Number of pages to generate concurrently. When 0, the number of CPUs
	// is used.
	Jobs int `yaml:"jobs" toml:"jobs"`
}

// LoadConfig reads a site configuration from a file. The format is YAML if
// the file name ends in ".yaml" or ".yml", and TOML if it ends in ".toml".
// Relative paths in the configuration are resolved against the directory of
// the file.
func LoadConfig(fname string) (*Config, error) {
	content, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	switch ext := filepath.Ext(fname); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
	case ".toml":
		var md toml.MetaData
		md, err = toml.Decode(string(content), cfg)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = fmt.Errorf("unknown keys %v", undecoded)
			}
		}
	default:
		return nil, fmt.Errorf("%w: %s: unsupported extension %q", ErrInvalidConfig, fname, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, fname, err)
	}
	if err := cfg.check(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, fname, err)
	}
	cfg.resolve(filepath.Dir(fname))
	return cfg, nil
}

func (cfg *Config) check() error {
	switch {
	case cfg.Content == "":
		return errors.New("content must be specified")
	case cfg.Public == "":
		return errors.New("public must be specified")
	case cfg.Template == "":
		return errors.New("template must be specified")
	case cfg.Jobs < 0:
		return fmt.Errorf("jobs must not be negative, got %d", cfg.Jobs)
	}
	return nil
}

func (cfg *Config) resolve(dir string) {
	for _, p := range []*string{&cfg.Content, &cfg.Static, &cfg.Public, &cfg.Template, &cfg.Cache} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

func (cfg *Config) jobs() int {
	if cfg.Jobs > 0 {
		return cfg.Jobs
	}
	return runtime.NumCPU()
}
