// Package config assembles the server settings from built-in defaults, an
// optional YAML file, MYIT_* environment variables and command-line flags,
// each layer overriding the previous one.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings of the server.
type Config struct {
	Addr              string `yaml:"addr"`
	DBPath            string `yaml:"db"`
	LogPath           string `yaml:"log"`
	UsersFile         string `yaml:"users_file"`
	CORSOrigin        string `yaml:"cors_origin"`
	ImageMaxDimension int    `yaml:"image_max_dimension"`
	MaxBodyBytes      int64  `yaml:"max_body_bytes"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Addr:              ":5000",
		DBPath:            "inventory.db",
		CORSOrigin:        "*",
		ImageMaxDimension: 1024,
		MaxBodyBytes:      1 << 20,
	}
}

const usage = `Usage: myit serve [flags]

Flags:
  -c, -config <path>      YAML configuration file
  -a, -addr <host:port>   listen address (default: :5000)
  -d, -db <path>          SQLite database path (default: inventory.db)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -u, -users <path>       YAML file with accounts seeded into an empty database
      -cors <origin>      allowed CORS origin (default: *)
  -h, -help               show this help and exit
`

// Load builds the configuration from args (without the program name) and
// the environment as seen through getenv.
func Load(args []string, getenv func(string) string, out io.Writer) (*Config, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { fmt.Fprint(out, usage) }

	var path string
	fs.StringVar(&path, "config", "", "")
	fs.StringVar(&path, "c", "", "")

	var f Config
	fs.StringVar(&f.Addr, "addr", "", "")
	fs.StringVar(&f.Addr, "a", "", "")
	fs.StringVar(&f.DBPath, "db", "", "")
	fs.StringVar(&f.DBPath, "d", "", "")
	fs.StringVar(&f.LogPath, "log", "", "")
	fs.StringVar(&f.LogPath, "l", "", "")
	fs.StringVar(&f.UsersFile, "users", "", "")
	fs.StringVar(&f.UsersFile, "u", "", "")
	fs.StringVar(&f.CORSOrigin, "cors", "", "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	cfg := Defaults()

	if path == "" {
		path = getenv("MYIT_CONFIG")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(getenv); err != nil {
		return nil, err
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "addr", "a":
			cfg.Addr = f.Addr
		case "db", "d":
			cfg.DBPath = f.DBPath
		case "log", "l":
			cfg.LogPath = f.LogPath
		case "users", "u":
			cfg.UsersFile = f.UsersFile
		case "cors":
			cfg.CORSOrigin = f.CORSOrigin
		}
	})

	return &cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv(getenv func(string) string) error {
	strs := []struct {
		key string
		dst *string
	}{
		{"MYIT_ADDR", &c.Addr},
		{"MYIT_DB", &c.DBPath},
		{"MYIT_LOG", &c.LogPath},
		{"MYIT_USERS_FILE", &c.UsersFile},
		{"MYIT_CORS_ORIGIN", &c.CORSOrigin},
	}
	for _, s := range strs {
		if v := getenv(s.key); v != "" {
			*s.dst = v
		}
	}

	if v := getenv("MYIT_IMAGE_MAX_DIMENSION"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MYIT_IMAGE_MAX_DIMENSION: %w", err)
		}
		c.ImageMaxDimension = n
	}
	return nil
}
