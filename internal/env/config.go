package env

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/voidwall/xabctl/protocol"
)

// Config is resolved in layers: the optional TOML config file first, then
// `.env.local`, then real environment variables. Environment always wins.
type Config struct {
	SocketPath string `env:"XAB_SOCKET" toml:"socket_path"`
	Debug      bool   `env:"XAB_DEBUG" toml:"debug"`
}

func LoadConfig(ctx context.Context) (*Config, error) {
	config := Config{}

	if file, ok := configFile(); ok {
		if _, err := toml.DecodeFile(file, &config); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(".env.local"); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Socket returns the configured socket path, or the xab default when
// nothing overrides it.
func (c *Config) Socket() string {
	if c.SocketPath != "" {
		return c.SocketPath
	}

	return protocol.DefaultSocketPath
}

func configFile() (string, bool) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}

	file := filepath.Join(dir, "xabctl", "config.toml")
	if _, err := os.Stat(file); err != nil {
		return "", false
	}

	return file, true
}
