package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// TomlServer holds HTTP server settings
type TomlServer struct {
	Hostname string `toml:"hostname"`
	Port     int    `toml:"port"`
}

// TomlMedia holds settings for the sermon/message media API
type TomlMedia struct {
	BaseURL string `toml:"base_url"`
	// Target scopes every archive query to one ministry feed
	Target string `toml:"target"`
	// RecapTagID is the tag used to fetch the "Latest Message" recap entries
	RecapTagID string `toml:"recap_tag_id"`
}

// TomlStreams holds settings for the live stream status API
type TomlStreams struct {
	URL                 string `toml:"url"`
	PollIntervalSeconds int    `toml:"poll_interval_seconds"`
}

// TomlCms holds settings for the CMS backing the connect screen
type TomlCms struct {
	BaseURL string `toml:"base_url"`
	Space   string `toml:"space"`
	Token   string `toml:"token"`
}

// TomlCampus holds settings for the campus content database
type TomlCampus struct {
	DatabaseURL string   `toml:"database_url"`
	Channels    []string `toml:"channels,omitempty"` // Content channels to surface; empty means all
}

// TomlConfig represents the top-level configuration
type TomlConfig struct {
	Server  TomlServer  `toml:"server"`
	Media   TomlMedia   `toml:"media"`
	Streams TomlStreams `toml:"streams"`
	Cms     TomlCms     `toml:"cms"`
	Campus  TomlCampus  `toml:"campus"`
}

func LoadConfig(path string) (*TomlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config TomlConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if config.Server.Port == 0 {
		config.Server.Port = 3000
	}
	if config.Streams.PollIntervalSeconds == 0 {
		config.Streams.PollIntervalSeconds = 60
	}

	return &config, nil
}
