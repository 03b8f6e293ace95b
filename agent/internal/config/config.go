package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	RelayURL     string
	Token        string
	PollInterval time.Duration
	IDPath       string
	LogPath      string
}

var cfg AppConfig

func Init(path string) AppConfig {
	defaultDir := filepath.Join(os.TempDir(), "sysai-agent")

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// defaults
	v.SetDefault("agent.relay_url", "http://127.0.0.1:8000")
	v.SetDefault("agent.token", "change-me-agent-token")
	v.SetDefault("agent.poll_interval", "5s")
	v.SetDefault("agent.id_path", filepath.Join(defaultDir, "agent_id.txt"))
	v.SetDefault("agent.log_path", "")
	_ = v.ReadInConfig()

	cfg = AppConfig{
		RelayURL:     v.GetString("agent.relay_url"),
		Token:        v.GetString("agent.token"),
		PollInterval: v.GetDuration("agent.poll_interval"),
		IDPath:       v.GetString("agent.id_path"),
		LogPath:      v.GetString("agent.log_path"),
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	return cfg
}

func Get() AppConfig { return cfg }
