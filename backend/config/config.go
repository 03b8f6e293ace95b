package config

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type HTTP struct {
	Host string
	Port int
}

type DB struct {
	Driver string // "sqlite" or "mysql"
	Path   string // sqlite file
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
}

type Queue struct {
	Backend   string // "db" or "redis"
	RedisAddr string
	RedisDB   int
}

type Registry struct {
	PresenceWindow time.Duration
	PurgeAfter     time.Duration // 0 disables eviction
}

type Config struct {
	HTTP     HTTP
	DB       DB
	Queue    Queue
	Registry Registry
	JWT      struct {
		Secret string
		Issuer string
		ExpMin int
	}
	// AgentToken is the shared bearer credential agents present on every call.
	agentToken atomic.Value // string

	presenceWindow atomic.Int64 // nanoseconds, reloadable
}

func (c *Config) AgentToken() string {
	if v := c.agentToken.Load(); v != nil {
		return v.(string)
	}
	return ""
}

func (c *Config) PresenceWindow() time.Duration {
	return time.Duration(c.presenceWindow.Load())
}

func (c *Config) setReloadable(token string, window time.Duration) {
	c.agentToken.Store(token)
	c.presenceWindow.Store(int64(window))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("relay.host", "0.0.0.0")
	v.SetDefault("relay.port", 8000)
	v.SetDefault("relay.db.driver", "sqlite")
	v.SetDefault("relay.db.path", "relay.db")
	v.SetDefault("relay.db.host", "127.0.0.1")
	v.SetDefault("relay.db.port", 3306)
	v.SetDefault("relay.db.user", "root")
	v.SetDefault("relay.db.pass", "")
	v.SetDefault("relay.db.name", "sysai_relay")
	v.SetDefault("relay.queue.backend", "db")
	v.SetDefault("relay.queue.redis_addr", "127.0.0.1:6379")
	v.SetDefault("relay.queue.redis_db", 0)
	v.SetDefault("relay.registry.presence_window", "30s")
	v.SetDefault("relay.registry.purge_after", "0s")
	v.SetDefault("relay.agent_token", "change-me-agent-token")
	v.SetDefault("relay.jwt.secret", "dev-secret")
	v.SetDefault("relay.jwt.issuer", "sysai-relay")
	v.SetDefault("relay.jwt.exp_min", 60)
}

// Load reads the YAML config at path and keeps watching it: presence window
// and agent token take effect without a restart, everything else needs one.
func Load(path string, onReload func()) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)
	haveFile := true
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// run on defaults when no config file is present
		haveFile = false
	}

	cfg := &Config{
		HTTP: HTTP{Host: v.GetString("relay.host"), Port: v.GetInt("relay.port")},
		DB: DB{
			Driver: v.GetString("relay.db.driver"),
			Path:   v.GetString("relay.db.path"),
			Host:   v.GetString("relay.db.host"),
			Port:   v.GetInt("relay.db.port"),
			User:   v.GetString("relay.db.user"),
			Pass:   v.GetString("relay.db.pass"),
			Name:   v.GetString("relay.db.name"),
		},
		Queue: Queue{
			Backend:   v.GetString("relay.queue.backend"),
			RedisAddr: v.GetString("relay.queue.redis_addr"),
			RedisDB:   v.GetInt("relay.queue.redis_db"),
		},
		Registry: Registry{
			PresenceWindow: v.GetDuration("relay.registry.presence_window"),
			PurgeAfter:     v.GetDuration("relay.registry.purge_after"),
		},
	}
	cfg.JWT.Secret = v.GetString("relay.jwt.secret")
	cfg.JWT.Issuer = v.GetString("relay.jwt.issuer")
	cfg.JWT.ExpMin = v.GetInt("relay.jwt.exp_min")
	if cfg.JWT.ExpMin <= 0 {
		cfg.JWT.ExpMin = 60
	}
	cfg.setReloadable(v.GetString("relay.agent_token"), cfg.Registry.PresenceWindow)

	if haveFile {
		v.OnConfigChange(func(e fsnotify.Event) {
			cfg.setReloadable(v.GetString("relay.agent_token"), v.GetDuration("relay.registry.presence_window"))
			if onReload != nil {
				onReload()
			}
		})
		v.WatchConfig()
	}

	return cfg, nil
}
