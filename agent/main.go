package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"sysai-relay/agent/internal/client"
	"sysai-relay/agent/internal/config"
	"sysai-relay/agent/internal/identity"
	"sysai-relay/agent/internal/logger"
	"sysai-relay/agent/internal/privilege"
	"sysai-relay/agent/internal/worker"
)

func main() {
	var (
		cfgPath = flag.String("config", "config/agent.yaml", "Path to configuration file")
		elevate = flag.Bool("elevate", false, "Attempt to elevate to admin (windows only)")
	)
	flag.Parse()

	cfg := config.Init(*cfgPath)
	if err := logger.Init(cfg.LogPath); err != nil {
		// fall back to stdout logging rather than dying over a log file
		_ = logger.Init("")
		logger.Warnf("cannot open log file %s: %v", cfg.LogPath, err)
	}

	if *elevate && !privilege.IsElevated() {
		if relaunched, err := privilege.AttemptElevate(); err != nil {
			logger.Errorf("cannot request admin privileges: %v", err)
		} else if relaunched {
			return
		}
	}
	if !privilege.IsElevated() {
		logger.Warn("agent is not elevated; service restarts will likely be denied")
	}

	agentID := identity.GetOrCreate(cfg.IDPath)
	logger.Infof("starting agent id=%s relay=%s interval=%v", agentID, cfg.RelayURL, cfg.PollInterval)

	c := client.New(cfg.RelayURL, cfg.Token, agentID)
	w := worker.New(c, agentID, cfg.PollInterval)

	go w.Run()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received, stopping agent...")
	w.Stop()
}
