package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"sysai-relay/backend/global"
	"sysai-relay/backend/initialize"
)

func main() {
	cfgPath := flag.String("config", "config/relay.yaml", "Path to configuration file")
	flag.Parse()

	app, err := initialize.Build(*cfgPath)
	if err != nil {
		global.Logger.Error().Err(err).Msg("initialize failed")
		os.Exit(1)
	}

	stop := make(chan struct{})
	app.StartPurgeLoop(stop)

	addr := fmt.Sprintf("%s:%d", app.Cfg.HTTP.Host, app.Cfg.HTTP.Port)
	srv := &http.Server{Addr: addr, Handler: app.Router}

	go func() {
		global.Logger.Info().Str("addr", addr).Msg("relay listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			global.Logger.Error().Err(err).Msg("http server")
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	global.Logger.Info().Msg("shutdown signal received, exiting...")
	close(stop)
	_ = srv.Close()
}
