package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dm-vev/candelight/server"
	"github.com/dm-vev/candelight/server/console"
)

func main() {
	path := flag.String("config", "config.toml", "path to the configuration file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	uc, err := server.LoadUserConfig(*path)
	if err != nil {
		log.Error("load config: " + err.Error())
		os.Exit(1)
	}
	conf, err := uc.Config(log)
	if err != nil {
		log.Error("create config: " + err.Error())
		os.Exit(1)
	}
	mod := conf.New()
	defer func() {
		if err := mod.Close(); err != nil {
			log.Error("close: " + err.Error())
		}
	}()
	log.Info("Candelabras registered.", "blocks", mod.Codes())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	console.New(mod, log).Run(ctx)
}
