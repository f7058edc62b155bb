// Command slumber runs a Dragonfly server that skips the night once players sleep.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/df-mc/dragonfly/server"
	"github.com/df-mc/dragonfly/server/player/chat"
	"github.com/oriumgames/slumber"
)

func main() {
	settingsPath := flag.String("settings", "sleep.yml", "path of the sleep settings file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	chat.Global.Subscribe(chat.StdoutSubscriber{})

	settings, err := slumber.LoadSettings(*settingsPath)
	if err != nil {
		log.Error("load sleep settings", "path", *settingsPath, "error", err)
		os.Exit(1)
	}

	conf, err := server.DefaultConfig().Config(log)
	if err != nil {
		log.Error("create server config", "error", err)
		os.Exit(1)
	}
	srv := conf.New()
	srv.CloseOnProgramEnd()

	mngr := slumber.NewBuilder().
		Logger(log).
		Settings(settings).
		Bundle(slumber.DefaultBundle().Build()).
		Listener(slumber.DefaultMessageListener()).
		Init(srv.World())
	defer mngr.Shutdown()

	srv.Listen()
	for p := range srv.Accept() {
		sess, err := mngr.NewSession(p)
		if err != nil {
			log.Warn("create session", "player", p.Name(), "error", err)
			p.Disconnect("failed to initialize session")
			continue
		}
		p.Handle(slumber.NewHandler(sess))
	}
}
