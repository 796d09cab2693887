// main.go - Main game loop
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"gesturegame/config"
	"gesturegame/game"
	"gesturegame/store"
)

// cellPx is how many board pixels one terminal cell stands for.
const cellPx = 20

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.ClientFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "gesture server base URL")
	flag.DurationVar(&cfg.PollInterval, "interval", cfg.PollInterval, "gesture poll interval")
	flag.IntVar(&cfg.BoardWidth, "width", cfg.BoardWidth, "board width in pixels")
	flag.IntVar(&cfg.BoardHeight, "height", cfg.BoardHeight, "board height in pixels")
	flag.IntVar(&cfg.PlayerSize, "player", cfg.PlayerSize, "player size in pixels")
	flag.StringVar(&cfg.Store, "store", cfg.Store, "high score store: file or badger")
	flag.StringVar(&cfg.StorePath, "store-path", cfg.StorePath, "high score store location")
	flag.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file (empty disables logging)")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "debug logging")
	flag.BoolVar(&cfg.Sound, "sound", cfg.Sound, "play a chime on every hit")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := setupLogging(cfg.LogFile, cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	st, err := store.Open(cfg.Store, cfg.StorePath)
	if err != nil {
		log.Error("open store", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer st.Close()

	if err := interfaceIniciar(); err != nil { // iniciar a interface
		fmt.Fprintln(os.Stderr, "terminal:", err)
		return
	}
	defer interfaceFinalizar()

	var chime *Chime
	if cfg.Sound {
		chime = NewChime(log)
		defer chime.Close()
	}

	geom := game.FixedGeometry{
		BoardSize:  game.Size{W: cfg.BoardWidth, H: cfg.BoardHeight},
		PlayerSize: game.Size{W: cfg.PlayerSize, H: cfg.PlayerSize},
		TargetSize: game.Size{W: game.TargetSpan, H: game.TargetSpan},
	}
	view := NewTermView(geom.BoardSize, cellPx)
	cliente := NewGestureClient(cfg.ServerURL, log)

	jogo := game.New(game.Options{
		Geometry:    geom,
		Sampler:     game.RandomSampler(rand.New(rand.NewSource(time.Now().UnixNano()))),
		Store:       st,
		View:        view,
		Logger:      log,
		OnCollision: chime.Hit,
	})

	loopPrincipal(jogo, cliente, view, cfg.PollInterval, log)
	log.Info("jogo encerrado", zap.Int("score", jogo.Snapshot().Score), zap.Int("high_score", jogo.Snapshot().HighScore))
}

func loopPrincipal(jogo *game.Game, cliente *GestureClient, view *TermView, interval time.Duration, log *zap.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jogo.Initialize(ctx)

	poller := game.NewPoller(clock.New(), interval, cliente.Fetch, log)
	results := poller.Start(ctx)

	done := make(chan error, 1)
	go func() { done <- game.NewRunner(jogo, log).Run(ctx, results) }()

	interfaceLerEventoTeclado(view)

	cancel()
	poller.Stop()
	<-done
}
