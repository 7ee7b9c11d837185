// Command arbiter hosts one five-seat Daifugō table over TCP: it accepts
// exactly five connections, handshakes each, then runs the configured
// number of games and prints the final point totals.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"daifugo/internal/config"
	"daifugo/internal/engine"
	"daifugo/internal/eventlog"
	"daifugo/internal/logging"
	"daifugo/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "arbiter:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()

	port := flag.Int("port", cfg.Server.Port, "TCP port to listen on")
	numGames := flag.Int("games", cfg.Game.NumGames, "number of games to play before ending the session")
	verbose := flag.Bool("verbose", cfg.Logging.Verbose, "enable debug-level console logging")
	eventLogDir := flag.String("event-log-dir", cfg.Logging.EventLogDir, "directory for the JSONL event log (empty disables it)")
	flag.Parse()

	cfg.Server.Port = *port
	cfg.Game.NumGames = *numGames
	cfg.Logging.Verbose = *verbose
	cfg.Logging.EventLogDir = *eventLogDir

	logger := logging.NewConsole(cfg.Logging.Verbose)

	var log *eventlog.Logger
	if cfg.Logging.EventLogDir != "" {
		if err := os.MkdirAll(cfg.Logging.EventLogDir, 0o755); err != nil {
			return fmt.Errorf("create event log dir: %w", err)
		}
		path := filepath.Join(cfg.Logging.EventLogDir, fmt.Sprintf("session-%d.jsonl", time.Now().Unix()))
		var err error
		log, err = eventlog.Open(path)
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}
		defer log.Close()
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	handshakeTimeout := time.Duration(cfg.Server.HandshakeTimeoutMS) * time.Millisecond
	srv, err := server.Listen(addr, handshakeTimeout, logger)
	if err != nil {
		return err
	}
	defer srv.Close()

	logger.Info().Str("addr", addr).Int("games", cfg.Game.NumGames).Msg("waiting for five players")
	infos, err := srv.AcceptAll()
	if err != nil {
		return fmt.Errorf("accept players: %w", err)
	}

	eng := engine.New(srv, logger, log, cfg.Rules, infos)
	totals, err := eng.RunSession(cfg.Game.NumGames)
	if err != nil {
		return fmt.Errorf("run session: %w", err)
	}

	for seat := 0; seat < engine.NumPlayers; seat++ {
		logger.Info().Int("seat", seat).Str("name", infos[seat].Name).Int("points", totals[seat]).Msg("final score")
	}
	return nil
}
