// Command agent dials an arbiter and plays a full session using the
// reference heuristic strategy in internal/agent.
package main

import (
	"flag"
	"fmt"
	"os"

	"daifugo/internal/agent"
	"daifugo/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "agent:", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "localhost:42485", "arbiter address")
	name := flag.String("name", "bot", "display name sent during handshake")
	verbose := flag.Bool("verbose", false, "enable debug-level console logging")
	flag.Parse()

	logger := logging.NewConsole(*verbose)

	client, seat, err := agent.Dial(*addr, *name, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	logger.Info().Int("seat", seat).Str("name", *name).Msg("joined table")
	if err := client.Run(); err != nil {
		return fmt.Errorf("play session: %w", err)
	}
	logger.Info().Msg("session complete")
	return nil
}
