// Command clientview browses the client sheets from the terminal.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/clientview/internal/cli"
	"github.com/JonMunkholm/clientview/internal/logging"
)

func main() {
	// Missing .env is fine; the environment and flags still apply.
	_ = godotenv.Load()

	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cli.Register(commander)

	flag.Parse()
	logging.SetupWriter(os.Stderr, *logLevel, "text")
	slog.Debug("clientview starting", "args", flag.Args())

	os.Exit(int(commander.Execute(context.Background())))
}
