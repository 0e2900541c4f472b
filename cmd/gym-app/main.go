package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gym-app-go/internal/app"
	"gym-app-go/internal/config"
	"gym-app-go/internal/transport/cli"
	"gym-app-go/pkg/logger"
)

func main() {
	log := logger.NewFromEnv("gym-app")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr, log))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, log logger.Logger) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printUsage(stderr)
		return 2
	}

	application, err := app.New(ctx, log)
	if err != nil {
		log.Critical("app: init failed", "err", err)
		return 1
	}

	handlers := cli.New(application.Members, application.Trainers, application.Admins, stdout, log)

	exitCode := 0
	if err := handlers.Run(ctx, args); err != nil {
		exitCode = 1
	}

	if err := application.Close(); err != nil {
		log.Error("app: close failed", "err", err)
		exitCode = 1
	}
	return exitCode
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: gym-app <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	handlers := cli.New(nil, nil, nil, io.Discard, logger.Nop())
	for _, name := range handlers.Commands() {
		fmt.Fprintln(w, "  "+name)
	}

	if description, err := config.Usage(); err == nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, strings.TrimSpace(description))
	}
}
