package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "credential-gateway",
		Usage: "Register users, issue access tokens and serve token-guarded endpoints",
		Commands: []*cli.Command{
			serveCmd(),
			hashPasswordCmd(os.Stdin),
		},
		Action: runServe,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatalf("credential-gateway: %v", err)
	}
}
