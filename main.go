package main

import (
	"context"
	"log"
	"os"

	"github.com/go-playground/errors/v5"
	"github.com/jtwatson/shutdown"
	"github.com/mydove/deploy-tools/cmd"
	"github.com/mydove/deploy-tools/internal/launcher"
)

func main() {
	ctx := context.Background()
	if err := execute(ctx); err != nil {
		var exitErr *launcher.ExitError
		if errors.As(err, &exitErr) {
			// The deployment tool already reported its own failure; our job
			// is only to hand its exit status through unchanged.
			os.Exit(exitErr.Code)
		}
		log.Fatal(err)
	}
}

func execute(ctx context.Context) error {
	ctx, cancel := shutdown.CaptureInterrupts(ctx)
	defer cancel()

	if err := cmd.Execute(ctx); err != nil {
		return errors.Wrap(err, "cmd.Execute()")
	}

	return nil
}
