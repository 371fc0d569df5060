package main

import (
	"StackWin/cmd"
	"StackWin/internal/constants"
	"StackWin/internal/logger"
	"StackWin/internal/version"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() (exitCode int) {
	// A .env in the working directory may set STACKWIN_* overrides.
	_ = godotenv.Load(constants.EnvFileName)

	slog.SetDefault(logger.NewLogger())
	ctx := context.Background()

	// Defer cleanup to ensure it runs even if we return early or panic
	defer cleanup(ctx)

	// Recover from logger.FatalError to ensure cleanup runs
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(logger.FatalError); ok {
				exitCode = 1
			} else {
				panic(r)
			}
		}
		if exitCode != 0 {
			fmt.Fprintf(os.Stderr, "%s did not finish running successfully.\n", version.ApplicationName)
		}
	}()

	opts, err := cmd.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprint(os.Stderr, err.Error())
		return 1
	}

	return cmd.Execute(ctx, opts)
}

func cleanup(ctx context.Context) {
	logger.Debug(ctx, "Cleaning up...")
	logger.Cleanup()
}
