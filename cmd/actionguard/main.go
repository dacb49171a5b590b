package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/actionguard/internal/app"
	"github.com/doeshing/actionguard/internal/infrastructure/cli"
)

const (
	exitRejected = 1
	exitError    = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()
	provider := app.NewProvider(app.Options{Verbose: isVerbose()})
	defer provider.Close()

	root := cli.NewRootCmd(provider)
	if err := root.ExecuteContext(ctx); err != nil {
		var rejected *cli.RejectedError
		if errors.As(err, &rejected) {
			return exitRejected
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		return exitError
	}
	return 0
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("ACTIONGUARD_DEBUG"), "1") || strings.EqualFold(os.Getenv("ACTIONGUARD_DEBUG"), "true")
}
