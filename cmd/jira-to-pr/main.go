package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ilia01/jira-to-pr/internal/app"
	"github.com/Ilia01/jira-to-pr/internal/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := app.ExecuteContext(ctx)
	stop()

	if err != nil {
		utils.DisplayError(os.Stderr, err.Error())
		os.Exit(1)
	}
}
