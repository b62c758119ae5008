package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/alisideas/bookshare/app/tooling/commands"
	"github.com/alisideas/bookshare/sdk/environment"
	"github.com/alisideas/bookshare/sdk/logger"
)

var build = "develop"
var appName = "BOOKSHARE"

func main() {
	environment.LoadEnv()

	log, err := logger.NewFromEnv(appName)
	if err != nil {
		fmt.Println("oh no we couldn't even get logging going.")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.DebugContext(ctx, "startup", "build", build, "GOMAXPROCS", runtime.GOMAXPROCS(0))

	env := commands.NewEnv(log, appName)
	defer env.Close()

	if err := commands.NewRoot(env, build).ExecuteContext(ctx); err != nil {
		log.ErrorContext(ctx, "command failed", "err", err)
		env.Close()
		os.Exit(1)
	}
}
