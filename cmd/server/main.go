package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophtracker/internal/buildinfo"
	"github.com/dmitrijs2005/gophtracker/internal/server"
	"github.com/dmitrijs2005/gophtracker/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "server init failed: %v\n", err)
		os.Exit(1)
	}

	app.Run(ctx)

}
