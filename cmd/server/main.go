package main

import (
	"context"
	"log"
	"os"

	"github.com/pkozlov/flowdeck/internal/buildinfo"
	"github.com/pkozlov/flowdeck/internal/server"
	"github.com/pkozlov/flowdeck/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
