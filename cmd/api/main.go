package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	_ "github.com/endgor/azure-ip-lookup/docs"
	api "github.com/endgor/azure-ip-lookup/internal/app"
)

//	@title			Azure IP Lookup API
//	@version		1.0
//	@description	Looks Azure ip addresses up against the published service tags and manages subnet plans.

//	@host		localhost:4040
//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := api.LoadConfig()

	if err := api.Run(ctx, cfg); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
