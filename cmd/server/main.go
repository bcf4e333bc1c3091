// Command server runs the in-memory paydesk stub backend.
package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/paydesk/internal/server"
	"github.com/dmitrijs2005/paydesk/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig(os.Args[1:])
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
