package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"madrese/auth-service/internal/cli"
	"madrese/auth-service/internal/client"
)

func main() {
	addr := flag.String("addr", "http://localhost:8081", "auth service base URL")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	api, err := client.New(*addr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := cli.NewApp(api, os.Stdin, os.Stdout).Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
