package main

import (
	"flag"
	"log"
	"rental-search-service/internal"
)

func main() {
	envFile := flag.String("env", "", "path to a .env file (default ./.env when present)")
	flag.Parse()

	application, err := internal.NewApp(*envFile)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Application run failed: %v", err)
	}
}
