package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"ComplianceScanner/internal/app"
	"ComplianceScanner/internal/config"
	"ComplianceScanner/internal/logging"
)

func main() {
	topic := flag.String("topic", "", "specific topic to search for")
	maxArticles := flag.Int("max-articles", 10, "maximum articles to process")
	server := flag.Bool("server", false, "run as web server")
	port := flag.Int("port", 0, "server port (overrides config)")
	flag.Parse()

	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application := app.New(ctx, cfg, logger)

	if *server {
		if err := application.Serve(ctx, *port); err != nil {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
		return
	}

	result, err := application.RunOnce(ctx, *topic, *maxArticles)
	if err != nil {
		logger.Error("workflow stopped", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Status: %s\n", result.Status)
	fmt.Printf("Articles processed: %d\n", result.ArticlesProcessed)
	fmt.Printf("Summary URL: %s\n", result.SummaryURL)
	fmt.Printf("PR URL: %s\n", result.PRURL)
}
