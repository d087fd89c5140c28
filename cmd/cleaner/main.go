package main

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"

	"estate-builder/config"
	"estate-builder/scraper/maps"
	"estate-builder/services"
	"estate-builder/storage"
	"estate-builder/utils"
)

func main() {
	scrapeQuery := flag.String("scrape", "", "scrape Google Maps for this query before cleaning")
	inputPath := flag.String("in", "", "input batch (default: scraped-data.json/.csv in the working directory)")
	outputDir := flag.String("out", "", "output directory for the artifacts")
	flag.Parse()

	logger := utils.NewLogger()
	cfg := config.Load()

	if *inputPath != "" {
		cfg.InputPath = *inputPath
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	logger.Info("=== Contact data cleaner starting ===")

	if *scrapeQuery != "" {
		runScrape(cfg, logger, *scrapeQuery)
	}

	path, err := storage.ResolveInput(".", cfg.InputPath)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	raw, err := storage.LoadContacts(path)
	if err != nil {
		logger.Error("Cannot load input batch: %v", err)
		os.Exit(1)
	}
	logger.Info("Loaded %d raw records from %s", len(raw), path)

	cleaner := services.NewCleaner(cfg.CountryCode, logger)
	result := cleaner.Clean(raw)

	writer, err := storage.NewArtifactWriter(cfg.OutputDir, logger)
	if err != nil {
		logger.Error("Cannot prepare output dir: %v", err)
		os.Exit(1)
	}
	if err := writer.WriteAll(result); err != nil {
		logger.Error("Export failed: %v", err)
		os.Exit(1)
	}

	services.NewSummaryService(logger).Print(result)
}

// runScrape collects a fresh batch and stores it as scraped-data.json so
// the cleaning pass below picks it up.
func runScrape(cfg *config.Config, logger *utils.Logger, query string) {
	scraper := maps.New(cfg, logger)
	contacts, err := scraper.Scrape(query)
	if err != nil {
		logger.Error("Scrape failed: %v", err)
		os.Exit(1)
	}
	if len(contacts) == 0 {
		logger.Error("Scrape returned no contacts. Exiting.")
		os.Exit(1)
	}

	raw, err := json.MarshalIndent(contacts, "", "  ")
	if err != nil {
		logger.Error("Cannot encode scraped batch: %v", err)
		os.Exit(1)
	}
	path := filepath.Join(".", "scraped-data.json")
	if err := os.WriteFile(path, raw, 0644); err != nil {
		logger.Error("Cannot write %s: %v", path, err)
		os.Exit(1)
	}
	logger.Info("Scraped %d contacts → %s", len(contacts), path)
	cfg.InputPath = path
}
