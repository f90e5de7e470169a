package main

import (
	"context"
	"log"
	"os"
	"strings"

	"rakhadian/hr-ai-platform/internal/config"
	"rakhadian/hr-ai-platform/internal/services"
)

func main() {
	log.Println("🚀 Starting policy document ingestion...")

	// Load configuration
	cfg := config.Load()

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	extractorService := services.NewExtractorService()

	indexService, err := services.NewVectorIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		geminiService,
		extractorService,
		cfg.Policy.DocumentPath,
		cfg.Policy.ChunkSize,
		cfg.Policy.ChunkOverlap,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	ctx := context.Background()

	// EnsureBuilt creates the collection (and ingests the configured policy
	// document when the collection is empty).
	if err := indexService.EnsureBuilt(ctx); err != nil {
		log.Fatalf("❌ Failed to build policy index: %v", err)
	}

	// Extra documents can be passed on the command line.
	documents := os.Args[1:]

	successCount := 0
	failCount := 0

	for _, path := range documents {
		log.Printf("\n📄 Processing: %s", path)

		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Printf("   ⚠️  File not found, skipping...")
			failCount++
			continue
		}

		if err := indexService.IngestDocument(ctx, path); err != nil {
			log.Printf("   ❌ Failed to ingest: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Successfully ingested %s", path)
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d documents", successCount)
	log.Printf("   ❌ Failed: %d documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some documents failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ Policy index ready!")
}
