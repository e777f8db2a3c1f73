// Command lagrum scrapes Swedish legislation, embeds it into a vector
// store and answers questions about it.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	configfile "github.com/nordlaw/lagrum/internal/adapters/driven/config/file"
	embeddingopenai "github.com/nordlaw/lagrum/internal/adapters/driven/embedding/openai"
	llmopenai "github.com/nordlaw/lagrum/internal/adapters/driven/llm/openai"
	"github.com/nordlaw/lagrum/internal/adapters/driven/storage/sqlite"
	"github.com/nordlaw/lagrum/internal/adapters/driven/tokenizer/tiktoken"
	"github.com/nordlaw/lagrum/internal/adapters/driven/vectorstore/weaviate"
	"github.com/nordlaw/lagrum/internal/adapters/driving/cli"
	"github.com/nordlaw/lagrum/internal/connectors/rattsbaser"
	"github.com/nordlaw/lagrum/internal/core/services"
	"github.com/nordlaw/lagrum/internal/postprocessors"
	"github.com/nordlaw/lagrum/internal/postprocessors/chunker"
	"github.com/nordlaw/lagrum/internal/postprocessors/contextual"
	"github.com/nordlaw/lagrum/internal/postprocessors/tokenbound"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file is optional; the environment wins either way.
	_ = godotenv.Load()

	cfg, err := configfile.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	recordStore, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening record cache: %w", err)
	}
	defer recordStore.Close()

	source := rattsbaser.New(rattsbaser.Config{
		BaseURL:   cfg.Scraper.BaseURL,
		RateLimit: cfg.Scraper.RateLimit,
	})

	vectorStore, err := weaviate.NewStore(weaviate.Config{
		URL:    cfg.Weaviate.URL,
		APIKey: cfg.Weaviate.APIKey,
	})
	if err != nil {
		return fmt.Errorf("configuring vector store: %w", err)
	}

	cli.SetVersion(version)
	cli.SetCorpusSource(source)
	cli.SetRecordStore(recordStore)
	cli.SetVectorStore(vectorStore, cfg.Weaviate.Class, cfg.OpenAI.EmbeddingModel)

	// The OpenAI-backed services need a key; without one the scrape and
	// schema commands still work.
	if cfg.OpenAI.APIKey != "" {
		if err := wireServices(cfg, vectorStore); err != nil {
			return err
		}
	}

	return cli.Execute()
}

// wireServices builds the ingest and query services on top of the
// OpenAI adapters.
func wireServices(cfg *configfile.Config, vectorStore *weaviate.Store) error {
	embedder, err := embeddingopenai.NewEmbeddingService(embeddingopenai.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.EmbeddingModel,
	})
	if err != nil {
		return fmt.Errorf("configuring embedding service: %w", err)
	}

	llm, err := llmopenai.NewGenerationService(llmopenai.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.ChatModel,
	})
	if err != nil {
		return fmt.Errorf("configuring generation service: %w", err)
	}

	tokenizer, err := tiktoken.New(cfg.OpenAI.EmbeddingModel)
	if err != nil {
		return fmt.Errorf("loading tokenizer vocabulary: %w", err)
	}

	split, err := chunker.New(
		chunker.WithChunkSize(cfg.Pipeline.ChunkSize),
		chunker.WithOverlap(cfg.Pipeline.ChunkOverlap),
	)
	if err != nil {
		return fmt.Errorf("configuring chunker: %w", err)
	}

	prefix, err := contextual.New(cfg.Pipeline.ContextFields)
	if err != nil {
		return fmt.Errorf("configuring context prefixing: %w", err)
	}

	pipeline := postprocessors.NewPipeline(split, prefix, tokenbound.New(tokenizer))

	ingest, err := services.NewIngestService(pipeline, embedder, vectorStore, services.IngestConfig{
		Class:      cfg.Weaviate.Class,
		TokenLimit: cfg.Pipeline.TokenLimit,
		BatchSize:  cfg.Pipeline.BatchSize,
		EmbedDelay: time.Duration(cfg.Pipeline.EmbedDelayMS) * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("configuring ingest service: %w", err)
	}

	query, err := services.NewQueryService(embedder, vectorStore, llm, cfg.Weaviate.Class)
	if err != nil {
		return fmt.Errorf("configuring query service: %w", err)
	}

	cli.SetServices(ingest, query)
	return nil
}
