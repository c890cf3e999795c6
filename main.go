package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hasiholan/toba-guide/api"
	"github.com/hasiholan/toba-guide/catalog"
	"github.com/hasiholan/toba-guide/chat"
	"github.com/hasiholan/toba-guide/config"
	"github.com/hasiholan/toba-guide/database"
	"github.com/hasiholan/toba-guide/embeddings"
	"github.com/hasiholan/toba-guide/ingestion"
	"github.com/hasiholan/toba-guide/llm"
	"github.com/hasiholan/toba-guide/respond"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()

	switch os.Args[1] {
	case "serve":
		serveCmd(cfg, logger, os.Args[2:])
	case "ingest":
		ingestCmd(cfg, logger, os.Args[2:])
	case "chat":
		chatCmd(cfg, logger, os.Args[2:])
	default:
		logger.Printf("unknown command: %s", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func serveCmd(cfg config.Config, logger *log.Logger, args []string) {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := flags.String("addr", cfg.ServerAddr, "listen address")
	if err := flags.Parse(args); err != nil {
		logger.Fatalf("parse serve flags: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	svc := buildChatService(ctx, cfg, logger)
	server := api.New(svc, logger)

	httpServer := &http.Server{Addr: *addr, Handler: server.Handler()}
	go func() {
		<-ctx.Done()
		_ = httpServer.Shutdown(context.Background())
	}()

	logger.Printf("serving chat API on %s", *addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("serve: %v", err)
	}
}

func ingestCmd(cfg config.Config, logger *log.Logger, args []string) {
	flags := flag.NewFlagSet("ingest", flag.ExitOnError)
	path := flags.String("catalog", cfg.CatalogPath, "path to the catalog CSV file")
	if err := flags.Parse(args); err != nil {
		logger.Fatalf("parse ingest flags: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pois, err := catalog.Load(*path)
	if err != nil {
		logger.Fatalf("load catalog: %v", err)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatalf("postgres connection: %v", err)
	}
	defer pool.Close()

	embedder, err := embeddings.NewEmbedder(cfg)
	if err != nil {
		logger.Fatalf("embedder setup: %v", err)
	}

	svc := ingestion.NewService(pool, embedder, logger, cfg.Embeddings.Dimension)
	logger.Printf("ingesting %d catalog rows using %s/%s embeddings", len(pois), strings.ToUpper(cfg.Embeddings.Provider), cfg.Embeddings.Model)

	if err := svc.IngestCatalog(ctx, pois); err != nil {
		logger.Fatalf("ingestion failed: %v", err)
	}
}

func chatCmd(cfg config.Config, logger *log.Logger, args []string) {
	flags := flag.NewFlagSet("chat", flag.ExitOnError)
	message := flags.String("message", "", "message to send to the assistant")
	if err := flags.Parse(args); err != nil {
		logger.Fatalf("parse chat flags: %v", err)
	}

	if strings.TrimSpace(*message) == "" {
		fmt.Print("Anda: ")
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			*message = scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			logger.Fatalf("read message: %v", err)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	svc := buildChatService(ctx, cfg, logger)

	reply, _, err := svc.HandleMessage(ctx, *message, nil)
	if err != nil {
		logger.Fatalf("chat failed: %v", err)
	}

	fmt.Println(reply)
}

// buildChatService wires the pipeline. The catalog and the vector index are
// both optional at startup: without the catalog the service answers
// RAG-only, without Postgres the RAG orchestrator runs in degraded mode.
func buildChatService(ctx context.Context, cfg config.Config, logger *log.Logger) *chat.Service {
	pois, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Printf("catalog unavailable, structured matching disabled: %v", err)
	}

	var retriever chat.Retriever
	pool, err := database.NewPostgresPool(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Printf("vector index unavailable, retrieval disabled: %v", err)
	} else {
		embedder, embErr := embeddings.NewEmbedder(cfg)
		if embErr != nil {
			logger.Printf("embedder unavailable, retrieval disabled: %v", embErr)
		} else {
			retriever = chat.NewPostgresPassageStore(pool, embedder)
		}
	}

	llmClient, err := llm.NewClient(cfg)
	if err != nil {
		logger.Fatalf("llm setup: %v", err)
	}

	rag := chat.NewRAG(retriever, llmClient, chat.PersonaByName(cfg.PersonaPolicy), logger)
	rag.SetRetrievalSizes(cfg.RetrievalK, cfg.ContextTopK)

	var rng *rand.Rand
	if cfg.TemplateSeed != 0 {
		rng = rand.New(rand.NewSource(cfg.TemplateSeed))
	}
	composer := respond.NewComposer(rng)

	return chat.NewService(pois, composer, rag, logger)
}

func printUsage() {
	fmt.Println("Usage: toba-guide <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  serve    Serve the chat API over HTTP")
	fmt.Println("  ingest   Embed the catalog CSV into the Postgres vector index")
	fmt.Println("  chat     Send a single message from the terminal")
}
