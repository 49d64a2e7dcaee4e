// missiond serves the mission execution engine over HTTP.
//
// Examples:
//
//	missiond -provider dummy -addr :8080
//
//	export OPENAI_API_KEY=...
//	missiond -provider openai -model gpt-4o-mini
//
//	missiond -provider ollama -model llama3.2 \
//	  -store qdrant -qdrant-url http://localhost:6333
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	mission "github.com/Protocol-Lattice/go-mission"
	"github.com/Protocol-Lattice/go-mission/src/memory/embed"
	"github.com/Protocol-Lattice/go-mission/src/memory/store"
	"github.com/Protocol-Lattice/go-mission/src/models"
	"github.com/Protocol-Lattice/go-mission/src/server"
	"github.com/Protocol-Lattice/go-mission/src/tools"
)

var (
	flagAddr     = flag.String("addr", ":8080", "HTTP listen address")
	flagProvider = flag.String("provider", "dummy", "LLM provider: openai|anthropic|gemini|ollama|dummy")
	flagModel    = flag.String("model", "gpt-4o-mini", "Model ID for the selected provider")
	flagPrefix   = flag.String("prefix", "", "Optional prompt prefix passed to the provider")
	flagCacheTTL = flag.Duration("cache-ttl", 0, "Cache identical model calls for this long (0 disables)")
	flagMaxRuns  = flag.Int("max-concurrent", 32, "Maximum concurrently running missions")

	flagStore       = flag.String("store", "memory", "Memory store: memory|postgres|qdrant|mongo")
	flagPostgresDSN = flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "Postgres connection string")
	flagQdrantURL   = flag.String("qdrant-url", "http://localhost:6333", "Qdrant base URL")
	flagQdrantColl  = flag.String("qdrant-collection", "mission_memories", "Qdrant collection name")
	flagMongoURI    = flag.String("mongo-uri", os.Getenv("MONGO_URI"), "MongoDB connection URI")
	flagMongoDB     = flag.String("mongo-db", "missions", "MongoDB database name")
	flagMongoColl   = flag.String("mongo-collection", "memories", "MongoDB collection name")

	flagNeo4jURI  = flag.String("neo4j-uri", os.Getenv("NEO4J_URI"), "Neo4j URI; enables the graph tool when set")
	flagNeo4jUser = flag.String("neo4j-user", "neo4j", "Neo4j username")
	flagNeo4jPass = flag.String("neo4j-pass", os.Getenv("NEO4J_PASSWORD"), "Neo4j password")
)

func main() {
	_ = godotenv.Load()
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	model, err := buildModel(ctx)
	if err != nil {
		fail(err)
	}
	if *flagCacheTTL > 0 {
		model = models.NewCachedLLM(model, 512, *flagCacheTTL)
	}

	toolset, cleanup, err := buildTools(ctx)
	if err != nil {
		fail(err)
	}
	defer cleanup()

	manager, err := mission.NewManager(mission.ManagerOptions{
		Model: model,
		Tools: toolset,
		Specialists: []mission.SpecialistConfig{
			{
				Name:         "researcher",
				Description:  "digs through stored memories and gathers supporting facts",
				SystemPrompt: "You are a research specialist. Gather the facts the task needs, store anything useful in shared state, and finish with a concise summary.",
			},
			{
				Name:         "analyst",
				Description:  "reasons over gathered material and drafts conclusions",
				SystemPrompt: "You are an analysis specialist. Work from the material in shared state, reason carefully, and finish with your conclusion.",
			},
		},
		MaxConcurrent: *flagMaxRuns,
	})
	if err != nil {
		fail(err)
	}
	defer manager.Close()

	srv := &http.Server{
		Addr:    *flagAddr,
		Handler: server.New(manager, server.Options{}).Handler(),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("missiond listening on %s (provider=%s model=%s store=%s)", *flagAddr, *flagProvider, *flagModel, *flagStore)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fail(err)
	}
}

func buildModel(ctx context.Context) (models.Agent, error) {
	switch *flagProvider {
	case "openai":
		return models.NewOpenAILLM(*flagModel, *flagPrefix), nil
	case "anthropic":
		return models.NewAnthropicLLM(*flagModel, *flagPrefix), nil
	case "gemini":
		return models.NewGeminiLLM(ctx, *flagModel, *flagPrefix)
	case "ollama":
		return models.NewOllamaLLM(*flagModel, *flagPrefix)
	case "dummy":
		return models.NewDummyLLM(*flagPrefix), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", *flagProvider)
	}
}

func buildTools(ctx context.Context) ([]mission.Tool, func(), error) {
	toolset := []mission.Tool{
		tools.NewFinishTool(),
		tools.StateWriteTool{},
		tools.StateReadTool{},
		tools.EchoTool{},
		tools.ClockTool{},
	}
	var closers []func()
	cleanup := func() {
		for _, fn := range closers {
			fn()
		}
	}

	embedder := embed.AutoEmbedder(ctx)
	vs, err := buildStore(ctx)
	if err != nil {
		return nil, cleanup, err
	}
	if vs != nil {
		closers = append(closers, func() { _ = vs.Close(context.Background()) })
		toolset = append(toolset,
			tools.NewRetrieveTool(vs, embedder, 5),
			tools.NewMemorizeTool(vs, embedder),
		)
	}

	if *flagNeo4jURI != "" {
		graph, err := store.NewNeo4jGraph(ctx, *flagNeo4jURI, *flagNeo4jUser, *flagNeo4jPass, "")
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, func() { _ = graph.Close(context.Background()) })
		toolset = append(toolset, tools.NewGraphTool(graph))
	}

	return toolset, cleanup, nil
}

func buildStore(ctx context.Context) (store.VectorStore, error) {
	switch *flagStore {
	case "memory":
		return store.NewInMemoryStore(), nil
	case "postgres":
		if *flagPostgresDSN == "" {
			return nil, errors.New("postgres store requires -postgres-dsn or POSTGRES_DSN")
		}
		return store.NewPostgresStore(ctx, *flagPostgresDSN)
	case "qdrant":
		return store.NewQdrantStore(ctx, *flagQdrantURL, *flagQdrantColl, 768)
	case "mongo":
		return store.NewMongoStore(ctx, *flagMongoURI, *flagMongoDB, *flagMongoColl)
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown store %q", *flagStore)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "missiond:", err)
	os.Exit(1)
}
