package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"monastery360/backend/go/internal/assistant/cache"
	"monastery360/backend/go/internal/assistant/pipeline"
	"monastery360/backend/go/internal/assistant/retriever"
	"monastery360/backend/go/internal/assistant/vectorstore"
	"monastery360/backend/go/internal/config"
	"monastery360/backend/go/internal/database/mysql"
	redisdb "monastery360/backend/go/internal/database/redis"
	"monastery360/backend/go/internal/embedding"
	"monastery360/backend/go/internal/llm"
	"monastery360/backend/go/internal/media"
	"monastery360/backend/go/internal/routing/directions"
	"monastery360/backend/go/internal/routing/planner"
	"monastery360/backend/go/internal/translation"
	"monastery360/backend/go/internal/tts"
	"monastery360/backend/go/internal/visitor_service/api"
	"monastery360/backend/go/internal/visitor_service/service"
	"monastery360/backend/go/internal/visitor_service/store"
	"monastery360/backend/go/pkg/logger"
)

func main() {
	// Load environment overrides; a missing .env file is fine.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger.Init(logger.ParseLevel(cfg.Logger.Level))
	appLogger := logger.New("visitor_service")
	appLogger.Info("Logger initialized")

	// Database connection and schema.
	db, err := mysql.GetDB(&cfg.Databases.MySQL)
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	if err := store.AutoMigrate(db); err != nil {
		appLogger.Fatal(err.Error())
	}
	appLogger.Info("Database ready")
	defer mysql.Close()

	// Model clients. Both are optional; the assistant degrades to
	// lexical retrieval and context-only answers without them.
	embedder, err := embedding.NewModel(cfg.Embedding)
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	generator, err := llm.NewClient(cfg.LLM)
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	translator := translation.NewTranslator(generator, cfg.Translation.CorpusLang, appLogger)

	// Assistant pipeline.
	index := vectorstore.NewStore()
	ret := retriever.NewRetriever(embedder, index, appLogger)

	var answerCache cache.AnswerCache
	switch cfg.Cache.Backend {
	case "redis":
		client, err := redisdb.GetClient(&cfg.Databases.Redis)
		if err != nil {
			appLogger.Fatal(err.Error())
		}
		answerCache = cache.NewRedisCache(client)
	case "memory":
		answerCache = cache.NewMemoryCache()
	default:
		answerCache = cache.NewMySQLCache(db)
	}

	qna := pipeline.NewQnAPipeline(answerCache, ret, generator, translator, appLogger)

	// Directions chain: google when a key is configured, then osrm,
	// then the geometric estimator so planning never fails outright.
	var providers []directions.Provider
	if cfg.Directions.Google.APIKey != "" {
		providers = append(providers, directions.NewGoogleProvider(cfg.Directions.Google.APIKey))
	}
	providers = append(providers,
		directions.NewOSRMProvider(cfg.Directions.OSRM.BaseURL),
		directions.NewGeometricProvider(),
	)
	chain := directions.NewChain(appLogger, providers...)
	routePlanner := planner.New(chain, appLogger)

	// Narration and media.
	ttsChain := tts.NewChain(cfg, appLogger)
	mediaStorage, err := media.NewStorage(cfg)
	if err != nil {
		appLogger.Fatal(err.Error())
	}

	st := store.NewStore(db)
	svc := service.NewService(cfg, st, embedder, index, qna, answerCache, routePlanner, ttsChain, mediaStorage, appLogger)
	handler := api.NewHandler(svc, appLogger)
	appLogger.Info("Dependencies injected")

	router := api.SetupRouter(handler)
	appLogger.Info("Starting server on " + cfg.Server.Address)
	if err := router.Run(cfg.Server.Address); err != nil {
		appLogger.Fatal(err.Error())
	}
}
