package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/guyhitalk/educapp-backend/internal/bedrock"
	"github.com/guyhitalk/educapp-backend/internal/cache"
	"github.com/guyhitalk/educapp-backend/internal/database"
	"github.com/guyhitalk/educapp-backend/internal/embedding"
	"github.com/guyhitalk/educapp-backend/internal/guardrails"
	"github.com/guyhitalk/educapp-backend/internal/middleware"
	"github.com/guyhitalk/educapp-backend/internal/rag"
	"github.com/guyhitalk/educapp-backend/internal/tutor"
	"github.com/guyhitalk/educapp-backend/internal/usage"
	"github.com/guyhitalk/educapp-backend/internal/worldview"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "EducApp Tutor API",
			Description: "Faith-driven AI tutor with retrieval-augmented answers",
			Version:     "1.0.0",
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "health", Description: "Health checks"}},
		{TagProps: spec.TagProps{Name: "tutor", Description: "Tutor operations"}},
	}
}

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	log.Info().Msg("Starting EducApp Tutor API Server")

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	region := os.Getenv("AWS_REGION")
	modelID := os.Getenv("CLAUDE_MODEL_ID")
	port := os.Getenv("TUTOR_API_PORT")
	if port == "" {
		port = "8080"
	}

	ctx := context.Background()

	claudeClient, err := bedrock.NewClient(ctx, region, modelID)
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to initialize Bedrock client")
	}

	log.Info().
		Str("region", region).
		Str("model", modelID).
		Msg("Bedrock client initialized")

	// Load worldview foundation and build the classifier
	foundation, err := worldview.LoadOrDefault(os.Getenv("WORLDVIEW_CONFIG_PATH"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load worldview config")
	}
	classifier := guardrails.NewClassifier(foundation)

	// Build the three corpus indices before accepting traffic. Missing
	// directories degrade to empty corpora, they do not stop the server.
	ragConfig := rag.DefaultConfig()
	if dir := os.Getenv("KNOWLEDGE_BASE_DIR"); dir != "" {
		ragConfig.WorldviewDir = dir + "/biblical_worldview"
		ragConfig.CurriculumDir = dir + "/curricula"
		ragConfig.ScriptureDir = dir + "/scripture"
	}

	embedder := embedding.NewBedrockEmbedderWithModel(claudeClient.Client, os.Getenv("EMBEDDING_MODEL_ID"))
	engine := rag.NewEngine(ctx, ragConfig, embedder)

	// Optional collaborators: postgres persistence and redis answer cache.
	tracker, conversations := setupPersistence(ctx)
	answers := setupAnswerCache(ctx)

	service := tutor.NewService(
		claudeClient,
		engine,
		classifier,
		foundation,
		modelID,
		tracker,
		conversations,
		answers,
	)
	handler := tutor.NewHandler(service)

	container := restful.NewContainer()
	container.Filter(middleware.Logger)
	container.Filter(middleware.RecoverPanic)

	tutor.RegisterRoutes(container, handler)

	config := restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(),
		APIPath:                       "/api/v1/openapi.json",
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}
	container.Add(restfulspec.NewOpenAPIService(config))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	addr := fmt.Sprintf(":%s", port)
	log.Info().Str("address", addr).Msg("Starting server")

	server := http.Server{
		Addr:         addr,
		Handler:      corsHandler.Handler(container),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}
}

// setupPersistence connects to postgres when configured. Without it the
// service runs with no-op usage and conversation collaborators.
func setupPersistence(ctx context.Context) (usage.Tracker, tutor.ConversationStore) {
	host := os.Getenv("TUTOR_DB_HOST")
	if host == "" {
		log.Warn().Msg("No database configured, usage tracking and conversation history disabled")
		return usage.NopTracker{}, nopConversationStore{}
	}

	config := database.Config{
		Host:     host,
		Port:     os.Getenv("TUTOR_DB_PORT"),
		User:     os.Getenv("TUTOR_DB_USER"),
		Password: os.Getenv("TUTOR_DB_PASSWORD"),
		Database: os.Getenv("TUTOR_DB_DATABASE"),
		SSLMode:  os.Getenv("TUTOR_DB_SSLMODE"),
	}

	db, err := database.NewWithBackoff(ctx, config, 5)
	if err != nil {
		log.Warn().Err(err).Msg("Database unavailable, usage tracking and conversation history disabled")
		return usage.NopTracker{}, nopConversationStore{}
	}

	log.Info().Msg("Database connected")
	return usage.NewPostgresTracker(db), db
}

// setupAnswerCache connects to redis when configured, otherwise answers are
// not cached.
func setupAnswerCache(ctx context.Context) cache.AnswerCache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return cache.NopAnswerCache{}
	}

	client, err := cache.ConnectRedis(ctx, addr, os.Getenv("REDIS_PASSWORD"), 3)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, answer caching disabled")
		return cache.NopAnswerCache{}
	}

	ttl := 30 * time.Minute
	if configured := os.Getenv("ANSWER_CACHE_TTL"); configured != "" {
		if parsed, err := time.ParseDuration(configured); err == nil {
			ttl = parsed
		}
	}

	return cache.NewRedisAnswerCache(client, "answer_cache:", ttl)
}

type nopConversationStore struct{}

func (nopConversationStore) SaveConversation(ctx context.Context, userID, question, answer, subject string) error {
	return nil
}
