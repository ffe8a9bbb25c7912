package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/avikram/aeroscout/internal/assistant"
	"github.com/avikram/aeroscout/internal/chat"
	"github.com/avikram/aeroscout/internal/gateway"
	"github.com/avikram/aeroscout/internal/handler"
	"github.com/avikram/aeroscout/internal/llm"
	"github.com/avikram/aeroscout/internal/ratelimit"
	"github.com/avikram/aeroscout/internal/session"
	"github.com/avikram/aeroscout/internal/summary"
)

type Config struct {
	Port                    string
	SerpAPIKey              string
	OpenAIKey               string
	Model                   string
	SessionStore            string
	RedisHost               string
	RedisPort               string
	RedisTTL                time.Duration
	ClearTranscriptOnSearch bool
}

func main() {
	cfg := loadConfig()
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	limiter := ratelimit.NewDependencyLimiterWithDefaults()
	limiter.SetDependencyLimit("serpapi", 5, 10)
	limiter.SetDependencyLimit("openai", 3, 6)

	gw := gateway.NewSerpAPI(cfg.SerpAPIKey, gateway.WithLimiter(limiter))

	generator := llm.NewOpenAI(cfg.OpenAIKey,
		llm.WithModel(cfg.Model),
		llm.WithGeneratorLimiter(limiter),
	)

	var store session.Store
	if cfg.SessionStore == "redis" {
		redisStore, err := session.NewRedisStore(session.RedisConfig{
			Host: cfg.RedisHost,
			Port: cfg.RedisPort,
			TTL:  cfg.RedisTTL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		store = redisStore
		log.Printf("Redis session store enabled (host: %s:%s, TTL: %v)", cfg.RedisHost, cfg.RedisPort, cfg.RedisTTL)
	} else {
		store = session.NewMemoryStore()
		log.Println("In-memory session store enabled")
	}
	defer store.Close()

	service := assistant.NewService(
		gw,
		summary.NewSummarizer(generator),
		chat.NewResponder(generator, chat.NewKeywordGate()),
		store,
		assistant.Config{ClearTranscriptOnSearch: cfg.ClearTranscriptOnSearch},
	)

	assistantHandler := handler.NewAssistantHandler(service)

	api := e.Group("/api/v1")
	api.POST("/flights/search", assistantHandler.Search)
	api.POST("/chat", assistantHandler.Chat)
	api.GET("/session/:id", assistantHandler.Session)
	api.DELETE("/session/:id", assistantHandler.EndSession)
	e.GET("/health", handler.HealthHandler)

	log.Printf("Starting aeroscout server on port %s", cfg.Port)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func loadConfig() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Skipping .env: %v", err)
	}

	cfg := Config{
		Port:                    getEnv("PORT", "8080"),
		SerpAPIKey:              os.Getenv("SERPAPI_API_KEY"),
		OpenAIKey:               os.Getenv("OPENAI_API_KEY"),
		Model:                   getEnv("LLM_MODEL", "gpt-4o-mini"),
		SessionStore:            getEnv("SESSION_STORE", "memory"),
		RedisHost:               getEnv("REDIS_HOST", "localhost"),
		RedisPort:               getEnv("REDIS_PORT", "6379"),
		RedisTTL:                getEnvDuration("REDIS_TTL", 30*time.Minute),
		ClearTranscriptOnSearch: getEnvBool("CLEAR_TRANSCRIPT_ON_SEARCH", false),
	}

	if cfg.SerpAPIKey == "" {
		log.Fatal("SERPAPI_API_KEY must be set")
	}
	if cfg.OpenAIKey == "" {
		log.Fatal("OPENAI_API_KEY must be set")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
