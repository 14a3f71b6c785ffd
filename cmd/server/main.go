package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"streetnetwork.app/kinship/common/arangodb"
	"streetnetwork.app/kinship/common/discord"
	"streetnetwork.app/kinship/common/id"
	"streetnetwork.app/kinship/common/llm"
	"streetnetwork.app/kinship/common/logger"
	"streetnetwork.app/kinship/common/otel"
	"streetnetwork.app/kinship/common/pinata"
	"streetnetwork.app/kinship/core/config"
	"streetnetwork.app/kinship/core/db"
	"streetnetwork.app/kinship/internal/http/middleware"
	httprouter "streetnetwork.app/kinship/internal/http/router"
	"streetnetwork.app/kinship/internal/queue"
	"streetnetwork.app/kinship/internal/service"
	"streetnetwork.app/kinship/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel, cfg.Env)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "kinship server starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.Queue.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Queue.Stream)

	taskProducer := queue.NewRedisProducer(redisClient, cfg.Queue.Stream, nil)
	defer taskProducer.Close()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.ErrorContext(ctx, "mongodb disconnect error", "error", err)
		}
	}()

	images, err := store.NewImageStore(mongoClient.Database(cfg.Mongo.Database), cfg.Mongo.ImageBucket)
	if err != nil {
		slog.ErrorContext(ctx, "failed to open image bucket", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "mongodb connected", "database", cfg.Mongo.Database, "bucket", cfg.Mongo.ImageBucket)
	discordStats := store.NewDiscordStatsStore(mongoClient.Database(cfg.Mongo.Database), cfg.Mongo.DiscordStatsCollection)

	integrations, closeIntegrations, err := setupIntegrations(ctx, cfg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize integrations", "error", err)
		os.Exit(1)
	}
	defer closeIntegrations()

	services := service.NewServices(
		store.NewStores(database.Queries()),
		images,
		discordStats,
		store.NewNonceStore(redisClient),
		service.NewTxRunner(database),
		taskProducer,
		integrations,
		cfg,
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := setupRouter(cfg, services)
	if err != nil {
		slog.ErrorContext(ctx, "failed to build router", "error", err)
		os.Exit(1)
	}
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

// setupIntegrations builds the optional third-party clients. Interface fields
// stay nil for anything not configured so services report ErrNotConfigured.
func setupIntegrations(ctx context.Context, cfg config.Config) (service.Integrations, func(), error) {
	var integrations service.Integrations
	closeFn := func() {}

	if cfg.WorkOS.Enabled() {
		integrations.Identity = service.NewWorkOSProvider(cfg.WorkOS)
		slog.InfoContext(ctx, "workos enabled")
	}

	if cfg.ArangoDB.Enabled() {
		graph, err := arangodb.New(ctx, arangodb.Config{
			URL:      cfg.ArangoDB.URL,
			Username: cfg.ArangoDB.Username,
			Password: cfg.ArangoDB.Password,
			Database: cfg.ArangoDB.Database,
		})
		if err != nil {
			return integrations, closeFn, fmt.Errorf("connecting to arangodb: %w", err)
		}
		if err := arangodb.Setup(ctx, graph); err != nil {
			_ = graph.Close()
			return integrations, closeFn, fmt.Errorf("preparing arangodb graph: %w", err)
		}
		integrations.Graph = graph
		closeFn = func() {
			if err := graph.Close(); err != nil {
				slog.Error("arangodb close error", "error", err)
			}
		}
		slog.InfoContext(ctx, "arangodb enabled", "database", cfg.ArangoDB.Database)
	}

	if cfg.Chatbot.Enabled() {
		client, err := llm.New(llm.Config{
			Provider: cfg.Chatbot.Provider,
			APIKey:   cfg.Chatbot.APIKey,
			BaseURL:  cfg.Chatbot.BaseURL,
			Model:    cfg.Chatbot.Model,
		})
		if err != nil {
			return integrations, closeFn, fmt.Errorf("creating llm client: %w", err)
		}
		integrations.LLM = client
		slog.InfoContext(ctx, "chatbot enabled", "provider", cfg.Chatbot.Provider, "model", cfg.Chatbot.Model)
	}

	if cfg.Discord.Enabled() {
		integrations.Discord = discord.New(discord.Config{
			ClientID:     cfg.Discord.ClientID,
			ClientSecret: cfg.Discord.ClientSecret,
			RedirectURI:  cfg.Discord.RedirectURI,
		})
		slog.InfoContext(ctx, "discord enabled")
	}

	if cfg.Pinata.Enabled() {
		integrations.Pinata = pinata.New(pinata.Config{
			JWT:     cfg.Pinata.JWT,
			Gateway: cfg.Pinata.Gateway,
			BaseURL: cfg.Pinata.BaseURL,
		})
		slog.InfoContext(ctx, "pinata enabled", "gateway", cfg.Pinata.Gateway)
	}

	return integrations, closeFn, nil
}

func setupRouter(cfg config.Config, services *service.Services) (*gin.Engine, error) {
	router, err := httprouter.NewEngine(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		AppURL:               cfg.AppURL,
		IsProduction:         cfg.IsProduction(),
		CookieName:           cfg.Session.CookieName,
		SessionTTL:           cfg.Session.TTL,
		NonceTTL:             cfg.Session.NonceTTL,
		AdminAPIKey:          cfg.AdminAPIKey,
		ChatbotRatePerMinute: cfg.Chatbot.RatePerMinute,
		MaxImageBytes:        cfg.Mongo.MaxImageBytes(),
	})

	return router, nil
}

const banner = `
██╗  ██╗██╗███╗   ██╗███████╗██╗  ██╗██╗██████╗
██║ ██╔╝██║████╗  ██║██╔════╝██║  ██║██║██╔══██╗
█████╔╝ ██║██╔██╗ ██║███████╗███████║██║██████╔╝
██╔═██╗ ██║██║╚██╗██║╚════██║██╔══██║██║██╔═══╝
██║  ██╗██║██║ ╚████║███████║██║  ██║██║██║
╚═╝  ╚═╝╚═╝╚═╝  ╚═══╝╚══════╝╚═╝  ╚═╝╚═╝╚═╝
`
