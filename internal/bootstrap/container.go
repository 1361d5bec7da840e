package bootstrap

import (
	"context"
	"log"

	"github.com/Tigierre/contractguardian/internal/config"
	"github.com/Tigierre/contractguardian/internal/controller"
	"github.com/Tigierre/contractguardian/internal/handler"
	"github.com/Tigierre/contractguardian/internal/pkg/logger"
	"github.com/Tigierre/contractguardian/internal/repository/memory"
	"github.com/Tigierre/contractguardian/internal/repository/unitofwork"
	"github.com/Tigierre/contractguardian/internal/service"
	"github.com/Tigierre/contractguardian/internal/websocket"
	"github.com/Tigierre/contractguardian/pkg/analysis/orchestrator"
	"github.com/Tigierre/contractguardian/pkg/analysis/retrier"
	"github.com/Tigierre/contractguardian/pkg/llm/factory"

	pkgNats "github.com/Tigierre/contractguardian/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	AnalysisController controller.IAnalysisController
	PolicyController   controller.IPolicyController

	// Background Services (Exposed for main.go to run)
	WorkerService service.IWorkerService

	// WebSockets & Progress
	ProgressHandler *handler.ProgressHandler
	WebSocketHub    *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM Provider
	llmProvider, err := factory.NewStructuredProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-memory norm cache
	normCache := memory.NewNormCache()

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/progress.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Analysis Pipeline
	orch := orchestrator.New(
		llmProvider,
		service.NewJobStore(uowFactory),
		service.NewDocumentSource(uowFactory),
		service.NewPolicySource(uowFactory),
		service.NewNormSource(uowFactory, normCache),
		websocket.NewProgressObserver(wsHub),
		sysLogger,
		orchestrator.Config{
			Timeout:           cfg.Analysis.Timeout(),
			MaxTokensPerChunk: cfg.Analysis.MaxTokensPerChunk,
			Retry: retrier.Config{
				MaxRetries: cfg.Analysis.MaxRetries,
				BaseDelay:  cfg.Analysis.BaseDelay(),
			},
		},
	)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Keys.AnalysisJobTopic, pubSub)
	workerService := service.NewWorkerService(
		pubSub,
		cfg.Keys.AnalysisJobTopic,
		uowFactory,
		orch,
		natsPub,
	)

	documentService := service.NewDocumentService(uowFactory)
	analysisService := service.NewAnalysisService(uowFactory, publisherService)
	policyService := service.NewPolicyService(uowFactory)

	// Handler
	progressHandler := handler.NewProgressHandler(wsHub, wsLogger)

	// 6. Controllers
	return &Container{
		ProgressHandler:    progressHandler,
		WebSocketHub:       wsHub,
		DocumentController: controller.NewDocumentController(documentService),
		AnalysisController: controller.NewAnalysisController(analysisService),
		PolicyController:   controller.NewPolicyController(policyService),

		WorkerService: workerService,
	}
}
