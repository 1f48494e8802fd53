package config

import (
	"context"
	"errors"

	"lexiguide/internal/cache"
	"lexiguide/internal/dictionary"
	"lexiguide/internal/domain"
	"lexiguide/internal/geo"
	"lexiguide/internal/infra/supabase"
	"lexiguide/internal/llm"
	"lexiguide/internal/metrics"
	"lexiguide/internal/ocr"
	"lexiguide/internal/repository"
	"lexiguide/internal/service"
	"lexiguide/pkg/logger"
)

// Options adjusts how the container wires optional backends.
type Options struct {
	// LocalStore forces the in-memory repositories even when Supabase is
	// configured. The CLI has no user token, so row level security would
	// reject its writes.
	LocalStore bool
}

// Container holds all application dependencies
type Container struct {
	Config  domain.Config
	Logger  *logger.AppLogger
	Metrics *metrics.Recorder

	// SupabaseClient and AuthService are nil when Supabase is not configured.
	SupabaseClient domain.SupabaseClient
	AuthService    domain.AuthService

	DocumentRepository domain.DocumentRepository
	AnalysisRepository domain.AnalysisRepository
	ChatRepository     domain.ChatRepository
	FeedbackRepository domain.FeedbackRepository

	// LLM is nil when no provider is configured; OCR is nil when disabled.
	LLM             domain.LLMClient
	OCR             ocr.Engine
	DictionaryCache domain.DictionaryCache

	ExtractionService *service.ExtractionService
	DocumentService   *service.DocumentService
	AnalysisService   *service.AnalysisService
	ChatService       *service.ChatService
	DictionaryService *service.DictionaryService
	FeedbackService   *service.FeedbackService
	SpecialistService *service.SpecialistService

	closers []func() error
}

// NewContainer creates a new dependency injection container. Optional
// backends that are missing or fail to start are replaced by local defaults
// and logged; NewContainer itself does not fail on them.
func NewContainer(ctx context.Context, opts Options) *Container {
	cfg := NewConfig()
	appLogger := logger.NewLogger(cfg.GetLogLevel(), cfg.GetLogFormat())

	c := &Container{
		Config:  cfg,
		Logger:  appLogger,
		Metrics: metrics.NewRecorder(),
	}

	c.initStore(opts, appLogger.WithComponent("store"))
	c.initLLM(ctx, appLogger.WithComponent("llm"))
	c.initOCR(ctx, appLogger.WithComponent("ocr"))
	c.initCache(ctx, appLogger.WithComponent("cache"))

	prompts := llm.Prompts{MaxInputChars: cfg.GetLLMMaxInputChars()}
	svcLogger := appLogger.WithComponent("service")

	c.ExtractionService = service.NewExtractionService(c.OCR, c.Metrics, svcLogger)
	c.DocumentService = service.NewDocumentService(c.DocumentRepository, c.ChatRepository, c.ExtractionService, cfg.GetMaxFileSize(), svcLogger)
	c.AnalysisService = service.NewAnalysisService(c.DocumentRepository, c.AnalysisRepository, c.LLM, prompts, svcLogger)
	c.ChatService = service.NewChatService(c.DocumentRepository, c.ChatRepository, c.LLM, prompts, svcLogger)
	c.DictionaryService = service.NewDictionaryService(
		dictionary.NewAPIClient(cfg.GetDictionaryAPIURL()),
		c.LLM,
		prompts,
		c.DictionaryCache,
		cfg.GetCacheTTL(),
		c.Metrics,
		svcLogger,
	)
	c.FeedbackService = service.NewFeedbackService(c.FeedbackRepository, c.DocumentRepository, c.AnalysisRepository, svcLogger)
	c.SpecialistService = service.NewSpecialistService(geo.NewNominatimClient(cfg.GetGeocoderURL(), cfg.GetGeocoderUserAgent()), svcLogger)

	return c
}

func (c *Container) initStore(opts Options, log domain.Logger) {
	useMemory := func() {
		c.DocumentRepository = repository.NewMemoryDocumentRepository()
		c.AnalysisRepository = repository.NewMemoryAnalysisRepository()
		c.ChatRepository = repository.NewMemoryChatRepository()
		c.FeedbackRepository = repository.NewMemoryFeedbackRepository()
	}

	if opts.LocalStore || c.Config.GetSupabaseURL() == "" || c.Config.GetSupabaseKey() == "" {
		log.Info("Using in-memory store; data is lost on restart")
		useMemory()
		return
	}

	client := supabase.NewSupabaseClient(c.Config, log)
	if err := client.Initialize(); err != nil {
		log.Error("Supabase unavailable, falling back to in-memory store", err)
		useMemory()
		return
	}

	c.SupabaseClient = client
	c.AuthService = service.NewAuthService(client, log)
	c.DocumentRepository = repository.NewSupabaseDocumentRepository(client, log)
	c.AnalysisRepository = repository.NewSupabaseAnalysisRepository(client, log)
	c.ChatRepository = repository.NewSupabaseChatRepository(client, log)
	c.FeedbackRepository = repository.NewSupabaseFeedbackRepository(client, log)
}

func (c *Container) initLLM(ctx context.Context, log *logger.AppLogger) {
	var (
		client domain.LLMClient
		err    error
	)
	switch c.Config.GetLLMProvider() {
	case "vertex":
		var vc *llm.VertexClient
		vc, err = llm.NewVertexClient(ctx, c.Config.GetGCPProjectID(), c.Config.GetGCPLocation(),
			c.Config.GetVertexModel(), c.Config.GetLLMTemperature(), log)
		if err == nil {
			client = vc
			c.closers = append(c.closers, vc.Close)
		}
	case "openai":
		var oc *llm.OpenAIClient
		oc, err = llm.NewOpenAIClient(llm.OpenAIConfig{
			APIKey:      c.Config.GetOpenAIAPIKey(),
			BaseURL:     c.Config.GetOpenAIBaseURL(),
			Model:       c.Config.GetOpenAIModel(),
			Temperature: c.Config.GetLLMTemperature(),
			MaxRetries:  c.Config.GetLLMMaxRetries(),
		}, log)
		if err == nil {
			client = oc
		}
	case "", "none":
		log.Info("LLM disabled; analysis and Q&A will answer 503")
		return
	default:
		err = errors.New("unknown LLM_PROVIDER " + c.Config.GetLLMProvider())
	}
	if err != nil {
		log.Warn("LLM not configured; analysis and Q&A will answer 503", "provider", c.Config.GetLLMProvider(), "error", err)
		return
	}

	c.LLM = llm.NewInstrumented(client, c.Metrics, log)
	log.Info("LLM configured", "provider", c.Config.GetLLMProvider(), "model", client.Model())
}

func (c *Container) initOCR(ctx context.Context, log domain.Logger) {
	switch c.Config.GetOCRProvider() {
	case "vision":
		engine, err := ocr.NewVisionEngine(ctx)
		if err != nil {
			log.Warn("Cloud Vision unavailable; image OCR disabled", "error", err)
			return
		}
		c.OCR = engine
		c.closers = append(c.closers, engine.Close)
	case "tesseract":
		c.OCR = ocr.NewTesseractEngine(c.Config.GetOCRLanguages()...)
	default:
		log.Info("Image OCR disabled", "provider", c.Config.GetOCRProvider())
		return
	}
	log.Info("OCR configured", "engine", c.OCR.Name())
}

func (c *Container) initCache(ctx context.Context, log domain.Logger) {
	if url := c.Config.GetRedisURL(); url != "" {
		rc, err := cache.NewRedisCache(ctx, url, log)
		if err == nil {
			c.DictionaryCache = rc
			c.closers = append(c.closers, rc.Close)
			return
		}
		log.Warn("Redis unavailable, using in-memory dictionary cache", "error", err)
	}
	c.DictionaryCache = cache.NewMemoryCache()
}

// Close releases provider clients. It waits at most until ctx is done.
func (c *Container) Close(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		var errs []error
		for i := len(c.closers) - 1; i >= 0; i-- {
			if err := c.closers[i](); err != nil {
				errs = append(errs, err)
			}
		}
		done <- errors.Join(errs...)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}
