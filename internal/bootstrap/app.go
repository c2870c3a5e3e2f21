package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kmanav329/ai-resume-screener/internal/jobdesc"
	"github.com/kmanav329/ai-resume-screener/internal/llm"
	openai "github.com/kmanav329/ai-resume-screener/internal/llm/openai"
	"github.com/kmanav329/ai-resume-screener/internal/optimize"
	"github.com/kmanav329/ai-resume-screener/internal/server"
	"github.com/kmanav329/ai-resume-screener/internal/shared/config"
	"github.com/kmanav329/ai-resume-screener/internal/shared/storage/db"
	"github.com/kmanav329/ai-resume-screener/internal/shared/storage/object"
	localstore "github.com/kmanav329/ai-resume-screener/internal/shared/storage/object/local"
	s3store "github.com/kmanav329/ai-resume-screener/internal/shared/storage/object/s3"
	"github.com/kmanav329/ai-resume-screener/resume/render"
)

// App holds shared dependencies.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	DB      *sql.DB
	Store   object.ObjectStore
	Repo    optimize.Repo
	Service *optimize.Service
	Handler *optimize.Handler
}

// Build prepares dependencies and wires the router. In dev-like environments
// missing infrastructure degrades to in-memory and placeholder fallbacks so
// the API still boots.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var repo optimize.Repo
	if sqlDB != nil {
		repo = &optimize.PGRepo{DB: sqlDB}
	} else {
		repo = optimize.NewMemoryRepo()
	}

	llmClient, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	fetcher := jobdesc.NewFetcher(cfg.ReaderProxyURL)
	htmlPDF := &render.ChromePDF{ExecPath: cfg.ChromePath}

	svc := optimize.NewService(repo, store, llmClient, fetcher, htmlPDF, cfg)
	handler := optimize.NewHandler(svc)

	return &App{
		Config:  cfg,
		Router:  server.NewRouter(cfg, handler),
		DB:      sqlDB,
		Store:   store,
		Repo:    repo,
		Service: svc,
		Handler: handler,
	}, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repository")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.DefaultServerOptions())
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repository: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	if cfg.LLMProvider != "openai" {
		return llm.PlaceholderClient{}, nil
	}
	if cfg.OpenAIAPIKey == "" && isDevLike(cfg.Env) {
		log.Printf("bootstrap: OPENAI_API_KEY empty; using placeholder LLM client")
		return llm.PlaceholderClient{}, nil
	}
	return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
