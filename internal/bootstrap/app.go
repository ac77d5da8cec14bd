package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/editor"
	"resume-builder/internal/export"
	"resume-builder/internal/optimize"
	"resume-builder/internal/render"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/storage/object"
	localstore "resume-builder/internal/shared/storage/object/local"
	s3store "resume-builder/internal/shared/storage/object/s3"
	"resume-builder/internal/templates"
)

// App holds the shared dependencies wired at startup.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	Registry    *templates.Registry
	ResumesRepo resumes.Repo
	ExportsRepo export.Repo

	ResumesService  *resumes.Service
	Editor          *editor.Manager
	ExportService   *export.Service
	OptimizeService *optimize.Service

	TemplatesHandler *templates.Handler
	ResumesHandler   *resumes.Handler
	ExportsHandler   *export.Handler
	OptimizeHandler  *optimize.Handler
}

// Build prepares dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.Deps{
		Config:    app.Config,
		Templates: app.TemplatesHandler,
		Resumes:   app.ResumesHandler,
		Exports:   app.ExportsHandler,
		Optimize:  app.OptimizeHandler,
	})

	return app, nil
}

// Close flushes editor sessions and releases the database pool.
func (a *App) Close(ctx context.Context) error {
	if a.Editor != nil {
		a.Editor.Close(ctx)
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var resumesRepo resumes.Repo
	var exportsRepo export.Repo
	if app.DB != nil {
		resumesRepo = &resumes.PGRepo{DB: app.DB}
		exportsRepo = &export.PGRepo{DB: app.DB}
	} else {
		resumesRepo = resumes.NewMemoryRepo()
		exportsRepo = export.NewMemoryRepo()
	}

	registry := templates.NewRegistry()

	resumeSvc := resumes.NewService(resumesRepo, registry)
	if app.Config.MaxResumesPerOwner > 0 {
		resumeSvc.MaxPerOwner = app.Config.MaxResumesPerOwner
	}

	sessions := editor.NewManager(resumeSvc, app.Config.AutosaveInterval)

	raster := export.NewChromeRasterizer()
	raster.Timeout = app.Config.ExportTimeout
	raster.Path = app.Config.ChromePath

	pipeline := export.NewPipeline(render.NewEngine(registry), raster)
	exportSvc := export.NewService(pipeline, exportsRepo, app.Store, sessions)

	var optimizeSvc *optimize.Service
	var optimizeHandler *optimize.Handler
	if strings.TrimSpace(app.Config.OptimizerURL) != "" {
		client, err := optimize.NewHTTPClient(app.Config.OptimizerURL)
		if err != nil {
			return err
		}
		optimizeSvc = optimize.NewService(client, sessions)
		optimizeHandler = optimize.NewHandler(optimizeSvc, app.Config.OptimizerWebhookSecret)
	}

	app.Registry = registry
	app.ResumesRepo = resumesRepo
	app.ExportsRepo = exportsRepo
	app.ResumesService = resumeSvc
	app.Editor = sessions
	app.ExportService = exportSvc
	app.OptimizeService = optimizeSvc
	app.TemplatesHandler = templates.NewHandler(registry)
	app.ResumesHandler = resumes.NewHandler(resumeSvc, sessions)
	app.ExportsHandler = export.NewHandler(exportSvc)
	app.OptimizeHandler = optimizeHandler

	return nil
}
