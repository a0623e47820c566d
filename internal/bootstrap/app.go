package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"cv-builder/internal/forms"
	"cv-builder/internal/generations"
	"cv-builder/internal/services/health"
	"cv-builder/internal/sessions"
	"cv-builder/internal/shared/config"
	"cv-builder/internal/shared/server"
	"cv-builder/internal/shared/server/middleware"
	"cv-builder/internal/shared/storage/db"
	"cv-builder/resume/form"
	"cv-builder/resume/render"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Sessions        *sessions.Store
	GenerationsRepo generations.Repo
	FormsService    *forms.Service
	FormsHandler    *forms.Handler
	Health          *health.Service
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store := sessions.NewStore(cfg.SessionTTL, nil)
	store.MaxSessions = cfg.MaxSessions
	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Sessions: store,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:      app.Config,
		FormHandler: app.FormsHandler,
		Health:      app.Health,
		Limiter:     middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory generation ledger")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory generation ledger: %v", err)
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

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var genRepo generations.Repo
	if app.DB != nil {
		genRepo = &generations.PGRepo{DB: app.DB}
	} else {
		genRepo = generations.NewMemoryRepo()
	}

	formsSvc := &forms.Service{
		Sessions:    app.Sessions,
		Renderer:    render.NewPDF(),
		Generations: genRepo,
		Options: form.Options{
			SkillsInput: form.SkillsInput(app.Config.SkillsInput),
			Required:    app.Config.RequiredFields,
		},
	}

	app.Sessions.OnExpire = formsSvc.PruneGenerations

	app.GenerationsRepo = genRepo
	app.FormsService = formsSvc
	app.FormsHandler = forms.NewHandler(formsSvc)
	app.Health = health.NewService(app.Sessions, app.DB)

	if app.FormsHandler == nil {
		return errors.New("failed to initialize handlers")
	}
	return nil
}
