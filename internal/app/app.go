package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "dealdesk/docs"
	"dealdesk/internal/config"
	"dealdesk/internal/events"
	"dealdesk/internal/handlers"
	"dealdesk/internal/middleware"
	"dealdesk/internal/notify"
	"dealdesk/internal/pdf"
	"dealdesk/internal/repositories"
	"dealdesk/internal/routes"
	"dealdesk/internal/services"
)

// App holds the wired dependencies shared by the CLI commands.
type App struct {
	cfg       *config.Config
	log       *zap.Logger
	db        *sql.DB
	store     *repositories.PostgresStore
	publisher *events.Publisher

	Deals      *services.DealService
	Milestones *services.MilestoneService
}

// New opens the database and the broker. The broker is optional: without it
// events are dropped with a warning.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	db, err := repositories.OpenPostgres(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, log: log, db: db, store: repositories.NewPostgresStore(db)}

	tmpl, err := services.NewMilestoneTemplate(cfg.Milestones.CriticalKeys)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("milestone template: %w", err)
	}

	deps := services.Deps{Store: a.store, Template: tmpl, Logger: log}
	if cfg.AMQP.URL != "" {
		pub, err := events.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Warn("event publisher unavailable, events disabled", zap.Error(err))
		} else {
			a.publisher = pub
			deps.Publisher = pub
		}
	}
	a.Deals = services.NewDealService(deps)
	a.Milestones = services.NewMilestoneService(deps)
	return a, nil
}

func (a *App) Close() {
	if a.publisher != nil {
		a.publisher.Close()
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn("close database", zap.Error(err))
	}
}

func (a *App) Migrate(ctx context.Context) error {
	return a.store.Migrate(ctx)
}

// NewRouter builds the HTTP surface over the given services.
func NewRouter(log *zap.Logger, jwtSecret []byte, deals *services.DealService, milestones *services.MilestoneService, reports pdf.Generator) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return routes.SetupRoutes(
		router,
		jwtSecret,
		handlers.NewDealHandler(deals, reports),
		handlers.NewMilestoneHandler(milestones),
	)
}

// Serve runs the HTTP server until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	if a.cfg.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	router := NewRouter(a.log, []byte(a.cfg.Auth.JWTSecret), a.Deals, a.Milestones,
		pdf.NewDocumentGenerator(a.cfg.Reports.FontPath))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a.log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// SweepEscalations mails overdue critical milestones once per day.
func (a *App) SweepEscalations(ctx context.Context) (notify.SweepResult, error) {
	if a.cfg.Escalation.Mailbox == "" {
		return notify.SweepResult{}, errors.New("escalation.mailbox is required")
	}
	e := a.cfg.Email
	mailer := notify.NewEmailService(e.SMTPHost, e.SMTPPort, e.SMTPUser, e.SMTPPassword, e.FromEmail, a.cfg.Escalation.Mailbox)

	rdb := notify.NewRedisClient(a.cfg.Redis.Addr, a.cfg.Redis.Password, a.cfg.Redis.DB)
	defer rdb.Close()
	once := notify.NewDeduper(rdb, 48*time.Hour, a.log)

	return notify.NewSweeper(a.Deals, mailer, once, a.log, nil).Run(ctx)
}
