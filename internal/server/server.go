// Package server serves the rendered homepage, the raw language files,
// static assets, metrics and the admin area.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/fjvico/homepage/internal/config"
	"github.com/fjvico/homepage/internal/site"
	"github.com/fjvico/homepage/internal/visits"
)

// Deps are the collaborators built by the caller.
type Deps struct {
	Renderer  *site.Renderer
	Metrics   *Metrics
	Templates *template.Template
	Static    fs.FS
	// LangFS serves lang/<code>.txt; nil when files come from a remote site.
	LangFS fs.FS
	// Store is nil when visitor tracking is off.
	Store *visits.Store
}

type Server struct {
	cfg      config.Config
	logger   *zap.Logger
	renderer *site.Renderer
	metrics  *Metrics
	store    *visits.Store
	langFS   fs.FS
	auth     *adminAuth
	matcher  language.Matcher
	router   *gin.Engine
}

func New(cfg config.Config, logger *zap.Logger, deps Deps) (*Server, error) {
	if deps.Renderer == nil {
		return nil, errors.New("server: renderer is required")
	}
	if deps.Metrics == nil {
		deps.Metrics = NewMetrics()
	}

	auth, err := newAdminAuth(cfg.AdminUsername, cfg.AdminPassword, cfg.JWTSecret, cfg.AdminTokenTTL, cfg.Debug, logger)
	if err != nil {
		return nil, err
	}

	tags := make([]language.Tag, 0, len(cfg.Languages))
	for _, code := range cfg.Languages {
		tags = append(tags, language.Make(code))
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		renderer: deps.Renderer,
		metrics:  deps.Metrics,
		store:    deps.Store,
		langFS:   deps.LangFS,
		auth:     auth,
		matcher:  language.NewMatcher(tags),
	}
	if err := s.setupRouter(deps); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) setupRouter(deps Deps) error {
	gin.SetMode(s.cfg.GinMode)
	r := gin.New()
	if err := r.SetTrustedProxies(s.cfg.TrustedProxies); err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}

	r.Use(requestID())
	r.Use(requestLogger(s.logger, s.metrics))
	r.Use(gin.Recovery())
	r.Use(securityHeaders())

	if deps.Templates != nil {
		r.SetHTMLTemplate(deps.Templates)
	}
	if deps.Static != nil {
		r.StaticFS("/static", http.FS(deps.Static))
	}

	r.GET("/", s.home)
	r.GET("/switch/:code", s.switchLanguage)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "languages": s.cfg.Languages})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))

	if s.langFS != nil {
		langGroup := r.Group("/lang")
		langGroup.Use(cors.New(s.corsConfig()))
		langGroup.GET("/:file", s.languageFile)
	}

	s.setupAdminRoutes(r)
	s.router = r
	return nil
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	for _, origin := range s.cfg.CORSOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = s.cfg.CORSOrigins
	return cfg
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if s.store != nil {
		go s.cleanupLoop(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// cleanupLoop applies the visitor retention window at start and daily.
func (s *Server) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		if _, err := s.store.Cleanup(ctx); err != nil && ctx.Err() == nil {
			s.logger.Warn("visitor cleanup failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
