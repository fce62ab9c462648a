// Command homepage serves a localized academic homepage. Language files
// in lang/<code>.txt fill the page; missing files fall back to the
// built-in Spanish text.
package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fjvico/homepage/internal/check"
	"github.com/fjvico/homepage/internal/config"
	"github.com/fjvico/homepage/internal/loader"
	"github.com/fjvico/homepage/internal/server"
	"github.com/fjvico/homepage/internal/site"
	"github.com/fjvico/homepage/internal/visits"
	"github.com/fjvico/homepage/web"
)

const (
	Version   = "1.0.0"
	BuildTime = "dev"
	appName   = "homepage"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Localized academic homepage",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the homepage over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	})
	cmd.AddCommand(renderCmd(), checkCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})
	return cmd
}

func renderCmd() *cobra.Command {
	var lang, out string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the page for one language to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := initLogger(cfg.Debug)
			defer logger.Sync()

			if lang == "" {
				lang = cfg.DefaultLang
			}
			source, _ := languageSource(cfg)
			renderer, err := newRenderer(source, cfg, logger, nil)
			if err != nil {
				return err
			}
			rendered, err := renderer.Render(cmd.Context(), lang)
			if err != nil {
				return err
			}
			logger.Info("rendered page",
				zap.String("lang", lang),
				zap.Stringer("outcome", rendered.Result.Outcome),
				zap.Strings("skipped", rendered.Result.Report.Skipped()))

			var w io.Writer = os.Stdout
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			_, err = w.Write(rendered.HTML)
			return err
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Language code (default from HOMEPAGE_DEFAULT_LANG)")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output file, - for stdout")
	return cmd
}

func checkCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Report missing sections and fields in language files",
		Long: `Check reads every <code>.txt in dir, or in dir/lang when dir is the
HOMEPAGE_LANG_DIR root. Without dir it checks the embedded files.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := initLogger(false)
			defer logger.Sync()

			var fsys fs.FS = web.Lang()
			dir := ""
			if len(args) == 1 {
				dir = args[0]
				fsys = os.DirFS(dir)
			}

			reports, err := check.Dir(fsys)
			if err != nil {
				return err
			}
			failed := check.Print(os.Stdout, reports)

			if watch {
				if dir == "" {
					return fmt.Errorf("--watch needs a directory")
				}
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return check.Watch(ctx, dir, check.DefaultDebounce, logger, func(r []check.Report) {
					check.Print(os.Stdout, r)
				})
			}
			if failed > 0 {
				return fmt.Errorf("%d language file(s) incomplete", failed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-check whenever a file changes")
	return cmd
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := initLogger(cfg.Debug)
	defer logger.Sync()

	metrics := server.NewMetrics()
	source, langFS := languageSource(cfg)
	renderer, err := newRenderer(source, cfg, logger, metrics)
	if err != nil {
		return err
	}
	tmpl, err := web.Templates()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	deps := server.Deps{
		Renderer:  renderer,
		Metrics:   metrics,
		Templates: tmpl,
		Static:    web.Static(),
		LangFS:    langFS,
	}
	if cfg.TrackVisitors {
		store, err := visits.Open(cfg.DBPath, logger)
		if err != nil {
			return err
		}
		defer store.Close()
		deps.Store = store
		logger.Info("visitor tracking enabled with hashed IP addresses", zap.String("db", cfg.DBPath))
	}

	srv, err := server.New(cfg, logger, deps)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info("starting homepage",
		zap.String("version", Version),
		zap.Strings("languages", cfg.Languages),
		zap.String("default", cfg.DefaultLang))
	return srv.Run(ctx)
}

// languageSource picks where language files come from. The returned
// filesystem backs /lang and is nil for a remote source.
func languageSource(cfg config.Config) (loader.Source, fs.FS) {
	switch {
	case cfg.LangBaseURL != "":
		client := &http.Client{Timeout: cfg.FetchTimeout}
		return loader.HTTPSource{BaseURL: cfg.LangBaseURL, Client: client}, nil
	case cfg.LangDir != "":
		fsys := os.DirFS(cfg.LangDir)
		return loader.FSSource{FS: fsys}, fsys
	default:
		return loader.FSSource{FS: web.FS}, web.FS
	}
}

func newRenderer(source loader.Source, cfg config.Config, logger *zap.Logger, metrics *server.Metrics) (*site.Renderer, error) {
	var opts []loader.Option
	if metrics != nil {
		opts = append(opts, loader.WithObserver(metrics.ObserveLoad))
	}
	host, err := web.HostPage()
	if err != nil {
		return nil, fmt.Errorf("read host page: %w", err)
	}
	return site.NewRenderer(host, loader.New(source, cfg.Email, logger, opts...))
}

func initLogger(debug bool) *zap.Logger {
	logCfg := zap.NewProductionConfig()
	logCfg.EncoderConfig.TimeKey = "timestamp"
	logCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logCfg.EncoderConfig.StacktraceKey = ""
	if debug {
		logCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := logCfg.Build()
	if err != nil {
		log.Fatal("failed to initialize logger:", err)
	}
	return logger
}
