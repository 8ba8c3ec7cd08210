package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"thingsd/internal/common/fsutil"
	"thingsd/internal/config"
	"thingsd/internal/httpapi"
	"thingsd/internal/things"
)

// defaultConfigFiles are tried in order when --config is not given.
var defaultConfigFiles = []string{"thingsd.yaml", "thingsd.yml", "thingsd.toml", "thingsd.json"}

func newRootCmd() *cobra.Command {
	var (
		cfgPath     string
		envFile     string
		corsOrigins string
		flagCfg     config.Config
	)
	root := &cobra.Command{
		Use:           "thingsd",
		Short:         "Serve POST /things",
		Long:          "thingsd accepts JSON things on POST /things and answers decode failures with structured JSON errors.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if p, ok := fsutil.FirstRegularFile(envFile); ok {
				if err := godotenv.Load(p); err != nil {
					return fmt.Errorf("load %s: %w", p, err)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			flagCfg.CORSOrigins = config.SplitCSV(corsOrigins)
			cfg, err := resolveConfig(cfgPath, flagCfg)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.LogFormat, cfg.LogLevel, cmd.ErrOrStderr())
			tp, err := newTracerProvider(cfg.TraceExporter, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", cfg.Addr, err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, ln, things.NewService(things.NopAction), logger, tp)
		},
	}

	f := root.Flags()
	f.StringVar(&cfgPath, "config", "", "Config file (.yaml/.yml/.json/.toml); defaults to ./thingsd.{yaml,yml,toml,json} if present")
	f.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading THINGSD_* variables, if it exists")
	f.StringVar(&flagCfg.Addr, "addr", "", "HTTP listen address, e.g. :8000")
	f.Int64Var(&flagCfg.MaxBodyBytes, "max-body-bytes", 0, "Maximum request body size in bytes (default 1MiB)")
	f.Int64Var(&flagCfg.ActionTimeoutSeconds, "action-timeout-seconds", 0, "Timeout for the important-thing action (0=none)")
	f.Int64Var(&flagCfg.ShutdownTimeoutSeconds, "shutdown-timeout-seconds", 0, "Graceful shutdown timeout (default 5)")
	f.StringVar(&flagCfg.LogLevel, "log-level", "", "Log level: off|error|info|debug")
	f.StringVar(&flagCfg.LogFormat, "log-format", "", "Log format: json|console")
	f.StringVar(&flagCfg.TraceExporter, "trace-exporter", "", "Span exporter: none|stdout")
	f.BoolVar(&flagCfg.CORSEnabled, "cors", false, "Enable CORS")
	f.StringVar(&corsOrigins, "cors-origins", "", "Comma separated allowed CORS origins")
	return root
}

// resolveConfig layers defaults, config file, THINGSD_* env and flags, in
// increasing precedence.
func resolveConfig(path string, flags config.Config) (config.Config, error) {
	cfg := config.Defaults()
	if path == "" {
		path, _ = fsutil.FirstRegularFile(defaultConfigFiles...)
	}
	if path != "" {
		fileCfg, err := config.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = cfg.Merge(fileCfg)
	}
	cfg, err := config.FromEnv(config.EnvPrefix, cfg)
	if err != nil {
		return cfg, err
	}
	cfg = cfg.Merge(flags)
	return cfg, cfg.Validate()
}

// serve runs the HTTP server on ln until ctx is canceled, then shuts it down.
// tp becomes the global tracer provider and is flushed on return.
func serve(ctx context.Context, cfg config.Config, ln net.Listener, svc httpapi.Service, logger zerolog.Logger, tp *sdktrace.TracerProvider) error {
	shutdownTimeout := time.Duration(cfg.ShutdownTimeoutSeconds) * time.Second
	otel.SetTracerProvider(tp)
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(sctx); err != nil {
			logger.Warn().Err(err).Msg("tracer provider shutdown")
		}
	}()

	httpapi.SetLogger(logger)
	httpapi.SetDefaultLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetActionTimeoutSeconds(cfg.ActionTimeoutSeconds)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins, nil, nil)
	httpapi.SetBaseContext(ctx)

	srv := &http.Server{
		Handler:           httpapi.NewMux(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", ln.Addr().String()).Msg("thingsd listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info().Msg("thingsd shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
