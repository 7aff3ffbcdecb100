package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fhsmendes/weather-widget/chart"
	"github.com/fhsmendes/weather-widget/dom"
	"github.com/fhsmendes/weather-widget/handler"
	"github.com/fhsmendes/weather-widget/models"
	"github.com/fhsmendes/weather-widget/terminal"
	"github.com/fhsmendes/weather-widget/utils"
	"github.com/fhsmendes/weather-widget/widget"
	"github.com/joho/godotenv"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

const serviceName = "weather-widget"

func initProvider(serviceName, collectorURL string) (func(context.Context) error, error) {
	ctx := context.Background()

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	conn, err := grpc.DialContext(ctx, collectorURL, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithBlock())
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bsp),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(traceProvider)

	otel.SetTextMapPropagator(propagation.TraceContext{})

	return traceProvider.Shutdown, nil
}

type config struct {
	BackendURL   string
	CurrentPath  string
	ForecastPath string
	Unit         models.Unit
	RateLimit    float64
	OTLPEndpoint string
	ControlAddr  string
	LogLevel     slog.Level
	Refresh      time.Duration
}

// loadConfig reads the environment through getenv, then lets flags in args
// override it.
func loadConfig(args []string, getenv func(string) string) (config, error) {
	cfg := config{
		BackendURL:   envOr(getenv, "WEATHER_BACKEND_URL", "http://localhost:8000"),
		CurrentPath:  envOr(getenv, "WEATHER_CURRENT_PATH", "/current-weather"),
		ForecastPath: envOr(getenv, "WEATHER_FORECAST_PATH", "/forecast"),
		OTLPEndpoint: getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ControlAddr:  getenv("CONTROL_ADDR"),
		RateLimit:    2,
		Refresh:      widget.DefaultRefreshInterval,
	}

	if v := getenv("WEATHER_RATE_LIMIT"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps < 0 {
			return config{}, fmt.Errorf("invalid WEATHER_RATE_LIMIT %q", v)
		}
		cfg.RateLimit = rps
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return config{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}
	}

	fs := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	backend := fs.String("backend", cfg.BackendURL, "weather backend base URL")
	unit := fs.String("unit", envOr(getenv, "WEATHER_UNIT", string(models.Celsius)), "initial unit (c or f)")
	control := fs.String("control", cfg.ControlAddr, "control surface listen address, empty disables it")
	refresh := fs.Duration("refresh", cfg.Refresh, "auto-refresh interval")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	u, err := models.ParseUnit(*unit)
	if err != nil {
		return config{}, err
	}
	if *refresh <= 0 {
		return config{}, fmt.Errorf("invalid refresh interval %s", *refresh)
	}
	cfg.BackendURL = *backend
	cfg.Unit = u
	cfg.ControlAddr = *control
	cfg.Refresh = *refresh
	return cfg, nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return fallback
}

func main() {
	envErr := godotenv.Load()

	cfg, err := loadConfig(os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	if envErr != nil {
		logger.Info("No .env file found")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.OTLPEndpoint != "" {
		shutdown, err := initProvider(serviceName, cfg.OTLPEndpoint)
		if err != nil {
			logger.Error("failed to initialize tracing provider", "err", err)
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := shutdown(shutdownCtx); err != nil {
				logger.Error("failed to shutdown tracing provider", "err", err)
			}
		}()
	}

	var client utils.WeatherClient = utils.NewClient(cfg.BackendURL,
		utils.WithPaths(cfg.CurrentPath, cfg.ForecastPath),
		utils.WithLogger(logger),
	)
	if cfg.RateLimit > 0 {
		client = utils.NewRateLimitedClient(client, cfg.RateLimit, max(1, int(cfg.RateLimit)))
	}

	loop := widget.NewLoop(64)
	doc := dom.NewWidgetDocument()
	screen := terminal.NewScreen(os.Stdout, doc, true)

	c, err := widget.New(widget.Config{
		Client:          client,
		Document:        doc,
		Charts:          chart.NewTextFactory(),
		Clock:           widget.NewLoopClock(loop),
		Dispatcher:      widget.NewLoopDispatcher(loop),
		Logger:          logger,
		Unit:            cfg.Unit,
		RefreshInterval: cfg.Refresh,
		OnChange: func() {
			if err := screen.Paint(); err != nil {
				logger.Warn("failed to paint screen", "err", err)
			}
		},
	})
	if err != nil {
		logger.Error("failed to build widget", "err", err)
		os.Exit(1)
	}

	loopCtx, stopLoop := context.WithCancel(context.Background())
	go loop.Run(loopCtx)
	defer func() {
		_ = loop.Call(context.Background(), c.Close)
		stopLoop()
		<-loop.Done()
	}()

	if err := loop.Call(ctx, func() { _ = screen.Paint() }); err != nil {
		logger.Error("failed to paint screen", "err", err)
		return
	}

	var srv *http.Server
	if cfg.ControlAddr != "" {
		srv = &http.Server{
			Addr:    cfg.ControlAddr,
			Handler: handler.NewWidgetHandler(loop, c, logger).Router(),
		}
		go func() {
			logger.Info("control surface listening", "addr", cfg.ControlAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("control surface failed", "err", err)
				cancel()
			}
		}()
	}

	err = terminal.Run(ctx, os.Stdin, os.Stdout, loop, c)
	switch {
	case err == nil, errors.Is(err, terminal.ErrQuit):
		logger.Info("Shutting down gracefully...")
	case errors.Is(err, context.Canceled):
		logger.Info("Shutting down due to signal...")
	default:
		logger.Error("terminal input failed", "err", err)
	}

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to stop control surface", "err", err)
		}
	}
}
