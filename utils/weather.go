package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fhsmendes/weather-widget/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultCurrentPath  = "/current-weather"
	DefaultForecastPath = "/forecast"

	tracerName = "weather-widget-client"
)

// WeatherClient is the backend collaborator the widget queries.
type WeatherClient interface {
	CurrentWeather(ctx context.Context, city string, unit models.Unit) (models.CurrentWeather, error)
	Forecast(ctx context.Context, city string, unit models.Unit) (models.ForecastResponse, error)
}

type Client struct {
	baseURL      string
	currentPath  string
	forecastPath string
	httpClient   *http.Client
	tracer       trace.Tracer
	logger       *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithPaths overrides the endpoint paths. Empty values keep the defaults.
func WithPaths(current, forecast string) Option {
	return func(c *Client) {
		if current != "" {
			c.currentPath = current
		}
		if forecast != "" {
			c.forecastPath = forecast
		}
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		currentPath:  DefaultCurrentPath,
		forecastPath: DefaultForecastPath,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		tracer:       otel.Tracer(tracerName),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ WeatherClient = (*Client)(nil)

func (c *Client) CurrentWeather(ctx context.Context, city string, unit models.Unit) (models.CurrentWeather, error) {
	ctx, span := c.tracer.Start(ctx, "current-weather")
	defer span.End()

	var out models.CurrentWeather
	if err := c.getJSON(ctx, span, c.currentPath, city, unit, &out); err != nil {
		return models.CurrentWeather{}, err
	}
	return out, nil
}

func (c *Client) Forecast(ctx context.Context, city string, unit models.Unit) (models.ForecastResponse, error) {
	ctx, span := c.tracer.Start(ctx, "forecast")
	defer span.End()

	var out models.ForecastResponse
	if err := c.getJSON(ctx, span, c.forecastPath, city, unit, &out); err != nil {
		return models.ForecastResponse{}, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, span trace.Span, path, city string, unit models.Unit, out any) error {
	span.SetAttributes(
		attribute.String("city", city),
		attribute.String("unit", string(unit)),
	)

	params := url.Values{}
	params.Set("city", city)
	params.Set("unit", string(unit))
	apiURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		span.RecordError(fmt.Errorf("failed to create request: %w", err))
		span.SetStatus(codes.Error, "failed to create request")
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	c.logger.Debug("backend request", "path", path, "city", city, "unit", unit)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "backend call failed")
		return fmt.Errorf("failed to call backend: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read response")
		return fmt.Errorf("failed to read response: %w", err)
	}

	// The backend reports domain errors in the body, whatever the status.
	var envelope struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
		berr := &BackendError{Message: envelope.Error, StatusCode: resp.StatusCode}
		span.RecordError(berr)
		span.SetStatus(codes.Error, "backend reported error")
		return berr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &StatusError{StatusCode: resp.StatusCode}
		span.RecordError(serr)
		span.SetStatus(codes.Error, "backend returned error status")
		return serr
	}

	if err := json.Unmarshal(body, out); err != nil {
		span.RecordError(fmt.Errorf("failed to decode response: %w", err))
		span.SetStatus(codes.Error, "failed to decode response")
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
