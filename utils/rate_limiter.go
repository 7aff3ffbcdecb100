package utils

import (
	"context"
	"fmt"

	"github.com/fhsmendes/weather-widget/models"
	"golang.org/x/time/rate"
)

// RateLimitedClient paces requests to the backend. Both endpoints share one
// limiter since they hit the same service.
type RateLimitedClient struct {
	client  WeatherClient
	limiter *rate.Limiter
}

// NewRateLimitedClient wraps client with a limiter allowing rps requests per
// second with bursts of up to burst requests.
func NewRateLimitedClient(client WeatherClient, rps float64, burst int) *RateLimitedClient {
	return &RateLimitedClient{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimitedClient) CurrentWeather(ctx context.Context, city string, unit models.Unit) (models.CurrentWeather, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return models.CurrentWeather{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.client.CurrentWeather(ctx, city, unit)
}

func (r *RateLimitedClient) Forecast(ctx context.Context, city string, unit models.Unit) (models.ForecastResponse, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return models.ForecastResponse{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.client.Forecast(ctx, city, unit)
}

var _ WeatherClient = (*RateLimitedClient)(nil)
