// Package widget implements the weather widget controller: it queries the
// backend, renders current conditions, the daily forecast and the hourly
// chart into a document, and refreshes itself on a timer.
//
// Every exported Controller method must be called from the loop the
// controller was built for. Network calls go through the Dispatcher and
// their completions come back onto the same loop.
package widget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fhsmendes/weather-widget/chart"
	"github.com/fhsmendes/weather-widget/dom"
	"github.com/fhsmendes/weather-widget/models"
	"github.com/fhsmendes/weather-widget/utils"
)

const (
	DefaultRefreshInterval = 5 * time.Minute
	DefaultErrorTimeout    = 5 * time.Second
	DefaultRequestTimeout  = 10 * time.Second

	LoadingLabel = "Loading..."

	MsgEmptyCity           = "⚠️ Please enter a city name"
	MsgNetworkError        = "🌐 Network error"
	MsgForecastUnavailable = "🌐 Forecast unavailable"
)

type Config struct {
	Client     utils.WeatherClient
	Document   *dom.Document
	Charts     chart.Factory
	Clock      Clock
	Dispatcher Dispatcher
	Logger     *slog.Logger

	// Unit is the initial unit, Celsius when empty.
	Unit            models.Unit
	RefreshInterval time.Duration
	ErrorTimeout    time.Duration
	RequestTimeout  time.Duration

	// OnChange runs on the loop after every update of the document.
	OnChange func()
}

type Controller struct {
	client     utils.WeatherClient
	doc        *dom.Document
	charts     chart.Factory
	clock      Clock
	dispatcher Dispatcher
	logger     *slog.Logger
	onChange   func()

	refreshInterval time.Duration
	errorTimeout    time.Duration
	requestTimeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	session Session
}

func New(cfg Config) (*Controller, error) {
	if cfg.Client == nil {
		return nil, errors.New("widget: client is required")
	}
	if cfg.Document == nil {
		return nil, errors.New("widget: document is required")
	}
	if cfg.Clock == nil || cfg.Dispatcher == nil {
		return nil, errors.New("widget: clock and dispatcher are required")
	}
	if cfg.Charts == nil {
		cfg.Charts = chart.NewTextFactory()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Unit == "" {
		cfg.Unit = models.Celsius
	}
	if !cfg.Unit.Valid() {
		return nil, fmt.Errorf("widget: invalid unit %q", cfg.Unit)
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultRefreshInterval
	}
	if cfg.ErrorTimeout <= 0 {
		cfg.ErrorTimeout = DefaultErrorTimeout
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		client:          cfg.Client,
		doc:             cfg.Document,
		charts:          cfg.Charts,
		clock:           cfg.Clock,
		dispatcher:      cfg.Dispatcher,
		logger:          cfg.Logger,
		onChange:        cfg.OnChange,
		refreshInterval: cfg.RefreshInterval,
		errorTimeout:    cfg.ErrorTimeout,
		requestTimeout:  cfg.RequestTimeout,
		ctx:             ctx,
		cancel:          cancel,
		session:         Session{Unit: cfg.Unit},
	}
	c.markUnitControl(unitControl(cfg.Unit))
	return c, nil
}

// Document returns the page the controller renders into.
func (c *Controller) Document() *dom.Document {
	return c.doc
}

func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Unit:        c.session.Unit,
		LastCity:    c.session.LastCity,
		ChartLive:   c.session.Chart != nil,
		RefreshLive: c.session.RefreshTimer != nil,
		Loading:     c.session.pendingSubmits > 0,
		DarkMode:    c.doc.Root.HasClass(dom.ClassDark),
	}
	if c.session.Current != nil {
		s.CurrentCity = c.session.Current.City
	}
	return s
}

// Close stops the timers and cancels in-flight requests.
func (c *Controller) Close() {
	c.cancel()
	if c.session.RefreshTimer != nil {
		c.session.RefreshTimer.Stop()
		c.session.RefreshTimer = nil
	}
	if c.session.bannerTimer != nil {
		c.session.bannerTimer.Stop()
		c.session.bannerTimer = nil
	}
}

// Submit runs the current-conditions cycle for the city typed in the input.
func (c *Controller) Submit() {
	defer c.changed()

	c.setHidden(dom.ErrorBanner, true)
	c.setHidden(dom.Result, true)

	var raw string
	if input := c.doc.Get(dom.CityInput); input != nil {
		raw = input.Value
	}
	city, err := utils.ValidateCity(raw)
	if err != nil {
		c.ShowError(MsgEmptyCity)
		c.doc.Focus(dom.CityInput)
		return
	}

	c.session.LastCity = city
	c.beginLoading()

	unit := c.session.Unit
	gen := c.nextWeatherGen()
	c.fetchCurrent(city, unit, func(cw models.CurrentWeather, err error) {
		c.endLoading()
		if gen != c.session.weatherGen {
			c.logger.Debug("dropping stale weather response", "city", city, "generation", gen)
			return
		}
		if err != nil {
			c.reportError(err, MsgNetworkError, "weather request failed", city, unit)
			return
		}

		c.session.Current = &cw
		c.displayWeather(cw, unit)
		c.loadForecast(city, unit)
		c.StartAutoRefresh()
		if input := c.doc.Get(dom.CityInput); input != nil {
			input.Value = ""
		}
	})
}

// ToggleUnit switches the session to unit and marks control as the active
// unit button. When control is empty the default button for unit is used.
// With a city already queried both cycles are re-run with the new unit.
func (c *Controller) ToggleUnit(unit models.Unit, control string) {
	defer c.changed()

	if unit != models.Fahrenheit {
		unit = models.Celsius
	}
	c.session.Unit = unit
	if control == "" {
		control = unitControl(unit)
	}
	c.markUnitControl(control)

	city := c.session.LastCity
	if city == "" {
		return
	}

	gen := c.nextWeatherGen()
	c.fetchCurrent(city, unit, func(cw models.CurrentWeather, err error) {
		if gen != c.session.weatherGen {
			c.logger.Debug("dropping stale weather response", "city", city, "generation", gen)
			return
		}
		if err != nil {
			c.reportError(err, MsgNetworkError, "weather request failed", city, unit)
			return
		}
		c.session.Current = &cw
		c.displayWeather(cw, unit)
		// A toggle can supersede the submit that would have started it.
		if c.session.RefreshTimer == nil {
			c.StartAutoRefresh()
		}
	})
	c.loadForecast(city, unit)
}

// loadForecast runs the forecast cycle. Backend-reported errors render
// nothing; transport failures reach the banner.
func (c *Controller) loadForecast(city string, unit models.Unit) {
	c.session.forecastGen++
	gen := c.session.forecastGen

	var fc models.ForecastResponse
	var err error
	c.dispatcher.Dispatch(func() {
		ctx, cancel := context.WithTimeout(c.ctx, c.requestTimeout)
		defer cancel()
		fc, err = c.client.Forecast(ctx, city, unit)
	}, func() {
		defer c.changed()
		if gen != c.session.forecastGen {
			c.logger.Debug("dropping stale forecast response", "city", city, "generation", gen)
			return
		}
		if err != nil {
			if be, ok := utils.AsBackendError(err); ok {
				c.logger.Warn("forecast not rendered", "city", city, "unit", unit, "err", be.Message)
				return
			}
			if errors.Is(err, context.Canceled) {
				return
			}
			c.logger.Error("forecast request failed", "city", city, "unit", unit, "err", err)
			c.ShowError(MsgForecastUnavailable)
			return
		}
		c.renderForecast(fc.Forecast)
		c.renderHourlyChart(fc.Hourly, unit)
	})
}

func (c *Controller) fetchCurrent(city string, unit models.Unit, done func(models.CurrentWeather, error)) {
	var cw models.CurrentWeather
	var err error
	c.dispatcher.Dispatch(func() {
		ctx, cancel := context.WithTimeout(c.ctx, c.requestTimeout)
		defer cancel()
		cw, err = c.client.CurrentWeather(ctx, city, unit)
	}, func() {
		defer c.changed()
		done(cw, err)
	})
}

// reportError shows backend messages verbatim and transport failures as
// transportMsg.
func (c *Controller) reportError(err error, transportMsg, logMsg, city string, unit models.Unit) {
	if be, ok := utils.AsBackendError(err); ok {
		c.ShowError(be.Message)
		return
	}
	if errors.Is(err, context.Canceled) {
		return
	}
	c.logger.Error(logMsg, "city", city, "unit", unit, "err", err)
	c.ShowError(transportMsg)
}

func (c *Controller) nextWeatherGen() uint64 {
	c.session.weatherGen++
	return c.session.weatherGen
}

func (c *Controller) beginLoading() {
	btn := c.doc.Get(dom.SearchButton)
	if c.session.pendingSubmits == 0 && btn != nil {
		c.session.idleLabel = btn.Text
	}
	c.session.pendingSubmits++
	if btn != nil {
		btn.Text = LoadingLabel
		btn.Disabled = true
	}
}

func (c *Controller) endLoading() {
	if c.session.pendingSubmits > 0 {
		c.session.pendingSubmits--
	}
	if c.session.pendingSubmits > 0 {
		return
	}
	if btn := c.doc.Get(dom.SearchButton); btn != nil {
		btn.Text = c.session.idleLabel
		btn.Disabled = false
	}
}

func (c *Controller) markUnitControl(control string) {
	for _, id := range []string{dom.UnitCelsius, dom.UnitFahrenheit} {
		if el := c.doc.Get(id); el != nil {
			el.RemoveClass(dom.ClassActive)
		}
	}
	if el := c.doc.Get(control); el != nil {
		el.AddClass(dom.ClassActive)
	}
}

func unitControl(u models.Unit) string {
	if u == models.Fahrenheit {
		return dom.UnitFahrenheit
	}
	return dom.UnitCelsius
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}
