package terminal

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/fhsmendes/weather-widget/dom"
	"github.com/fhsmendes/weather-widget/models"
	"github.com/fhsmendes/weather-widget/utils/mocks"
	"github.com/fhsmendes/weather-widget/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line     string
		expected Command
	}{
		{"Paris", Command{Kind: KindSubmit, Arg: "Paris"}},
		{"  New York ", Command{Kind: KindSubmit, Arg: "  New York "}},
		{"", Command{Kind: KindSubmit, Arg: ""}},
		{":unit f", Command{Kind: KindUnit, Arg: "f"}},
		{":u celsius", Command{Kind: KindUnit, Arg: "celsius"}},
		{":dark", Command{Kind: KindDark}},
		{" :focus", Command{Kind: KindFocus}},
		{":help", Command{Kind: KindHelp}},
		{":q", Command{Kind: KindQuit}},
		{":quit", Command{Kind: KindQuit}},
		{":", Command{Kind: KindUnknown, Arg: ":"}},
		{":bogus x", Command{Kind: KindUnknown, Arg: ":bogus x"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.line))
		})
	}
}

type runHarness struct {
	loop   *widget.Loop
	c      *widget.Controller
	client *mocks.WeatherClient
}

func newRunHarness(t *testing.T) *runHarness {
	t.Helper()
	loop := widget.NewLoop(16)
	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-loop.Done()
	})

	client := mocks.NewWeatherClient(t)
	c, err := widget.New(widget.Config{
		Client:     client,
		Document:   dom.NewWidgetDocument(),
		Clock:      widget.NewLoopClock(loop),
		Dispatcher: widget.NewLoopDispatcher(loop),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = loop.Call(context.Background(), c.Close) })
	return &runHarness{loop: loop, c: c, client: client}
}

func (h *runHarness) snapshot(t *testing.T) widget.Snapshot {
	t.Helper()
	var s widget.Snapshot
	require.NoError(t, h.loop.Call(context.Background(), func() { s = h.c.Snapshot() }))
	return s
}

func TestRun_LocalCommands(t *testing.T) {
	h := newRunHarness(t)
	var out bytes.Buffer

	err := Run(context.Background(), strings.NewReader(":dark\n:unit f\n:focus\n:help\n:quit\nParis\n"), &out, h.loop, h.c)

	assert.ErrorIs(t, err, ErrQuit)
	snap := h.snapshot(t)
	assert.True(t, snap.DarkMode)
	assert.Equal(t, models.Fahrenheit, snap.Unit)
	assert.Empty(t, snap.LastCity, "lines after :quit are not applied")
	assert.Contains(t, out.String(), ":unit c|f")
}

func TestRun_InvalidUnitShowsError(t *testing.T) {
	h := newRunHarness(t)

	err := Run(context.Background(), strings.NewReader(":unit kelvin\n"), io.Discard, h.loop, h.c)

	require.NoError(t, err)
	var banner string
	require.NoError(t, h.loop.Call(context.Background(), func() {
		banner = h.c.Document().Get(dom.ErrorBanner).Text
	}))
	assert.Contains(t, banner, "kelvin")
}

func TestRun_SubmitsCity(t *testing.T) {
	h := newRunHarness(t)
	h.client.On("CurrentWeather", mock.Anything, "Paris", models.Celsius).
		Return(models.CurrentWeather{City: "Paris", Temp: 18}, nil).Once()
	h.client.On("Forecast", mock.Anything, "Paris", models.Celsius).
		Return(models.ForecastResponse{}, nil).Once()

	err := Run(context.Background(), strings.NewReader("Paris\n"), io.Discard, h.loop, h.c)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		var city string
		var forecastShown bool
		_ = h.loop.Call(context.Background(), func() {
			city = h.c.Document().Get(dom.CityName).Text
			forecastShown = !h.c.Document().Get(dom.ForecastSection).Hidden
		})
		return city == "Paris" && forecastShown
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRun_ContextCanceled(t *testing.T) {
	h := newRunHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader, writer := io.Pipe()
	defer writer.Close()

	err := Run(ctx, reader, io.Discard, h.loop, h.c)
	assert.ErrorIs(t, err, context.Canceled)
}
