package chart

import (
	"strings"
	"testing"

	"github.com/fhsmendes/weather-widget/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineConfig(labels []string, data []float64) Config {
	return Config{
		Type:   TypeLine,
		Labels: labels,
		Datasets: []Dataset{{
			Label:   "Hourly Temperature (°C)",
			Data:    data,
			Tension: 0.4,
			Fill:    true,
		}},
		Responsive: true,
		ShowLegend: true,
	}
}

func TestTextFactory_NewAndDestroy(t *testing.T) {
	f := NewTextFactory()
	target := dom.NewElement(dom.HourlyChart)

	c, err := f.New(target, lineConfig([]string{"00:00", "01:00"}, []float64{10, 12}))
	require.NoError(t, err)
	assert.Equal(t, 1, f.Live())
	assert.Contains(t, target.Text, "Hourly Temperature (°C)")

	c.Destroy()
	assert.Equal(t, 0, f.Live())
	assert.Empty(t, target.Text)

	c.Destroy()
	assert.Equal(t, 0, f.Live(), "second destroy is a no-op")
	assert.Equal(t, 1, f.Created())
}

func TestTextFactory_Errors(t *testing.T) {
	f := NewTextFactory()

	_, err := f.New(nil, lineConfig(nil, nil))
	assert.ErrorIs(t, err, ErrNoTarget)

	cfg := lineConfig(nil, []float64{1})
	cfg.Type = "bar"
	_, err = f.New(dom.NewElement("x"), cfg)
	assert.Error(t, err)
	assert.Equal(t, 0, f.Live())
}

func TestDraw(t *testing.T) {
	out := Draw(lineConfig([]string{"00:00", "01:00", "02:00"}, []float64{10, 15, 20}), 3)
	lines := strings.Split(out, "\n")

	assert.Contains(t, out, "20.00")
	assert.Contains(t, out, "10.00")
	assert.Contains(t, out, "Hourly Temperature (°C)")
	assert.Equal(t, "00:00 .. 02:00", lines[len(lines)-1])
	assert.Less(t, strings.Index(out, "20.00"), strings.Index(out, "10.00"), "highest reading on top")
}

func TestDraw_WithoutLegendOrLabels(t *testing.T) {
	cfg := lineConfig(nil, []float64{1, 3, 2})
	cfg.ShowLegend = false

	out := Draw(cfg, 4)

	assert.NotContains(t, out, "Hourly Temperature")
	assert.NotContains(t, out, " .. ")
	assert.Contains(t, out, "3.00")
}

func TestDraw_FlatSeries(t *testing.T) {
	var out string
	assert.NotPanics(t, func() {
		out = Draw(lineConfig([]string{"00:00"}, []float64{7, 7}), 2)
	})
	assert.Contains(t, out, "7.00")
	assert.True(t, strings.HasSuffix(out, "\n00:00"))
}

func TestDraw_NoData(t *testing.T) {
	assert.Equal(t, "(no data)", Draw(Config{Type: TypeLine}, 4))

	out := Draw(lineConfig(nil, nil), 4)
	assert.True(t, strings.HasSuffix(out, "(no data)"))
}
