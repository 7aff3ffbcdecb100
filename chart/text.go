package chart

import (
	"errors"
	"fmt"

	"github.com/fhsmendes/weather-widget/dom"
	"github.com/guptarohit/asciigraph"
)

var ErrNoTarget = errors.New("chart target element is missing")

const (
	defaultHeight = 6
	noData        = "(no data)"
)

// TextFactory draws line charts as rows of text into the target element's
// Text. It counts live instances so callers can check that replaced charts
// were released.
type TextFactory struct {
	Height int

	live    int
	created int
}

func NewTextFactory() *TextFactory {
	return &TextFactory{Height: defaultHeight}
}

func (f *TextFactory) New(target *dom.Element, cfg Config) (Chart, error) {
	if target == nil {
		return nil, ErrNoTarget
	}
	if cfg.Type != TypeLine {
		return nil, fmt.Errorf("unsupported chart type %q", cfg.Type)
	}
	height := f.Height
	if height <= 1 {
		height = defaultHeight
	}
	target.Text = Draw(cfg, height)
	f.live++
	f.created++
	return &textChart{factory: f, target: target}, nil
}

// Live is the number of charts created and not yet destroyed.
func (f *TextFactory) Live() int {
	return f.live
}

func (f *TextFactory) Created() int {
	return f.created
}

type textChart struct {
	factory   *TextFactory
	target    *dom.Element
	destroyed bool
}

func (c *textChart) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.target.Text = ""
	c.factory.live--
}

// Draw renders the first dataset of cfg as a line plot of the given height.
// The dataset label becomes the caption when the legend is shown, and the
// first and last x labels are written under the plot.
func Draw(cfg Config, height int) string {
	if len(cfg.Datasets) == 0 {
		return noData
	}
	ds := cfg.Datasets[0]
	caption := ""
	if cfg.ShowLegend {
		caption = ds.Label
	}
	if len(ds.Data) == 0 {
		if caption != "" {
			return caption + "\n" + noData
		}
		return noData
	}

	opts := []asciigraph.Option{asciigraph.Height(height)}
	if caption != "" {
		opts = append(opts, asciigraph.Caption(caption))
	}
	plot := asciigraph.Plot(ds.Data, opts...)

	if len(cfg.Labels) == 0 {
		return plot
	}
	axis := cfg.Labels[0]
	if len(cfg.Labels) > 1 {
		axis += " .. " + cfg.Labels[len(cfg.Labels)-1]
	}
	return plot + "\n" + axis
}
