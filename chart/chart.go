// Package chart is the charting collaborator: it takes a line-chart
// configuration and draws it into a document element.
package chart

import (
	"github.com/fhsmendes/weather-widget/dom"
)

const TypeLine = "line"

type Dataset struct {
	Label   string
	Data    []float64
	Tension float64
	Fill    bool
}

type Config struct {
	Type       string
	Labels     []string
	Datasets   []Dataset
	Responsive bool
	ShowLegend bool
}

// Chart is a live chart instance. Destroy releases it; a destroyed chart
// must not be reused.
type Chart interface {
	Destroy()
}

type Factory interface {
	New(target *dom.Element, cfg Config) (Chart, error)
}
