// Package terminal is the terminal front end of the widget. It paints the
// document as text and turns input lines into UI events.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/fhsmendes/weather-widget/dom"
)

const clearScreen = "\033[H\033[2J"

// Render writes the visible parts of doc to w in page order.
func Render(w io.Writer, doc *dom.Document) error {
	var b strings.Builder

	rule := "="
	if doc.Root.HasClass(dom.ClassDark) {
		rule = "#"
	}
	title := " Weather "
	fmt.Fprintf(&b, "%s%s%s\n", strings.Repeat(rule, 3), title, strings.Repeat(rule, 30))

	renderControls(&b, doc)

	if el := visible(doc, dom.ErrorBanner); el != nil {
		fmt.Fprintf(&b, "! %s\n", el.Text)
	}

	if visible(doc, dom.Result) != nil {
		renderResult(&b, doc)
	}

	if visible(doc, dom.ForecastSection) != nil {
		renderForecast(&b, doc)
	}

	b.WriteString(strings.Repeat(rule, 42))
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

func renderControls(b *strings.Builder, doc *dom.Document) {
	if input := doc.Get(dom.CityInput); input != nil {
		marker := " "
		if doc.Focused == dom.CityInput {
			marker = ">"
		}
		fmt.Fprintf(b, "%s City: [%s]", marker, input.Value)
		if btn := doc.Get(dom.SearchButton); btn != nil {
			state := ""
			if btn.Disabled {
				state = " (disabled)"
			}
			fmt.Fprintf(b, "  [%s]%s", btn.Text, state)
		}
		b.WriteByte('\n')
	}

	var units []string
	for _, id := range []string{dom.UnitCelsius, dom.UnitFahrenheit} {
		el := doc.Get(id)
		if el == nil {
			continue
		}
		if el.HasClass(dom.ClassActive) {
			units = append(units, "("+el.Text+")")
		} else {
			units = append(units, el.Text)
		}
	}
	if len(units) > 0 {
		fmt.Fprintf(b, "  Units: %s\n", strings.Join(units, " "))
	}
}

func renderResult(b *strings.Builder, doc *dom.Document) {
	b.WriteString("--- now ---\n")
	fmt.Fprintf(b, "%s  %s\n", text(doc, dom.CityName), text(doc, dom.Time))
	fmt.Fprintf(b, "%s  %s°%s\n", text(doc, dom.Condition), text(doc, dom.Temp), text(doc, dom.TempUnit))
	fmt.Fprintf(b, "Humidity %s%% | Wind %s km/h | Feels like %s°\n",
		text(doc, dom.Humidity), text(doc, dom.Wind), text(doc, dom.FeelsLike))
	fmt.Fprintf(b, "Pressure %s mb | Clouds %s%% | UV %s\n",
		text(doc, dom.Pressure), text(doc, dom.Clouds), text(doc, dom.UV))
	if info := text(doc, dom.SourceInfo); info != "" {
		fmt.Fprintf(b, "%s\n", info)
	}
}

func renderForecast(b *strings.Builder, doc *dom.Document) {
	b.WriteString("--- forecast ---\n")
	if container := doc.Get(dom.ForecastContainer); container != nil {
		for _, card := range container.Children {
			parts := make([]string, 0, len(card.Children))
			for _, field := range card.Children {
				parts = append(parts, field.Content())
			}
			fmt.Fprintf(b, "%s\n", strings.Join(parts, "  "))
		}
	}
	if c := text(doc, dom.HourlyChart); c != "" {
		fmt.Fprintf(b, "%s\n", c)
	}
}

func visible(doc *dom.Document, id string) *dom.Element {
	el := doc.Get(id)
	if el == nil || el.Hidden {
		return nil
	}
	return el
}

func text(doc *dom.Document, id string) string {
	if el := doc.Get(id); el != nil {
		return el.Text
	}
	return ""
}

// Screen repaints the whole document on every call to Paint.
type Screen struct {
	out   io.Writer
	doc   *dom.Document
	clear bool
}

// NewScreen returns a Screen writing to out. With clear set the terminal is
// cleared before each paint.
func NewScreen(out io.Writer, doc *dom.Document, clear bool) *Screen {
	return &Screen{out: out, doc: doc, clear: clear}
}

func (s *Screen) Paint() error {
	if s.clear {
		if _, err := io.WriteString(s.out, clearScreen); err != nil {
			return err
		}
	}
	return Render(s.out, s.doc)
}
