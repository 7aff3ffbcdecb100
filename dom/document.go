// Package dom models the page the widget renders into: a fixed set of
// elements addressed by stable IDs.
package dom

import (
	"slices"
	"sort"
)

// Element IDs of the standard widget page.
const (
	CityInput         = "city"
	SearchButton      = "searchBtn"
	UnitCelsius       = "unitCelsius"
	UnitFahrenheit    = "unitFahrenheit"
	DarkToggle        = "darkToggle"
	ErrorBanner       = "error"
	Result            = "result"
	CityName          = "cityName"
	Time              = "time"
	Icon              = "icon"
	Condition         = "condition"
	Temp              = "temp"
	TempUnit          = "tempUnit"
	Humidity          = "humidity"
	Wind              = "wind"
	FeelsLike         = "feelsLike"
	Pressure          = "pressure"
	Clouds            = "clouds"
	UV                = "uv"
	SourceInfo        = "sourceInfo"
	ForecastSection   = "forecastSection"
	ForecastContainer = "forecastContainer"
	HourlyChart       = "hourlyChart"
)

const (
	ClassActive = "active"
	ClassDark   = "dark"
)

type Element struct {
	ID       string
	Text     string
	Value    string
	Hidden   bool
	Disabled bool
	Attrs    map[string]string
	Children []*Element

	classes map[string]struct{}
}

func NewElement(id string) *Element {
	return &Element{
		ID:      id,
		Attrs:   map[string]string{},
		classes: map[string]struct{}{},
	}
}

func (e *Element) AddClass(name string) {
	if e.classes == nil {
		e.classes = map[string]struct{}{}
	}
	e.classes[name] = struct{}{}
}

func (e *Element) RemoveClass(name string) {
	delete(e.classes, name)
}

// ToggleClass flips name and reports whether it is now present.
func (e *Element) ToggleClass(name string) bool {
	if e.HasClass(name) {
		e.RemoveClass(name)
		return false
	}
	e.AddClass(name)
	return true
}

func (e *Element) HasClass(name string) bool {
	_, ok := e.classes[name]
	return ok
}

func (e *Element) Classes() []string {
	out := make([]string, 0, len(e.classes))
	for c := range e.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func (e *Element) SetAttr(name, value string) {
	if e.Attrs == nil {
		e.Attrs = map[string]string{}
	}
	e.Attrs[name] = value
}

func (e *Element) Attr(name string) string {
	return e.Attrs[name]
}

// Content is the element's text, or its image source for image-like
// elements that carry no text.
func (e *Element) Content() string {
	if e.Text != "" {
		return e.Text
	}
	return e.Attr("src")
}

func (e *Element) Append(child *Element) {
	e.Children = append(e.Children, child)
}

// ClearChildren drops every child, like assigning an empty innerHTML.
func (e *Element) ClearChildren() {
	e.Children = nil
}

// Document is the page. Root carries document-level classes such as dark
// mode; Focused is the ID of the element holding keyboard focus.
type Document struct {
	Root    *Element
	Focused string

	elements map[string]*Element
	order    []string
}

func NewDocument() *Document {
	return &Document{
		Root:     NewElement("root"),
		elements: map[string]*Element{},
	}
}

// Add registers a new element under id, in page order, and returns it.
// Adding an existing id returns the existing element.
func (d *Document) Add(id string) *Element {
	if el, ok := d.elements[id]; ok {
		return el
	}
	el := NewElement(id)
	d.elements[id] = el
	d.order = append(d.order, id)
	return el
}

// Get returns the element registered under id, or nil.
func (d *Document) Get(id string) *Element {
	return d.elements[id]
}

func (d *Document) Remove(id string) {
	delete(d.elements, id)
	d.order = slices.DeleteFunc(d.order, func(s string) bool { return s == id })
}

// IDs returns element IDs in page order.
func (d *Document) IDs() []string {
	return slices.Clone(d.order)
}

func (d *Document) Focus(id string) {
	if d.Get(id) != nil {
		d.Focused = id
	}
}

// NewWidgetDocument builds the standard widget page. The result panel, the
// error banner and the forecast section start hidden.
func NewWidgetDocument() *Document {
	d := NewDocument()
	for _, id := range []string{
		CityInput, SearchButton, UnitCelsius, UnitFahrenheit, DarkToggle,
		ErrorBanner,
		Result, CityName, Time, Icon, Condition, Temp, TempUnit,
		Humidity, Wind, FeelsLike, Pressure, Clouds, UV, SourceInfo,
		ForecastSection, ForecastContainer, HourlyChart,
	} {
		d.Add(id)
	}
	d.Get(SearchButton).Text = "Search"
	d.Get(UnitCelsius).Text = "°C"
	d.Get(UnitCelsius).AddClass(ClassActive)
	d.Get(UnitFahrenheit).Text = "°F"
	d.Get(DarkToggle).Text = "Dark mode"
	d.Get(ErrorBanner).Hidden = true
	d.Get(Result).Hidden = true
	d.Get(ForecastSection).Hidden = true
	return d
}
