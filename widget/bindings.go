package widget

import (
	"github.com/fhsmendes/weather-widget/dom"
)

type KeyEvent struct {
	Key  string
	Ctrl bool
	Meta bool
}

// HandleKeyDown handles page-wide shortcuts. Ctrl+K or Cmd+K focuses the
// city input. It reports whether the event was consumed.
func (c *Controller) HandleKeyDown(ev KeyEvent) bool {
	if (ev.Ctrl || ev.Meta) && ev.Key == "k" {
		c.doc.Focus(dom.CityInput)
		c.changed()
		return true
	}
	return false
}

// HandleKeyPress handles a key pressed inside target. Enter in the city
// input submits it.
func (c *Controller) HandleKeyPress(target string, ev KeyEvent) bool {
	if target == dom.CityInput && ev.Key == "Enter" {
		c.Submit()
		return true
	}
	return false
}

func (c *Controller) SetCityInput(value string) {
	if input := c.doc.Get(dom.CityInput); input != nil {
		input.Value = value
	}
}

// ToggleDarkMode flips the dark class on the document root and reports
// whether dark mode is now on.
func (c *Controller) ToggleDarkMode() bool {
	on := c.doc.Root.ToggleClass(dom.ClassDark)
	c.changed()
	return on
}
