package widget

import (
	"github.com/fhsmendes/weather-widget/dom"
)

// ShowError puts msg in the error banner and hides it after the error
// timeout. A newer message restarts the timeout.
func (c *Controller) ShowError(msg string) {
	banner := c.doc.Get(dom.ErrorBanner)
	if banner == nil {
		c.logger.Warn("no error banner on page", "message", msg)
		return
	}
	banner.Text = msg
	banner.Hidden = false

	if c.session.bannerTimer != nil {
		c.session.bannerTimer.Stop()
	}
	c.session.bannerTimer = c.clock.AfterFunc(c.errorTimeout, func() {
		banner.Hidden = true
		c.session.bannerTimer = nil
		c.changed()
	})
}
