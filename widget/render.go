package widget

import (
	"fmt"

	"github.com/fhsmendes/weather-widget/chart"
	"github.com/fhsmendes/weather-widget/dom"
	"github.com/fhsmendes/weather-widget/models"
	"github.com/fhsmendes/weather-widget/utils"
)

// Forecast card element classes.
const (
	ClassForecastCard     = "forecast-card"
	ClassForecastDate     = "forecast-date"
	ClassForecastIcon     = "forecast-icon"
	ClassForecastTemp     = "forecast-temp"
	ClassForecastHumidity = "forecast-humidity"
)

func (c *Controller) displayWeather(cw models.CurrentWeather, unit models.Unit) {
	c.setHidden(dom.Result, false)

	c.setText(dom.CityName, cw.City)
	c.setText(dom.Time, cw.Time)
	if icon := c.doc.Get(dom.Icon); icon != nil {
		icon.SetAttr("src", cw.Icon)
	}
	c.setText(dom.Condition, cw.Condition)

	c.setText(dom.Temp, utils.FormatReading(cw.Temp))
	c.setText(dom.TempUnit, unit.Label())

	c.setText(dom.Humidity, utils.FormatReading(cw.Humidity))
	c.setText(dom.Wind, utils.FormatReading(cw.Wind))
	c.setText(dom.FeelsLike, utils.FormatReading(cw.FeelsLike))
	c.setText(dom.Pressure, utils.FormatReading(cw.Pressure))
	c.setText(dom.Clouds, utils.FormatReading(cw.Clouds))
	c.setText(dom.UV, utils.FormatReading(cw.UV))

	c.setText(dom.SourceInfo, fmt.Sprintf("Source: %s | Station: %s | Confidence: %s%%",
		cw.Provider, cw.Station, cw.Confidence))
}

// renderForecast rebuilds the forecast cards from scratch.
func (c *Controller) renderForecast(days []models.DailyForecast) {
	container := c.doc.Get(dom.ForecastContainer)
	if container == nil {
		return
	}
	container.ClearChildren()

	for i, day := range days {
		card := dom.NewElement(fmt.Sprintf("forecast-%d", i))
		card.AddClass(ClassForecastCard)

		date := dom.NewElement(card.ID + "-date")
		date.AddClass(ClassForecastDate)
		date.Text = day.Date

		icon := dom.NewElement(card.ID + "-icon")
		icon.AddClass(ClassForecastIcon)
		icon.SetAttr("src", day.Icon)

		temp := dom.NewElement(card.ID + "-temp")
		temp.AddClass(ClassForecastTemp)
		temp.Text = fmt.Sprintf("%s°%s / %s°%s",
			utils.FormatReading(day.MaxTemp), day.TempUnit,
			utils.FormatReading(day.MinTemp), day.TempUnit)

		humidity := dom.NewElement(card.ID + "-humidity")
		humidity.AddClass(ClassForecastHumidity)
		humidity.Text = fmt.Sprintf("💧 %s%%", utils.FormatReading(day.AvgHumidity))

		card.Append(date)
		card.Append(icon)
		card.Append(temp)
		card.Append(humidity)
		container.Append(card)
	}

	c.setHidden(dom.ForecastSection, false)
}

// renderHourlyChart replaces the live chart. The old instance is destroyed
// before the new one is created.
func (c *Controller) renderHourlyChart(hourly []models.HourlyPoint, unit models.Unit) {
	target := c.doc.Get(dom.HourlyChart)
	if target == nil {
		return
	}

	labels := make([]string, 0, len(hourly))
	temps := make([]float64, 0, len(hourly))
	for _, h := range hourly {
		labels = append(labels, h.Time)
		temps = append(temps, h.Temp)
	}

	if c.session.Chart != nil {
		c.session.Chart.Destroy()
		c.session.Chart = nil
	}

	ch, err := c.charts.New(target, chart.Config{
		Type:   chart.TypeLine,
		Labels: labels,
		Datasets: []chart.Dataset{{
			Label:   fmt.Sprintf("Hourly Temperature (°%s)", unit.Label()),
			Data:    temps,
			Tension: 0.4,
			Fill:    true,
		}},
		Responsive: true,
		ShowLegend: true,
	})
	if err != nil {
		c.logger.Error("failed to create hourly chart", "err", err)
		return
	}
	c.session.Chart = ch
}

func (c *Controller) setText(id, text string) {
	if el := c.doc.Get(id); el != nil {
		el.Text = text
	}
}

func (c *Controller) setHidden(id string, hidden bool) {
	if el := c.doc.Get(id); el != nil {
		el.Hidden = hidden
	}
}
