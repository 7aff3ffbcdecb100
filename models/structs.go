package models

import (
	"encoding/json"
	"strconv"
)

type CurrentWeather struct {
	Error      string     `json:"error,omitempty"`
	City       string     `json:"city"`
	Time       string     `json:"time"`
	Icon       string     `json:"icon"`
	Condition  string     `json:"condition"`
	Temp       float64    `json:"temp"`
	Humidity   float64    `json:"humidity"`
	Wind       float64    `json:"wind"`
	FeelsLike  float64    `json:"feels_like"`
	Pressure   float64    `json:"pressure"`
	Clouds     float64    `json:"clouds"`
	UV         float64    `json:"uv"`
	Provider   string     `json:"provider"`
	Station    string     `json:"station"`
	Confidence Confidence `json:"confidence"`
}

type ForecastResponse struct {
	Error      string          `json:"error,omitempty"`
	City       string          `json:"city"`
	Provider   string          `json:"provider"`
	Station    string          `json:"station"`
	Confidence Confidence      `json:"confidence"`
	Forecast   []DailyForecast `json:"forecast"`
	Hourly     []HourlyPoint   `json:"hourly"`
}

type DailyForecast struct {
	Date        string  `json:"date"`
	Icon        string  `json:"icon"`
	MaxTemp     float64 `json:"max_temp"`
	MinTemp     float64 `json:"min_temp"`
	TempUnit    string  `json:"temp_unit"`
	AvgHumidity float64 `json:"avg_humidity"`
}

type HourlyPoint struct {
	Time string  `json:"time"`
	Temp float64 `json:"temp"`
}

// Confidence is sent as a percentage number by the current-weather endpoint
// and as free text by the forecast endpoint.
type Confidence string

func (c *Confidence) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Confidence(s)
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*c = Confidence(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

func (c Confidence) String() string {
	return string(c)
}
