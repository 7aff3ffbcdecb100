package utils

import (
	"errors"
	"strconv"
	"strings"
)

var ErrEmptyCity = errors.New("city name is required")

// ValidateCity returns the trimmed city name, or ErrEmptyCity when nothing
// but whitespace was entered.
func ValidateCity(city string) (string, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return "", ErrEmptyCity
	}
	return city, nil
}

// FormatReading renders a numeric reading in its shortest decimal form,
// so 18.0 is shown as "18" and 18.5 as "18.5".
func FormatReading(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
