package models

import (
	"fmt"
	"strings"
)

// Unit is the temperature unit symbol sent to the backend.
type Unit string

const (
	Celsius    Unit = "c"
	Fahrenheit Unit = "f"
)

func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "celsius":
		return Celsius, nil
	case "f", "fahrenheit":
		return Fahrenheit, nil
	}
	return "", fmt.Errorf("unknown temperature unit %q", s)
}

// Label is the upper-case letter shown next to temperatures.
func (u Unit) Label() string {
	if u == Fahrenheit {
		return "F"
	}
	return "C"
}

func (u Unit) Valid() bool {
	return u == Celsius || u == Fahrenheit
}
