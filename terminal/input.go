package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fhsmendes/weather-widget/dom"
	"github.com/fhsmendes/weather-widget/models"
	"github.com/fhsmendes/weather-widget/widget"
)

type Kind int

const (
	KindSubmit Kind = iota
	KindUnit
	KindDark
	KindFocus
	KindHelp
	KindQuit
	KindUnknown
)

type Command struct {
	Kind Kind
	Arg  string
}

const Help = `Type a city and press Enter to search.
  :unit c|f   switch temperature unit
  :dark       toggle dark mode
  :focus      focus the city input (Ctrl+K)
  :help       show this help
  :quit       exit`

// Parse maps one input line to a command. Lines not starting with ':' are
// typed into the city input and submitted.
func Parse(line string) Command {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, ":") {
		return Command{Kind: KindSubmit, Arg: line}
	}

	fields := strings.Fields(trimmed[1:])
	if len(fields) == 0 {
		return Command{Kind: KindUnknown, Arg: trimmed}
	}
	arg := strings.Join(fields[1:], " ")
	switch strings.ToLower(fields[0]) {
	case "unit", "u":
		return Command{Kind: KindUnit, Arg: arg}
	case "dark":
		return Command{Kind: KindDark}
	case "focus":
		return Command{Kind: KindFocus}
	case "help", "h":
		return Command{Kind: KindHelp}
	case "quit", "q", "exit":
		return Command{Kind: KindQuit}
	}
	return Command{Kind: KindUnknown, Arg: trimmed}
}

// Apply runs cmd against the controller. It must run on the controller loop.
func Apply(c *widget.Controller, cmd Command) {
	switch cmd.Kind {
	case KindSubmit:
		c.SetCityInput(cmd.Arg)
		c.HandleKeyPress(dom.CityInput, widget.KeyEvent{Key: "Enter"})
	case KindUnit:
		unit, err := models.ParseUnit(cmd.Arg)
		if err != nil {
			c.ShowError(err.Error())
			return
		}
		control := dom.UnitCelsius
		if unit == models.Fahrenheit {
			control = dom.UnitFahrenheit
		}
		c.ToggleUnit(unit, control)
	case KindDark:
		c.ToggleDarkMode()
	case KindFocus:
		c.HandleKeyDown(widget.KeyEvent{Key: "k", Ctrl: true})
	case KindUnknown:
		c.ShowError(fmt.Sprintf("unknown command %q", cmd.Arg))
	}
}

var ErrQuit = errors.New("quit requested")

// Run reads commands from in until EOF, :quit or ctx cancellation, and
// applies each one on the loop.
func Run(ctx context.Context, in io.Reader, out io.Writer, loop *widget.Loop, c *widget.Controller) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			cmd := Parse(line)
			switch cmd.Kind {
			case KindQuit:
				return ErrQuit
			case KindHelp:
				fmt.Fprintln(out, Help)
				continue
			}
			if err := loop.Call(ctx, func() { Apply(c, cmd) }); err != nil {
				return err
			}
		}
	}
}
