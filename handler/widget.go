package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fhsmendes/weather-widget/dom"
	"github.com/fhsmendes/weather-widget/models"
	"github.com/fhsmendes/weather-widget/utils"
	"github.com/fhsmendes/weather-widget/widget"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

type CityRequest struct {
	City string `json:"city"`
}

// DocumentView lists the visible regions of the page by element ID.
type DocumentView struct {
	Regions  map[string]string `json:"regions"`
	Forecast [][]string        `json:"forecast,omitempty"`
	Focused  string            `json:"focused,omitempty"`
}

// WidgetHandler exposes the controller over HTTP. Every handler runs its
// work on the controller loop and waits for it.
type WidgetHandler struct {
	loop   *widget.Loop
	c      *widget.Controller
	logger *slog.Logger
}

func NewWidgetHandler(loop *widget.Loop, c *widget.Controller, logger *slog.Logger) *WidgetHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WidgetHandler{loop: loop, c: c, logger: logger}
}

func (h *WidgetHandler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Get("/health", h.Health)
	r.Get("/state", h.State)
	r.Get("/document", h.Document)
	r.Post("/city", h.SubmitCity)
	r.Post("/unit/{unit}", h.ToggleUnit)
	r.Post("/dark", h.ToggleDark)

	return r
}

func (h *WidgetHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *WidgetHandler) State(w http.ResponseWriter, r *http.Request) {
	var snap widget.Snapshot
	if !h.run(w, r, func() { snap = h.c.Snapshot() }) {
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *WidgetHandler) Document(w http.ResponseWriter, r *http.Request) {
	var view DocumentView
	if !h.run(w, r, func() { view = viewOf(h.c.Document()) }) {
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *WidgetHandler) SubmitCity(w http.ResponseWriter, r *http.Request) {
	var req CityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Message: "invalid city"})
		return
	}

	var snap widget.Snapshot
	if !h.run(w, r, func() {
		h.c.SetCityInput(req.City)
		h.c.HandleKeyPress(dom.CityInput, widget.KeyEvent{Key: "Enter"})
		snap = h.c.Snapshot()
	}) {
		return
	}

	if _, err := utils.ValidateCity(req.City); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Message: "invalid city"})
		return
	}
	writeJSON(w, http.StatusAccepted, snap)
}

func (h *WidgetHandler) ToggleUnit(w http.ResponseWriter, r *http.Request) {
	unit, err := models.ParseUnit(chi.URLParam(r, "unit"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Message: "invalid unit"})
		return
	}

	control := dom.UnitCelsius
	if unit == models.Fahrenheit {
		control = dom.UnitFahrenheit
	}
	var snap widget.Snapshot
	if !h.run(w, r, func() {
		h.c.ToggleUnit(unit, control)
		snap = h.c.Snapshot()
	}) {
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *WidgetHandler) ToggleDark(w http.ResponseWriter, r *http.Request) {
	var on bool
	if !h.run(w, r, func() { on = h.c.ToggleDarkMode() }) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"dark_mode": on})
}

func (h *WidgetHandler) run(w http.ResponseWriter, r *http.Request, fn func()) bool {
	if err := h.loop.Call(r.Context(), fn); err != nil {
		h.logger.Error("widget loop unavailable", "path", r.URL.Path, "err", err)
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Message: "widget unavailable"})
		return false
	}
	return true
}

func viewOf(doc *dom.Document) DocumentView {
	view := DocumentView{Regions: map[string]string{}, Focused: doc.Focused}
	hiddenSections := map[string]bool{}
	for _, id := range []string{dom.Result, dom.ForecastSection} {
		if el := doc.Get(id); el != nil && el.Hidden {
			hiddenSections[id] = true
		}
	}

	for _, id := range doc.IDs() {
		el := doc.Get(id)
		if el.Hidden || sectionOf(id, hiddenSections) {
			continue
		}
		text := el.Text
		if id == dom.CityInput {
			text = el.Value
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		view.Regions[id] = text
	}

	if !hiddenSections[dom.ForecastSection] {
		if container := doc.Get(dom.ForecastContainer); container != nil {
			for _, card := range container.Children {
				fields := make([]string, 0, len(card.Children))
				for _, f := range card.Children {
					fields = append(fields, f.Content())
				}
				view.Forecast = append(view.Forecast, fields)
			}
		}
	}
	return view
}

var resultRegions = map[string]bool{
	dom.CityName: true, dom.Time: true, dom.Icon: true, dom.Condition: true,
	dom.Temp: true, dom.TempUnit: true, dom.Humidity: true, dom.Wind: true,
	dom.FeelsLike: true, dom.Pressure: true, dom.Clouds: true, dom.UV: true,
	dom.SourceInfo: true,
}

// sectionOf reports whether id sits inside a hidden section.
func sectionOf(id string, hidden map[string]bool) bool {
	if hidden[dom.Result] && resultRegions[id] {
		return true
	}
	if hidden[dom.ForecastSection] && (id == dom.ForecastContainer || id == dom.HourlyChart) {
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
