// Package web serves the page-facing HTTP routes for alerts, widget options
// and panel toggles.
package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/jamesprial/myfunds-ui/internal/alerts"
	"github.com/jamesprial/myfunds-ui/internal/config"
	"github.com/jamesprial/myfunds-ui/internal/widgets"
)

const maxBodyBytes = 64 << 10

// Renderer returns the current container markup.
type Renderer interface {
	HTML() string
}

// Deps are the components the routes operate on.
type Deps struct {
	Alerts    alerts.Manager
	Container Renderer
	UI        config.UIConfig
	Panels    *widgets.PanelSet
	Log       zerolog.Logger
}

type handlers struct {
	Deps
}

// NewRouter registers every route on a new gorilla/mux router.
func NewRouter(d Deps) *mux.Router {
	h := &handlers{Deps: d}
	r := mux.NewRouter()

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)

	ui := r.PathPrefix("/ui").Subrouter()
	ui.HandleFunc("/alerts", h.renderAlerts).Methods(http.MethodGet)
	ui.HandleFunc("/alerts", h.addAlert).Methods(http.MethodPost)
	ui.HandleFunc("/alerts", h.dismissAll).Methods(http.MethodDelete)
	ui.HandleFunc("/alerts/{id}", h.dismiss).Methods(http.MethodDelete)
	ui.HandleFunc("/options", h.options).Methods(http.MethodGet)
	ui.HandleFunc("/panels/{id}/toggle", h.togglePanel).Methods(http.MethodPost)

	return r
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) renderAlerts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, h.Container.HTML())
}

type addAlertRequest struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

func (h *handlers) addAlert(w http.ResponseWriter, r *http.Request) {
	var body addAlertRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		h.Log.Debug().Err(err).Msg("bad alert body")
		writeError(w, http.StatusBadRequest, "invalid alert body")
		return
	}

	h.Alerts.Add(body.Message, body.Category)
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) dismissAll(w http.ResponseWriter, r *http.Request) {
	n := h.Alerts.DismissAll()
	writeJSON(w, http.StatusOK, map[string]int{"dismissed": n})
}

func (h *handlers) dismiss(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !h.Alerts.Dismiss(id) {
		writeError(w, http.StatusNotFound, "notification not visible")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, widgets.OptionsFromConfig(h.UI, r.URL.Query().Get("lang")))
}

func (h *handlers) togglePanel(w http.ResponseWriter, r *http.Request) {
	p, err := h.Panels.Toggle(mux.Vars(r)["id"])
	if errors.Is(err, widgets.ErrUnknownPanel) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
