package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/campaign-insights/internal/domain"
	"github.com/ignite/campaign-insights/internal/pkg/httputil"
	"github.com/ignite/campaign-insights/internal/session"
	"github.com/ignite/campaign-insights/internal/view"
)

// controller resolves the caller's session and refreshes its cookie.
func (h *Handlers) controller(w http.ResponseWriter, r *http.Request) (*view.Controller, bool) {
	id, c, err := h.sessions.Lookup(session.FromRequest(r, h.cookie.CookieName))
	if err != nil {
		httputil.Error(w, http.StatusServiceUnavailable, "shutting down")
		return nil, false
	}
	session.SetCookie(w, h.cookie.CookieName, id, h.cookie.IdleTimeout())
	return c, true
}

// Page renders the whole analysis page for the caller's session.
//
//	GET /
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.page.Render(&buf, c.Snapshot()); err != nil {
		httputil.InternalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

// State returns the caller's view snapshot.
//
//	GET /ui/state
func (h *Handlers) State(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	httputil.OK(w, c.Snapshot())
}

// Submit starts an analysis from the posted form fields.
//
//	POST /ui/submit
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		httputil.BadRequest(w, "invalid form: "+err.Error())
		return
	}

	raw := domain.RawForm{
		CampaignName:   r.PostFormValue(domain.FieldCampaignName),
		Platform:       r.PostFormValue(domain.FieldPlatform),
		Budget:         r.PostFormValue(domain.FieldBudget),
		TargetAudience: r.PostFormValue(domain.FieldTargetAudience),
		Industry:       r.PostFormValue(domain.FieldIndustry),
		Objectives:     r.PostForm[domain.FieldObjectives],
	}
	h.respond(w, r, c, c.Submit(raw))
}

// LoadDemo prefills the form with a sample campaign. An optional "index"
// field picks the campaign; the first one is the default.
//
//	POST /ui/demo
func (h *Handlers) LoadDemo(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}

	form := h.catalog.Demo()
	if v := r.FormValue("index"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			httputil.BadRequest(w, "index must be a number")
			return
		}
		f, found := h.catalog.At(i)
		if !found {
			httputil.Error(w, http.StatusNotFound, "no sample campaign at index "+v)
			return
		}
		form = f
	}
	h.respond(w, r, c, c.LoadDemo(form))
}

// Reset returns to an empty form, abandoning any running analysis.
//
//	POST /ui/reset
func (h *Handlers) Reset(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	h.respond(w, r, c, c.Reset())
}

// SwitchTab activates a results tab.
//
//	POST /ui/tab/{tab}
func (h *Handlers) SwitchTab(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	h.respond(w, r, c, c.SwitchTab(domain.TabID(chi.URLParam(r, "tab"))))
}

// respond answers a UI action. JSON clients get the snapshot or a typed
// error; browsers are redirected back to the page, where notifications
// already describe validation and transport failures.
func (h *Handlers) respond(w http.ResponseWriter, r *http.Request, c *view.Controller, err error) {
	if wantsJSON(r) {
		switch {
		case err == nil:
			httputil.OK(w, c.Snapshot())
		case errors.Is(err, domain.ErrValidation):
			httputil.Invalid(w, err)
		case errors.Is(err, domain.ErrAnalysisInFlight):
			httputil.Conflict(w, err.Error())
		case errors.Is(err, view.ErrUnknownTab):
			httputil.BadRequest(w, err.Error())
		case errors.Is(err, view.ErrClosed):
			httputil.Error(w, http.StatusServiceUnavailable, "session closed")
		default:
			httputil.InternalError(w, err)
		}
		return
	}

	if errors.Is(err, view.ErrUnknownTab) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
