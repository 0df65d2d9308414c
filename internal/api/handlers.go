package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ignite/campaign-insights/internal/api/ui"
	"github.com/ignite/campaign-insights/internal/catalog"
	"github.com/ignite/campaign-insights/internal/config"
	"github.com/ignite/campaign-insights/internal/domain"
	"github.com/ignite/campaign-insights/internal/pkg/httputil"
	"github.com/ignite/campaign-insights/internal/pkg/logger"
	"github.com/ignite/campaign-insights/internal/session"
)

var log = logger.Named("api")

const apiVersion = "1.0.0"

// Analyzer runs a campaign analysis. *analysis.Orchestrator implements it.
type Analyzer interface {
	Analyze(ctx context.Context, form domain.CampaignForm) (*domain.AnalysisResult, error)
}

// Handlers contains all HTTP handlers
type Handlers struct {
	analyzer Analyzer
	catalog  *catalog.Catalog
	sessions *session.Registry
	page     *ui.Renderer
	cookie   config.SessionConfig
}

// NewHandlers creates a new Handlers instance
func NewHandlers(analyzer Analyzer, cat *catalog.Catalog, sessions *session.Registry, page *ui.Renderer, cookie config.SessionConfig) *Handlers {
	return &Handlers{
		analyzer: analyzer,
		catalog:  cat,
		sessions: sessions,
		page:     page,
		cookie:   cookie,
	}
}

// AnalyzeCampaign runs the analysis chains for a posted campaign form.
//
//	POST /api/analyze-campaign
func (h *Handlers) AnalyzeCampaign(w http.ResponseWriter, r *http.Request) {
	var form domain.CampaignForm
	if !httputil.Decode(w, r, &form) {
		return
	}
	if err := form.Validate(); err != nil {
		httputil.Invalid(w, err)
		return
	}

	start := time.Now()
	result, err := h.analyzer.Analyze(r.Context(), form)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			httputil.Invalid(w, err)
			return
		}
		respondSafeError(w, err)
		return
	}

	log.Info("campaign analyzed",
		"campaign", form.CampaignName,
		"score", result.OverallScore,
		"elapsed_ms", time.Since(start).Milliseconds())
	httputil.OK(w, result)
}

// DemoData lists the sample campaigns.
//
//	GET /api/demo-data
func (h *Handlers) DemoData(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, h.catalog.Payload())
}

// APIHealth is the lightweight health probe of the analysis API.
//
//	GET /api/health
func (h *Handlers) APIHealth(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]string{"status": "healthy", "version": apiVersion})
}
