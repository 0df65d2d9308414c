// Package source provides the pluggable result sources behind the view
// controller: a fixed demo payload, the in-process analysis orchestrator,
// or a remote analysis service reached over HTTP.
package source

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ignite/campaign-insights/internal/analysis"
	"github.com/ignite/campaign-insights/internal/config"
	"github.com/ignite/campaign-insights/internal/domain"
	"github.com/ignite/campaign-insights/internal/pkg/httpretry"
)

// Source produces an analysis result for a validated form. Every failure
// is reported as a *domain.TransportError.
type Source interface {
	Analyze(ctx context.Context, form domain.CampaignForm) (*domain.AnalysisResult, error)
}

// Static always answers with the demo payload.
type Static struct {
	result *domain.AnalysisResult
}

// NewStatic creates a Static source over DemoResult.
func NewStatic() *Static {
	return &Static{result: DemoResult()}
}

// Analyze returns a private copy of the demo payload. The form is ignored.
func (s *Static) Analyze(ctx context.Context, _ domain.CampaignForm) (*domain.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.TransportError{Op: "static", Err: err}
	}
	res, err := s.result.Clone()
	if err != nil {
		return nil, &domain.TransportError{Op: "static", Err: err}
	}
	return res, nil
}

// Local runs the analysis in-process.
type Local struct {
	orchestrator *analysis.Orchestrator
}

// NewLocal wraps an orchestrator as a Source.
func NewLocal(o *analysis.Orchestrator) *Local {
	return &Local{orchestrator: o}
}

// Analyze delegates to the orchestrator and classifies its failures.
func (l *Local) Analyze(ctx context.Context, form domain.CampaignForm) (*domain.AnalysisResult, error) {
	res, err := l.orchestrator.Analyze(ctx, form)
	if err != nil {
		return nil, &domain.TransportError{Op: "local analysis", Err: err}
	}
	return res, nil
}

// New picks the source named by cfg.Source. The orchestrator is only used
// for the local source and may be nil otherwise.
func New(cfg config.AnalysisConfig, orchestrator *analysis.Orchestrator) (Source, error) {
	switch cfg.Source {
	case config.SourceStatic:
		return NewStatic(), nil
	case config.SourceLocal:
		if orchestrator == nil {
			return nil, fmt.Errorf("source %q needs an orchestrator", cfg.Source)
		}
		return NewLocal(orchestrator), nil
	case config.SourceRemote:
		httpClient := &http.Client{Timeout: cfg.Timeout()}
		return NewRemote(cfg.BaseURL,
			WithHTTPClient(httpClient),
			WithCatalogClient(httpretry.NewRetryClient(httpClient, cfg.CatalogRetries)),
		), nil
	default:
		return nil, fmt.Errorf("unknown analysis source %q", cfg.Source)
	}
}
