package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/ignite/campaign-insights/internal/domain"
	"github.com/ignite/campaign-insights/internal/pkg/httputil"
)

// Analysis failures never leak chain or upstream details to API consumers.
// The full error is logged server-side and the client gets a fixed message.

// analysisFailure maps an analysis error to a status code and a public-safe
// message.
func analysisFailure(err error) (int, string) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Analysis timed out"
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "Analysis canceled"
	case errors.Is(err, domain.ErrTransport):
		return http.StatusBadGateway, "Analysis service unavailable"
	default:
		return http.StatusInternalServerError, "Analysis failed"
	}
}

// respondSafeError logs the internal error and sends a sanitized JSON error.
func respondSafeError(w http.ResponseWriter, err error) {
	code, msg := analysisFailure(err)
	log.Error("analysis failed", "status", code, "error", err)
	httputil.Error(w, code, msg)
}
