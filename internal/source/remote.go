package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ignite/campaign-insights/internal/domain"
	"github.com/ignite/campaign-insights/internal/pkg/httpretry"
)

const (
	analyzePath  = "/api/analyze-campaign"
	demoDataPath = "/api/demo-data"

	// maxErrorBody bounds how much of a failed response ends up in an error.
	maxErrorBody = 512
)

// Remote talks to an analysis service over HTTP. The analysis POST is a
// single exchange; only the idempotent demo-data GET goes through the
// retrying client.
type Remote struct {
	baseURL       string
	httpClient    httpretry.HTTPDoer
	catalogClient httpretry.HTTPDoer
}

// RemoteOption configures a Remote.
type RemoteOption func(*Remote)

// WithHTTPClient sets the client used for the analysis exchange.
func WithHTTPClient(c httpretry.HTTPDoer) RemoteOption {
	return func(r *Remote) { r.httpClient = c }
}

// WithCatalogClient sets the client used for demo-data lookups.
func WithCatalogClient(c httpretry.HTTPDoer) RemoteOption {
	return func(r *Remote) { r.catalogClient = c }
}

// NewRemote creates a Remote for the service at baseURL.
func NewRemote(baseURL string, opts ...RemoteOption) *Remote {
	r := &Remote{baseURL: strings.TrimRight(baseURL, "/")}
	for _, opt := range opts {
		opt(r)
	}
	if r.httpClient == nil {
		r.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if r.catalogClient == nil {
		r.catalogClient = httpretry.NewRetryClient(r.httpClient, -1)
	}
	return r
}

// Analyze posts the form and decodes the result. Any non-2xx status is a
// failure; 4xx and 5xx are not distinguished.
func (r *Remote) Analyze(ctx context.Context, form domain.CampaignForm) (*domain.AnalysisResult, error) {
	op := http.MethodPost + " " + analyzePath

	body, err := json.Marshal(form)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: fmt.Errorf("encoding request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+analyzePath, bytes.NewReader(body))
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var result domain.AnalysisResult
	if err := r.exchange(r.httpClient, req, op, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SampleCampaigns fetches the demo catalog from the service.
func (r *Remote) SampleCampaigns(ctx context.Context) ([]domain.CampaignForm, error) {
	op := http.MethodGet + " " + demoDataPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+demoDataPath, nil)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	var payload domain.SampleCampaigns
	if err := r.exchange(r.catalogClient, req, op, &payload); err != nil {
		return nil, err
	}
	return payload.SampleCampaigns, nil
}

func (r *Remote) exchange(client httpretry.HTTPDoer, req *http.Request, op string, dst any) error {
	resp, err := client.Do(req)
	if err != nil {
		return &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var cause error
		if msg := strings.TrimSpace(string(snippet)); msg != "" {
			cause = fmt.Errorf("%s", msg)
		}
		return &domain.TransportError{Op: op, StatusCode: resp.StatusCode, Err: cause}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &domain.TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
