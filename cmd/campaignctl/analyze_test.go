package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/campaign-insights/internal/catalog"
	"github.com/ignite/campaign-insights/internal/config"
	"github.com/ignite/campaign-insights/internal/domain"
	"github.com/ignite/campaign-insights/internal/source"
	"github.com/ignite/campaign-insights/internal/view"
)

func fastConfig(src string) *config.Config {
	cfg := config.Default()
	cfg.Analysis.Source = src
	cfg.Analysis.LatencyScale = 0
	cfg.View.StageIntervalMS = 1
	cfg.View.MinDisplayMS = 20
	cfg.View.NotificationMS = 1000
	return cfg
}

func TestAnalyzeDemoPrintsEveryTab(t *testing.T) {
	var out bytes.Buffer
	var progress bytes.Buffer
	err := runAnalyze(context.Background(), fastConfig(config.SourceStatic), analyzeOptions{demo: 0, progress: &progress}, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Campaign: Summer Product Launch 2025")
	assert.Regexp(t, `Overall Score:\s+87`, text)
	assert.Contains(t, text, "Key Recommendations")
	assert.Contains(t, text, "== Audience Intelligence ==")
	assert.Contains(t, text, "== Trend Analysis ==")
	assert.Contains(t, text, "78%")
	assert.Contains(t, progress.String(), "Analyzing")
}

func TestAnalyzeFromFlagsAsJSON(t *testing.T) {
	var out bytes.Buffer
	opts := analyzeOptions{
		demo:    -1,
		jsonOut: true,
		form: domain.RawForm{
			CampaignName:   "Spring Refresh",
			Platform:       "TikTok Ads",
			Budget:         "42000",
			TargetAudience: "Gen Z shoppers",
			Industry:       "Retail",
			Objectives:     []string{"Sales"},
		},
	}
	require.NoError(t, runAnalyze(context.Background(), fastConfig(config.SourceLocal), opts, &out))

	var doc struct {
		CampaignName string        `json:"campaign_name"`
		Regions      []view.Region `json:"regions"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "Spring Refresh", doc.CampaignName)
	assert.Len(t, doc.Regions, len(view.RegionIDs))
}

func TestAnalyzeRejectsIncompleteForm(t *testing.T) {
	err := runAnalyze(context.Background(), fastConfig(config.SourceStatic), analyzeOptions{
		demo: -1,
		form: domain.RawForm{CampaignName: "Only a name"},
	}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Please fill in all required fields")
	assert.Contains(t, err.Error(), domain.FieldPlatform)
}

func TestAnalyzeUnknownDemoIndex(t *testing.T) {
	err := runAnalyze(context.Background(), fastConfig(config.SourceStatic), analyzeOptions{demo: 9}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "no sample campaign at index 9")
}

func TestAnalyzeStopsWithContext(t *testing.T) {
	cfg := fastConfig(config.SourceStatic)
	cfg.View.MinDisplayMS = 60_000
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := runAnalyze(ctx, cfg, analyzeOptions{demo: 1}, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPrintCatalog(t *testing.T) {
	var out bytes.Buffer
	printCatalog(&out, catalog.Builtin())

	assert.Contains(t, out.String(), "[0] Summer Product Launch 2025")
	assert.Contains(t, out.String(), "[2] B2B SaaS Demo Campaign")
	assert.Contains(t, out.String(), "objectives: Brand Awareness, Lead Generation")
}

// analysisService stands in for a remote analysis deployment.
type analysisService struct {
	mu        sync.Mutex
	submitted []domain.CampaignForm
}

func (a *analysisService) start(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/demo-data":
			json.NewEncoder(w).Encode(domain.SampleCampaigns{SampleCampaigns: []domain.CampaignForm{{
				CampaignName:   "Upstream Spring Launch",
				Platform:       "Pinterest Ads",
				Budget:         64000,
				TargetAudience: "Home decor enthusiasts",
				Industry:       "Retail",
				Objectives:     []string{"Sales"},
			}}})
		case "/api/analyze-campaign":
			var f domain.CampaignForm
			if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			a.mu.Lock()
			a.submitted = append(a.submitted, f)
			a.mu.Unlock()
			res := source.DemoResult()
			res.CampaignName = f.CampaignName
			json.NewEncoder(w).Encode(res)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func remoteConfig(baseURL string) *config.Config {
	cfg := fastConfig(config.SourceRemote)
	cfg.Analysis.BaseURL = baseURL
	cfg.Catalog.Source = config.CatalogRemote
	return cfg
}

func TestAnalyzeDemoFromRemoteService(t *testing.T) {
	svc := &analysisService{}
	srv := svc.start(t)

	var out bytes.Buffer
	require.NoError(t, runAnalyze(context.Background(), remoteConfig(srv.URL), analyzeOptions{demo: 0}, &out))

	assert.Contains(t, out.String(), "Campaign: Upstream Spring Launch")
	svc.mu.Lock()
	defer svc.mu.Unlock()
	require.Len(t, svc.submitted, 1)
	assert.Equal(t, "Pinterest Ads", svc.submitted[0].Platform)
}

func TestDemoListsRemoteCatalog(t *testing.T) {
	srv := (&analysisService{}).start(t)
	cfg := remoteConfig(srv.URL)

	src, err := newSource(cfg)
	require.NoError(t, err)
	cat, err := loadCatalog(context.Background(), cfg, src)
	require.NoError(t, err)

	var out bytes.Buffer
	printCatalog(&out, cat)
	assert.Contains(t, out.String(), "[0] Upstream Spring Launch")
}

func TestStageBarFollowsControllerStages(t *testing.T) {
	cfg := fastConfig(config.SourceStatic)
	cfg.View.StageCount = 9

	var progress bytes.Buffer
	require.NoError(t, runAnalyze(context.Background(), cfg, analyzeOptions{demo: 0, progress: &progress}, &bytes.Buffer{}))

	assert.Contains(t, progress.String(), "4/4")
	assert.NotContains(t, progress.String(), "/9")
}
