package trendfeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/campaign-insights/internal/analysis"
	"github.com/ignite/campaign-insights/internal/config"
	"github.com/ignite/campaign-insights/internal/domain"
)

const rss = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Marketing Pulse</title>
    <link>https://example.com</link>
    <description>Daily marketing trends</description>
    <item><title>Short-form video   budgets climb</title><link>https://example.com/1</link></item>
    <item><title></title><link>https://example.com/2</link></item>
    <item><title>Retail media networks expand</title><link>https://example.com/3</link></item>
    <item><title>Creator marketplaces consolidate</title><link>https://example.com/4</link></item>
  </channel>
</rss>`

func feedServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rss))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewWithoutURL(t *testing.T) {
	assert.Nil(t, New(config.TrendsConfig{}))
}

func TestHeadlines(t *testing.T) {
	srv := feedServer(t)
	f := New(config.TrendsConfig{FeedURL: srv.URL, MaxItems: 2, TimeoutSeconds: 5})

	got, err := f.Headlines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Short-form video budgets climb", "Retail media networks expand"}, got)
}

func TestHeadlinesUnlimited(t *testing.T) {
	srv := feedServer(t)
	f := New(config.TrendsConfig{FeedURL: srv.URL})

	got, err := f.Headlines(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestHeadlinesFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(config.TrendsConfig{FeedURL: srv.URL, TimeoutSeconds: 1}).Headlines(context.Background())
	assert.Error(t, err)
}

func TestHeadlinesFeedTheTrendChain(t *testing.T) {
	srv := feedServer(t)
	o := analysis.New(
		analysis.WithLatencies(analysis.Latencies{}),
		analysis.WithTrendSignals(New(config.TrendsConfig{FeedURL: srv.URL, MaxItems: 1, TimeoutSeconds: 5})),
	)

	res, err := o.Analyze(context.Background(), domain.CampaignForm{
		CampaignName:   "Spring Refresh",
		Platform:       "TikTok Ads",
		Budget:         42000,
		TargetAudience: "Gen Z shoppers",
		Industry:       "Retail",
		Objectives:     []string{"Sales"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Trending now: Short-form video budgets climb", res.TrendAnalysis.EmergingTrends[0])
	assert.Contains(t, res.KeyRecommendations[3], "Trending now: Short-form video budgets climb")
}

func TestHeadlinesHonorTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	f := New(config.TrendsConfig{FeedURL: srv.URL})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := f.Headlines(ctx)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}
