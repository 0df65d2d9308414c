// Package trendfeed pulls live headlines from an RSS or Atom feed for the
// trend analysis chain.
package trendfeed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/ignite/campaign-insights/internal/config"
)

// Feed fetches headlines from one URL. It is safe for concurrent use.
type Feed struct {
	url      string
	maxItems int
	timeout  time.Duration
	parser   *gofeed.Parser
}

// New creates a Feed from configuration. It returns nil when no feed URL
// is configured.
func New(cfg config.TrendsConfig) *Feed {
	if cfg.FeedURL == "" {
		return nil
	}
	return &Feed{
		url:      cfg.FeedURL,
		maxItems: cfg.MaxItems,
		timeout:  cfg.Timeout(),
		parser:   gofeed.NewParser(),
	}
}

// Headlines returns up to maxItems non-empty item titles in feed order.
func (f *Feed) Headlines(ctx context.Context) ([]string, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	feed, err := f.parser.ParseURLWithContext(f.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching trend feed %s: %w", f.url, err)
	}

	var out []string
	for _, item := range feed.Items {
		if f.maxItems > 0 && len(out) >= f.maxItems {
			break
		}
		title := strings.Join(strings.Fields(item.Title), " ")
		if title == "" {
			continue
		}
		out = append(out, title)
	}
	return out, nil
}
