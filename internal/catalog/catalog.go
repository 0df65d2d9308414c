// Package catalog provides the sample campaigns behind "Load Demo" and the
// demo-data endpoint. Campaigns come from the built-in list, a YAML file or
// a YAML object in S3, and every entry must pass form validation.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"gopkg.in/yaml.v3"

	"github.com/ignite/campaign-insights/internal/config"
	"github.com/ignite/campaign-insights/internal/domain"
	"github.com/ignite/campaign-insights/internal/pkg/logger"
)

// ErrEmpty is returned when a catalog source holds no campaigns.
var ErrEmpty = errors.New("catalog has no campaigns")

// ObjectGetter is the part of the S3 client the catalog uses.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Catalog is an immutable, validated list of sample campaigns. The first
// campaign is the one "Load Demo" uses.
type Catalog struct {
	campaigns []domain.CampaignForm
}

// New validates campaigns and builds a catalog.
func New(campaigns []domain.CampaignForm) (*Catalog, error) {
	if len(campaigns) == 0 {
		return nil, ErrEmpty
	}
	out := make([]domain.CampaignForm, len(campaigns))
	for i, c := range campaigns {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("campaign %d (%q): %w", i, c.CampaignName, err)
		}
		c.Objectives = append([]string(nil), c.Objectives...)
		out[i] = c
	}
	return &Catalog{campaigns: out}, nil
}

// Builtin returns the stock sample campaigns.
func Builtin() *Catalog {
	c, err := New(builtinCampaigns)
	if err != nil {
		panic("catalog: invalid built-in campaigns: " + err.Error())
	}
	return c
}

// Campaigns returns a copy of every campaign, in order.
func (c *Catalog) Campaigns() []domain.CampaignForm {
	out := make([]domain.CampaignForm, len(c.campaigns))
	for i, f := range c.campaigns {
		f.Objectives = append([]string(nil), f.Objectives...)
		out[i] = f
	}
	return out
}

// Demo is the campaign used to prefill the form.
func (c *Catalog) Demo() domain.CampaignForm {
	d, _ := c.At(0)
	return d
}

// At returns the i-th campaign.
func (c *Catalog) At(i int) (domain.CampaignForm, bool) {
	if i < 0 || i >= len(c.campaigns) {
		return domain.CampaignForm{}, false
	}
	f := c.campaigns[i]
	f.Objectives = append([]string(nil), f.Objectives...)
	return f, true
}

// Len is the number of campaigns.
func (c *Catalog) Len() int { return len(c.campaigns) }

// Payload is the demo-data response body.
func (c *Catalog) Payload() domain.SampleCampaigns {
	return domain.SampleCampaigns{SampleCampaigns: c.Campaigns()}
}

// Parse reads a YAML document of the form
//
//	sample_campaigns:
//	  - campaign_name: ...
func Parse(data []byte) (*Catalog, error) {
	var doc domain.SampleCampaigns
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return New(doc.SampleCampaigns)
}

// LoadFile reads a YAML catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// LoadS3 reads a YAML catalog from an S3 object.
func LoadS3(ctx context.Context, client ObjectGetter, bucket, key string) (*Catalog, error) {
	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("S3 GetObject %s/%s: %w", bucket, key, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading S3 object body: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog s3://%s/%s: %w", bucket, key, err)
	}
	return c, nil
}

// Lister fetches the sample campaigns from an analysis service.
// *source.Remote implements it.
type Lister interface {
	SampleCampaigns(ctx context.Context) ([]domain.CampaignForm, error)
}

// LoadRemote builds the catalog from the service's demo data.
func LoadRemote(ctx context.Context, l Lister) (*Catalog, error) {
	campaigns, err := l.SampleCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching remote catalog: %w", err)
	}
	c, err := New(campaigns)
	if err != nil {
		return nil, fmt.Errorf("remote catalog: %w", err)
	}
	return c, nil
}

// LoadOption supplies what a catalog source needs beyond its config.
type LoadOption func(*loadDeps)

type loadDeps struct {
	lister Lister
}

// WithLister provides the service client for the remote source.
func WithLister(l Lister) LoadOption {
	return func(d *loadDeps) { d.lister = l }
}

// Load picks the catalog source named by cfg.Source.
func Load(ctx context.Context, cfg config.CatalogConfig, opts ...LoadOption) (*Catalog, error) {
	log := logger.Named("catalog")

	var deps loadDeps
	for _, opt := range opts {
		opt(&deps)
	}

	var (
		c   *Catalog
		err error
	)
	switch cfg.Source {
	case config.CatalogBuiltin, "":
		c = Builtin()
	case config.CatalogFile:
		c, err = LoadFile(cfg.Path)
	case config.CatalogS3:
		awsCfg, cerr := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if cerr != nil {
			return nil, fmt.Errorf("loading AWS config for catalog: %w", cerr)
		}
		c, err = LoadS3(ctx, s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Key)
	case config.CatalogRemote:
		if deps.lister == nil {
			return nil, fmt.Errorf("catalog source %q needs the remote analysis source", cfg.Source)
		}
		c, err = LoadRemote(ctx, deps.lister)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
	if err != nil {
		return nil, err
	}

	log.Info("catalog loaded", "source", cfg.Source, "campaigns", c.Len())
	return c, nil
}
