package catalog

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/modelwatch/bedrock-catalog/internal/bedrock"
)

// Refresher runs the full discovery-fetch-merge pipeline.
type Refresher struct {
	api         bedrock.API
	concurrency int
}

// NewRefresher creates a Refresher. concurrency bounds parallel region
// probing and fetching; 1 means fully sequential.
func NewRefresher(api bedrock.API, concurrency int) *Refresher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Refresher{api: api, concurrency: concurrency}
}

// regionListing is one supported region's raw fetch result.
type regionListing struct {
	models   []bedrock.ModelSummary
	profiles []bedrock.ProfileSummary
}

// Run probes the candidate regions, fetches models and profiles from every
// supported one, and merges them into a Snapshot. A fetch failure on a
// confirmed-supported region is fatal: by then the region has proven it
// offers the service, so the error cannot mean "unsupported".
func (r *Refresher) Run(ctx context.Context, candidates []string) (*Snapshot, error) {
	log := zap.L()

	regions, err := ProbeRegions(ctx, r.api, candidates, r.concurrency)
	if err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		return nil, eris.New("refresh: no regions supporting bedrock found")
	}

	// Fetch in parallel but buffer results by region index so the merge
	// below consumes them in canonical region order.
	listings := make([]regionListing, len(regions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, region := range regions {
		i, region := i, region
		g.Go(func() error {
			models, err := r.api.ListModels(gctx, region)
			if err != nil {
				return eris.Wrapf(err, "refresh: fetch models from %s", region)
			}
			log.Info("fetched models",
				zap.String("region", region),
				zap.Int("count", len(models)),
			)

			profiles, err := r.api.ListProfiles(gctx, region)
			if err != nil {
				return eris.Wrapf(err, "refresh: fetch profiles from %s", region)
			}
			log.Info("fetched profiles",
				zap.String("region", region),
				zap.Int("count", len(profiles)),
			)

			listings[i] = regionListing{models: models, profiles: profiles}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Single-writer merge in region order keeps the output deterministic.
	merger := NewMerger()
	var profiles []ProfileRecord
	for i, region := range regions {
		merger.AddRegion(region, listings[i].models)
		profiles = append(profiles, FlattenProfiles(region, listings[i].profiles)...)
	}

	log.Info("catalog merged",
		zap.Int("regions", len(regions)),
		zap.Int("models", merger.Len()),
		zap.Int("profiles", len(profiles)),
	)

	return &Snapshot{
		Regions:  regions,
		Models:   merger.Records(),
		Profiles: profiles,
	}, nil
}
