package catalog

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/modelwatch/bedrock-catalog/internal/bedrock"
)

// ProbeRegions determines which candidate regions support the service by
// issuing one lightweight model listing call against each. A region is
// supported iff the call succeeds. Provider and transport errors mean the
// region does not offer the service and are skipped silently; anything else
// is logged and the region is skipped too. The result preserves candidate
// order regardless of concurrency.
func ProbeRegions(ctx context.Context, api bedrock.API, candidates []string, concurrency int) ([]string, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	log := zap.L()
	supported := make([]bool, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, region := range candidates {
		i, region := i, region
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			_, err := api.ListModels(gctx, region)
			switch {
			case err == nil:
				supported[i] = true
				log.Info("region supports bedrock", zap.String("region", region))
			case bedrock.IsServiceError(err):
				log.Debug("region does not support bedrock",
					zap.String("region", region),
					zap.Error(err),
				)
			default:
				log.Warn("unexpected error probing region, skipping",
					zap.String("region", region),
					zap.Error(err),
				)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []string
	for i, ok := range supported {
		if ok {
			out = append(out, candidates[i])
		}
	}

	log.Info("region probe complete",
		zap.Int("candidates", len(candidates)),
		zap.Int("supported", len(out)),
	)
	return out, nil
}
