package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/modelwatch/bedrock-catalog/internal/bedrock"
	"github.com/modelwatch/bedrock-catalog/internal/catalog"
	"github.com/modelwatch/bedrock-catalog/internal/store"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rebuild the model and profile catalog from all regions",
	Long: `Rebuild the full catalog from scratch.

Discovers every region supporting Bedrock, fetches foundation models and
inference profiles from each, deduplicates models by modelId with per-region
availability, and writes models.json and profiles.json to the output
directory. A fetch failure on a confirmed-supported region aborts the run
without writing anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := zap.L().With(zap.String("command", "refresh"))

		profile, _ := cmd.Flags().GetString("profile")
		outputDir, _ := cmd.Flags().GetString("output-dir")
		regionsFile, _ := cmd.Flags().GetString("regions-file")
		concurrency, _ := cmd.Flags().GetInt("concurrency")

		if profile == "" {
			profile = cfg.AWS.Profile
		}
		if outputDir == "" {
			outputDir = cfg.Output.Dir
		}
		if concurrency == 0 {
			concurrency = cfg.AWS.Concurrency
		}

		api, err := bedrock.NewClient(ctx, bedrock.ClientOptions{
			Profile:    profile,
			HomeRegion: cfg.AWS.HomeRegion,
		})
		if err != nil {
			return err
		}

		out, err := store.NewJSONStore(outputDir)
		if err != nil {
			return err
		}

		runLog, err := store.OpenRunLog(ctx, cfg.RunLog.Path)
		if err != nil {
			return err
		}
		defer runLog.Close()

		runID, err := runLog.Start(ctx)
		if err != nil {
			return err
		}

		log.Info("starting refresh",
			zap.String("run_id", runID),
			zap.String("profile", profile),
			zap.String("output_dir", outputDir),
			zap.Int("concurrency", concurrency),
		)

		snap, err := runRefresh(ctx, api, regionsFile, concurrency, out)
		if err != nil {
			if ferr := runLog.Fail(ctx, runID, err.Error()); ferr != nil {
				log.Warn("failed to record run failure", zap.Error(ferr))
			}
			return err
		}

		if err := runLog.Complete(ctx, runID, snap.Regions, len(snap.Models), len(snap.Profiles)); err != nil {
			log.Warn("failed to record run completion", zap.Error(err))
		}

		fmt.Printf("Refresh complete: %d models, %d profiles across %d regions\n",
			len(snap.Models), len(snap.Profiles), len(snap.Regions))
		return nil
	},
}

func init() {
	refreshCmd.Flags().String("profile", "", "AWS profile to use (default from config)")
	refreshCmd.Flags().String("output-dir", "", "output directory for JSON documents (default from config)")
	refreshCmd.Flags().String("regions-file", "", "YAML file listing candidate regions, bypassing region discovery")
	refreshCmd.Flags().Int("concurrency", 0, "parallel region probes/fetches (default from config)")
	rootCmd.AddCommand(refreshCmd)
}

// runRefresh executes the pipeline and persists the snapshot. Nothing is
// written unless every fetch succeeded.
func runRefresh(ctx context.Context, api bedrock.API, regionsFile string, concurrency int, out *store.JSONStore) (*catalog.Snapshot, error) {
	candidates, err := candidateRegions(ctx, api, regionsFile)
	if err != nil {
		return nil, err
	}

	snap, err := catalog.NewRefresher(api, concurrency).Run(ctx, candidates)
	if err != nil {
		return nil, err
	}

	if err := out.WriteSnapshot(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// candidateRegions returns the regions to probe, either from a pinned YAML
// file or from region discovery.
func candidateRegions(ctx context.Context, api bedrock.API, regionsFile string) ([]string, error) {
	if regionsFile == "" {
		return api.ListRegions(ctx)
	}

	raw, err := os.ReadFile(regionsFile)
	if err != nil {
		return nil, eris.Wrapf(err, "refresh: read regions file %s", regionsFile)
	}
	var regions []string
	if err := yaml.Unmarshal(raw, &regions); err != nil {
		return nil, eris.Wrapf(err, "refresh: parse regions file %s", regionsFile)
	}
	if len(regions) == 0 {
		return nil, eris.Errorf("refresh: regions file %s lists no regions", regionsFile)
	}
	return regions, nil
}
