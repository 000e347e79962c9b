package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/modelwatch/bedrock-catalog/internal/betascan"
	"github.com/modelwatch/bedrock-catalog/internal/fetcher"
	"github.com/modelwatch/bedrock-catalog/internal/store"
)

var betaCmd = &cobra.Command{
	Use:   "beta",
	Short: "Find catalog models missing from the public documentation",
	Long: `Compare the model catalog against the documentation snapshot.

Models present in models.json but absent from the documentation text are
classified as beta (silently launched). LEGACY models are ignored. Writes
beta_models.json and regenerates the README table between its markers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := zap.L().With(zap.String("command", "beta"))

		modelsPath, _ := cmd.Flags().GetString("models")
		docsPath, _ := cmd.Flags().GetString("docs")
		readmePath, _ := cmd.Flags().GetString("readme")
		fetchDocs, _ := cmd.Flags().GetBool("fetch-docs")

		if modelsPath == "" {
			modelsPath = filepath.Join(cfg.Output.Dir, store.ModelsFile)
		}
		if docsPath == "" {
			docsPath = cfg.Docs.SnapshotPath
		}
		if readmePath == "" {
			readmePath = cfg.Output.ReadmePath
		}

		models, err := store.ReadModels(modelsPath)
		if err != nil {
			return eris.Wrap(err, "beta: load catalog")
		}
		log.Info("loaded catalog", zap.Int("models", len(models)))

		doc, err := loadDocs(cmd, docsPath, fetchDocs)
		if err != nil {
			return err
		}
		log.Info("loaded documentation snapshot", zap.Int("chars", len(doc)))

		result := betascan.Classify(models, doc)
		log.Info("classification complete",
			zap.Int("found", len(result.Found)),
			zap.Int("beta", len(result.Beta)),
		)

		out, err := store.NewJSONStore(filepath.Dir(modelsPath))
		if err != nil {
			return err
		}
		if err := out.WriteBeta(result.Beta); err != nil {
			return err
		}

		printBetaSummary(os.Stdout, result)

		// A missing README or one without markers is reportable but never
		// fatal; the beta document is already written by now.
		if err := betascan.UpdateReadme(readmePath, result.Beta); err != nil {
			switch {
			case eris.Is(err, betascan.ErrReadmeMissing):
				log.Warn("readme not found, skipping table update",
					zap.String("path", readmePath),
				)
				return nil
			case eris.Is(err, betascan.ErrMarkersMissing):
				log.Warn("readme markers not found, skipping table update",
					zap.String("path", readmePath),
				)
				return nil
			}
			return err
		}
		log.Info("readme table updated",
			zap.String("path", readmePath),
			zap.Int("rows", len(result.Beta)),
		)

		return nil
	},
}

func init() {
	betaCmd.Flags().String("models", "", "path to models.json (default <output dir>/models.json)")
	betaCmd.Flags().String("docs", "", "path to the documentation snapshot (default from config)")
	betaCmd.Flags().String("readme", "", "path to the README to update (default from config)")
	betaCmd.Flags().Bool("fetch-docs", false, "download the documentation snapshot before classifying")
	rootCmd.AddCommand(betaCmd)
}

// loadDocs returns the decoded documentation text, downloading the snapshot
// first when requested.
func loadDocs(cmd *cobra.Command, docsPath string, fetchDocs bool) (string, error) {
	if !fetchDocs {
		return betascan.LoadSnapshot(docsPath)
	}

	if err := os.MkdirAll(filepath.Dir(docsPath), 0o755); err != nil {
		return "", eris.Wrapf(err, "beta: create snapshot dir for %s", docsPath)
	}

	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent: cfg.Docs.UserAgent,
	})
	return betascan.FetchSnapshot(cmd.Context(), f, cfg.Docs.URL, docsPath)
}

// printBetaSummary writes the human-readable result, beta models grouped by
// provider.
func printBetaSummary(out io.Writer, result betascan.Result) {
	fmt.Fprintf(out, "Models found in documentation: %d\n", len(result.Found))
	fmt.Fprintf(out, "Models NOT in documentation (beta): %d\n", len(result.Beta))

	if len(result.Beta) == 0 {
		return
	}

	providers, byProvider := betascan.GroupByProvider(result.Beta)
	for _, provider := range providers {
		fmt.Fprintf(out, "\n%s:\n", provider)
		for _, m := range byProvider[provider] {
			fmt.Fprintf(out, "  - %s (%s)\n", m.Name, m.ID)
		}
	}
}
