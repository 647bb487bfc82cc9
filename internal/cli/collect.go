package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/hsolkim/seaboard/internal/cache"
	"github.com/hsolkim/seaboard/internal/llm"
	"github.com/hsolkim/seaboard/internal/model"
	"github.com/hsolkim/seaboard/internal/pipeline"
	"github.com/hsolkim/seaboard/internal/render"
)

var (
	outJSON        string
	outMD          string
	collectTimeout time.Duration
	noCache        bool
	refresh        bool
	sourceWorkers  int
	llmEnabled     bool
	llmModel       string
)

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run one collection cycle and render the board",
	Long: `Collect fetches every configured Korean query feed and U.S. source
page, builds normalized article records, removes exact and near
duplicates, ranks them and writes the board.

Results are cached for the configured TTL; within that window collect
serves the cached snapshot instead of re-fetching. Use --no-cache to
bypass the cache for one run, or --refresh to discard the cached snapshot
and re-collect.

Example:
  seaboard collect
  seaboard collect --md board.md --refresh
  seaboard collect --llm --md board.md`,
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)

	collectCmd.Flags().StringVar(&outJSON, "json", "board.json", "output JSON path")
	collectCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	collectCmd.Flags().DurationVar(&collectTimeout, "timeout", 3*time.Minute, "overall collection timeout")
	collectCmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the snapshot cache for this run")
	collectCmd.Flags().BoolVar(&refresh, "refresh", false, "discard the cached snapshot, then collect")
	collectCmd.Flags().IntVar(&sourceWorkers, "workers", 0, "concurrent source fetches (0 = config value)")
	collectCmd.Flags().BoolVar(&llmEnabled, "llm", false, "generate an LLM briefing of the top selection")
	collectCmd.Flags().StringVar(&llmModel, "llm-model", "", "briefing model name (default from config)")
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if sourceWorkers > 0 {
		cfg.Concurrency.SourceWorkers = sourceWorkers
	}
	if llmEnabled {
		cfg.LLM.Enabled = true
		if llmModel != "" {
			cfg.LLM.Model = llmModel
		}
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	logger := newLogger()
	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	snapshots := snapshotCache(cfg)
	key := cache.SourceSetKey(cfg)
	if refresh && snapshots != nil {
		if err := snapshots.Delete(key); err != nil {
			logger.Warn().Err(err).Msg("failed to discard cached snapshot")
		}
	}

	var board *model.Board
	if !noCache && !refresh && snapshots != nil {
		if data, found := snapshots.Get(key); found {
			var cached model.Board
			if err := json.Unmarshal(data, &cached); err == nil {
				board = &cached
				logger.Debug().Time("collected_at", board.CollectedAt).Msg("serving cached snapshot")
			}
		}
	}

	if board == nil {
		collector := pipeline.NewCollector(cfg, logger)
		board, err = collector.Collect(ctx)
		if err != nil {
			return fmt.Errorf("collect: %w", err)
		}

		if snapshots != nil {
			if data, err := json.Marshal(board); err == nil {
				if err := snapshots.Set(key, data, cfg.Cache.TTL); err != nil {
					logger.Warn().Err(err).Msg("failed to cache snapshot")
				}
			}
		}
	}

	if cfg.LLM.Enabled && board.Briefing == nil {
		provider, err := llm.NewOpenAIProvider(cfg.LLM)
		if err != nil {
			logger.Warn().Err(err).Msg("briefing disabled")
		} else if briefing, err := llm.Generate(ctx, provider, cfg.LLM, board); err != nil {
			logger.Warn().Err(err).Msg("briefing generation failed")
		} else {
			board.Briefing = briefing
		}
	}

	renderer := render.NewRenderer()
	if outJSON != "" {
		if err := renderer.RenderJSON(board, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(board, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}

	renderer.RenderSummary(board, os.Stderr)
	return nil
}

// snapshotCache builds the layered snapshot cache, or nil when caching is
// disabled in the config.
func snapshotCache(cfg *model.Config) cache.Cache {
	if !cfg.Cache.Enabled {
		return nil
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
		}
		dir = filepath.Join(home, ".seaboard", "cache")
	}
	return cache.NewLayeredCache(cfg.Cache.TTL, dir, cfg.Cache.TTL)
}
