package main

import (
	"context"

	"github.com/desertthunder/mdx/internal/formatter"
	"github.com/urfave/cli/v3"
)

// CacheMatches lists all cached title matches.
func (r *Runner) CacheMatches(ctx context.Context, cmd *cli.Command) error {
	repo, closeDB, err := r.matchCache()
	if err != nil {
		return err
	}
	defer closeDB()

	matches, err := repo.List()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(matches, true)
	}

	if len(matches) == 0 {
		return r.writePlain("No cached matches.\n")
	}

	formatter.RenderMatches(r.output, matches)
	return nil
}

// CacheClear deletes all cached title matches.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	repo, closeDB, err := r.matchCache()
	if err != nil {
		return err
	}
	defer closeDB()

	count, err := repo.Count()
	if err != nil {
		return err
	}

	if err := repo.Clear(); err != nil {
		return err
	}

	r.logger.Info("match cache cleared", "removed", count)
	return r.writePlain("✓ Cleared %d cached matches\n", count)
}
