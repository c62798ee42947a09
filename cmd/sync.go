package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/mdx/internal/formatter"
	"github.com/desertthunder/mdx/internal/repositories"
	"github.com/desertthunder/mdx/internal/shared"
	"github.com/desertthunder/mdx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// authenticateSource resolves MangaDex credentials from flags and config and
// establishes a session. A session token takes precedence over a password
// login.
func (r *Runner) authenticateSource(ctx context.Context, cmd *cli.Command) error {
	token := cmd.String("token")
	if token == "" {
		token = r.config.Credentials.MangaDex.SessionToken
	}

	if token != "" {
		r.source.Adopt(token)
		r.logger.Debug("adopted session token")
		return nil
	}

	username := cmd.String("username")
	if username == "" {
		username = r.config.Credentials.MangaDex.Username
	}
	password := cmd.String("password")
	if password == "" {
		password = r.config.Credentials.MangaDex.Password
	}

	if username == "" || password == "" {
		return fmt.Errorf("%w: provide --username/--password, --token, or set credentials in config.toml", shared.ErrMissingCredentials)
	}

	r.logger.Info("logging in to MangaDex", "username", username)
	if _, err := r.source.Login(ctx, username, password); err != nil {
		return err
	}

	return nil
}

// pageLimiter is satisfied by sources with a configurable pagination size.
type pageLimiter interface {
	SetPageLimit(limit int)
}

// applyPageLimit forwards --limit to the source's follows pagination.
func (r *Runner) applyPageLimit(cmd *cli.Command) {
	limit := int(cmd.Int("limit"))
	if limit <= 0 {
		return
	}
	if s, ok := r.source.(pageLimiter); ok {
		s.SetPageLimit(limit)
	}
}

// authenticateDest installs the ComicK bearer token from the flag or config.
func (r *Runner) authenticateDest(ctx context.Context, cmd *cli.Command) error {
	token := cmd.String("comick-token")
	if token == "" {
		token = r.config.Credentials.Comick.Token
	}

	if token == "" {
		return fmt.Errorf("%w: provide --comick-token or set credentials.comick.token in config.toml", shared.ErrMissingCredentials)
	}

	return r.dest.Authenticate(ctx, token)
}

// SyncRun runs a full MangaDex → ComicK library sync.
func (r *Runner) SyncRun(ctx context.Context, cmd *cli.Command) error {
	dryRun := cmd.Bool("dry-run")

	if err := r.authenticateSource(ctx, cmd); err != nil {
		return err
	}
	if err := r.authenticateDest(ctx, cmd); err != nil {
		return err
	}
	r.applyPageLimit(cmd)

	var cache tasks.MatchCache
	if !cmd.Bool("no-cache") {
		repo, closeDB, err := r.matchCache()
		if err != nil {
			r.logger.Warn("match cache unavailable, continuing without it", "error", err)
		} else {
			defer closeDB()
			cache = repositories.NewMatchCacheAdapter(repo)
		}
	}

	engine := tasks.NewLibraryEngine(r.source, r.dest, cache)

	searchLimit := int(cmd.Int("search-limit"))
	if searchLimit <= 0 {
		searchLimit = r.config.Sync.SearchLimit
	}

	r.logger.Info("starting sync", "dry_run", dryRun)
	if dryRun {
		r.writePlain("Starting library sync (dry run)...\n\n")
	} else {
		r.writePlain("Starting library sync...\n\n")
	}

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchSource, tasks.FetchLibrary:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.MatchTitles:
				if update.Step == 0 {
					r.writePlain("\n🔍 %s\n", update.Message)
				} else {
					r.writePlain("   %s\n", update.Message)
				}
			case tasks.BuildPlan:
				r.writePlain("\n📋 %s\n", update.Message)
			case tasks.ExecutePlan:
				r.writePlain("📝 %s\n", update.Message)
			}
		}
	}()

	result, err := engine.Run(ctx, progressCh, tasks.RunOpts{
		DryRun:      dryRun,
		SearchLimit: searchLimit,
	})
	close(progressCh)
	<-done

	if err != nil {
		if result != nil {
			r.writePlain("\n")
			r.writePlainHeader("Sync Aborted")
			formatter.RenderSummary(r.output, &result.Summary)
		}
		return err
	}

	if cmd.Bool("plan") {
		r.writePlain("\n")
		formatter.RenderPlan(r.output, &result.Plan)
	}

	r.writePlain("\n")
	if dryRun {
		r.writePlainHeader("Dry Run Complete (nothing was added)")
	} else {
		r.writePlainHeader("Sync Complete!")
	}
	formatter.RenderSummary(r.output, &result.Summary)

	if len(result.Summary.UnresolvedTitles) > 0 {
		r.writePlain("\nUnresolved titles:\n")
		for i, title := range result.Summary.UnresolvedTitles {
			r.writePlain("  %d. %s\n", i+1, title)
		}
	}

	if len(result.Summary.FailedTitles) > 0 {
		r.writePlain("\nFailed to add:\n")
		for i, title := range result.Summary.FailedTitles {
			r.writePlain("  %d. %s\n", i+1, title)
		}
	}

	if csvPath := cmd.String("csv"); csvPath != "" {
		written, err := formatter.WriteUnresolvedCSV(&result.Summary, csvPath)
		if err != nil {
			return err
		}
		r.writePlain("\nUnresolved/failed titles written to %s\n", written)
	}

	return nil
}
