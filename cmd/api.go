package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/mdx/internal/services"
	"github.com/desertthunder/mdx/internal/shared"
	"github.com/urfave/cli/v3"
)

// baseURLer is satisfied by services that expose their resolved base URL.
type baseURLer interface {
	BaseURL() string
}

// resolveBaseURL maps a --service flag value to the configured base URL.
func (r *Runner) resolveBaseURL(serviceName string) (string, error) {
	switch serviceName {
	case "mangadex", "md":
		if s, ok := r.source.(baseURLer); ok {
			return s.BaseURL(), nil
		}
		return "", fmt.Errorf("%w: MangaDex service not initialized", shared.ErrServiceUnavailable)
	case "comick", "ck":
		if s, ok := r.dest.(baseURLer); ok {
			return s.BaseURL(), nil
		}
		return "", fmt.Errorf("%w: ComicK service not initialized", shared.ErrServiceUnavailable)
	default:
		return "", fmt.Errorf("%w: invalid service '%s' (must be 'mangadex' or 'comick')", shared.ErrInvalidArgument, serviceName)
	}
}

// APIGet performs a direct GET against one of the backing APIs and prints the
// raw response. Useful for debugging matches and auth problems.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path argument is required", shared.ErrMissingArgument)
	}

	baseURL, err := r.resolveBaseURL(cmd.String("service"))
	if err != nil {
		return err
	}

	api := services.NewAPIService(baseURL, cmd.String("token"), r.httpClient)

	r.logger.Info("direct API request", "base", baseURL, "path", path)

	resp, err := api.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if !resp.IsJSON {
		r.writePlain("Status: %d\n", resp.StatusCode)
		r.writePlain("%s\n", string(resp.Body))
		return nil
	}

	return r.writeJSON(resp.JSONData, cmd.Bool("pretty"))
}
