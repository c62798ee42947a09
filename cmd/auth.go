package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/mdx/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin logs in to MangaDex and prints the session token for reuse.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	if username == "" {
		username = r.config.Credentials.MangaDex.Username
	}
	password := cmd.String("password")
	if password == "" {
		password = r.config.Credentials.MangaDex.Password
	}

	if username == "" || password == "" {
		return fmt.Errorf("%w: provide --username/--password or set credentials in config.toml", shared.ErrMissingCredentials)
	}

	r.logger.Info("logging in to MangaDex", "username", username)

	token, err := r.source.Login(ctx, username, password)
	if err != nil {
		return err
	}

	r.writePlain("✓ Login successful\n")
	r.writePlain("Session token: %s\n", token.AccessToken)
	if !token.Expiry.IsZero() {
		r.writePlain("Expires: %s\n", token.Expiry.Format("15:04:05"))
	}
	r.writePlainln("Save it with: credentials.mangadex.session_token in config.toml")

	return nil
}

// AuthStatus checks whether the current session token is still valid.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	token := cmd.String("token")
	if token == "" {
		token = r.config.Credentials.MangaDex.SessionToken
	}
	if token != "" {
		r.source.Adopt(token)
	}

	r.logger.Info("checking auth status")

	valid, err := r.source.CheckAuth(ctx)
	if err != nil {
		return err
	}

	if valid {
		return r.writePlain("Authentication: ✓ Authenticated\n")
	}
	return r.writePlain("Authentication: ✗ Not authenticated\n")
}
