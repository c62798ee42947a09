// package services defines interfaces for interacting with the source and destination HTTP APIs
//
// MangaDex (source), ComicK (destination)
package services

import (
	"context"

	"github.com/desertthunder/mdx/internal/models"
	"golang.org/x/oauth2"
)

// Source is the service the followed list is read from.
type Source interface {
	// Login exchanges account credentials for a session token.
	// Returns [shared.ErrInvalidCredentials] when the service rejects the
	// credentials and [shared.ErrServiceUnavailable] when it cannot be reached.
	Login(ctx context.Context, username, password string) (*oauth2.Token, error)

	// Adopt installs an existing session token, skipping the login call.
	Adopt(token string)

	// CheckAuth verifies the current session token with the service.
	CheckAuth(ctx context.Context) (bool, error)

	// FollowedManga pages through the authenticated user's followed list and
	// returns it deduplicated by source ID. Partial results are discarded on
	// any page failure.
	FollowedManga(ctx context.Context) ([]models.Manga, error)

	// Manga retrieves a single manga with author details by source ID.
	Manga(ctx context.Context, id string) (*models.Manga, error)

	// Name returns the name of the service (e.g., "MangaDex")
	Name() string
}

// Destination is the service the followed list is written into.
type Destination interface {
	// Authenticate installs the bearer token used for library operations.
	Authenticate(ctx context.Context, token string) error

	// Search queries the destination catalog by title and returns up to
	// limit candidates. Search is unauthenticated on ComicK.
	Search(ctx context.Context, title string, limit int) ([]models.Candidate, error)

	// Library retrieves the authenticated user's current library.
	Library(ctx context.Context) ([]models.LibraryEntry, error)

	// AddToLibrary adds a catalog entry to the user's library. An
	// "already in library" response is reported as [models.AddAlreadyPresent],
	// not an error.
	AddToLibrary(ctx context.Context, targetID string) (models.AddOutcome, error)

	// Name returns the name of the service (e.g., "ComicK")
	Name() string
}
