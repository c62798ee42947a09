// ComicK API implementation of [Destination]
//
// Search is public; library reads and writes require a bearer token lifted
// from a logged-in browser session (see shared.ParseCurlCommand).
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/mdx/internal/models"
	"github.com/desertthunder/mdx/internal/shared"
)

const (
	defaultComickBaseURL = "https://api.comick.app"

	defaultSearchLimit = 5
)

// ComickComic represents a comic in ComicK responses.
type ComickComic struct {
	ID       int    `json:"id"`
	HID      string `json:"hid"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	MDTitles []struct {
		Title string `json:"title"`
	} `json:"md_titles"`
}

type comickSearchResponse struct {
	Data []ComickComic `json:"data"`
}

type comickLibraryResponse struct {
	Data []ComickComic `json:"data"`
}

// ComickService implements the Destination interface for the ComicK API.
type ComickService struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewComickService creates a new ComicK service instance.
func NewComickService(baseURL string, client *http.Client) *ComickService {
	if baseURL == "" {
		baseURL = defaultComickBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &ComickService{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// Name returns the service name.
func (c *ComickService) Name() string {
	return "ComicK"
}

// BaseURL returns the resolved API base URL.
func (c *ComickService) BaseURL() string {
	return c.baseURL
}

// Authenticate installs the bearer token used for library operations.
func (c *ComickService) Authenticate(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: missing ComicK token", shared.ErrMissingCredentials)
	}

	c.token = token
	return nil
}

func (c *ComickService) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	apiURL := c.baseURL + endpoint

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: status 401", shared.ErrNotAuthenticated)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("%w: comick API error (status %d): %s", shared.ErrAPIRequest, resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("%w: comick API error: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Search queries the catalog by title and returns up to limit candidates.
func (c *ComickService) Search(ctx context.Context, title string, limit int) ([]models.Candidate, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	endpoint := fmt.Sprintf("/search?q=%s&limit=%d", url.QueryEscape(title), limit)

	var response comickSearchResponse
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}

	candidates := make([]models.Candidate, 0, len(response.Data))
	for _, comic := range response.Data {
		candidates = append(candidates, comic.toCandidate())
	}

	return candidates, nil
}

// Library retrieves the authenticated user's current library.
func (c *ComickService) Library(ctx context.Context) ([]models.LibraryEntry, error) {
	if c.token == "" {
		return nil, fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	var response comickLibraryResponse
	if err := c.doRequest(ctx, http.MethodGet, "/user/library", nil, &response); err != nil {
		return nil, err
	}

	entries := make([]models.LibraryEntry, 0, len(response.Data))
	for _, comic := range response.Data {
		entries = append(entries, models.LibraryEntry{
			ID:    strconv.Itoa(comic.ID),
			Title: comic.Title,
		})
	}

	return entries, nil
}

// AddToLibrary adds a catalog entry to the user's library.
//
// The service treats its own "already in library" response as success; the
// outcome distinguishes the two so the summary can count them separately.
func (c *ComickService) AddToLibrary(ctx context.Context, targetID string) (models.AddOutcome, error) {
	if c.token == "" {
		return models.AddUnknown, fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	comicID, err := strconv.Atoi(targetID)
	if err != nil {
		return models.AddUnknown, fmt.Errorf("%w: non-numeric comic id %q", shared.ErrInvalidArgument, targetID)
	}

	body, err := json.Marshal(map[string]int{"comic": comicID})
	if err != nil {
		return models.AddUnknown, fmt.Errorf("failed to marshal add request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/user/library", bytes.NewReader(body))
	if err != nil {
		return models.AddUnknown, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.AddUnknown, fmt.Errorf("%w: %v", shared.ErrAddFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return models.AddUnknown, fmt.Errorf("%w: status 401", shared.ErrNotAuthenticated)
	case resp.StatusCode == http.StatusConflict:
		return models.AddAlreadyPresent, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Some deployments answer 200 with an "already in library" message
		// instead of 409.
		var addResp struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&addResp); err == nil &&
			strings.Contains(strings.ToLower(addResp.Message), "already") {
			return models.AddAlreadyPresent, nil
		}
		return models.AddNew, nil
	default:
		return models.AddUnknown, fmt.Errorf("%w: status %d", shared.ErrAddFailed, resp.StatusCode)
	}
}

// toCandidate converts a ComicK entity to the service-neutral model.
func (cc ComickComic) toCandidate() models.Candidate {
	candidate := models.Candidate{
		ID:    strconv.Itoa(cc.ID),
		Title: cc.Title,
		Slug:  cc.Slug,
	}

	for _, md := range cc.MDTitles {
		if md.Title != "" {
			candidate.AltTitles = append(candidate.AltTitles, md.Title)
		}
	}

	return candidate
}
