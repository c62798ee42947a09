// MangaDex API implementation of [Source]
//
// Response types based on https://api.mangadex.org/docs/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/desertthunder/mdx/internal/models"
	"github.com/desertthunder/mdx/internal/shared"
	"golang.org/x/oauth2"
)

const (
	defaultMangaDexBaseURL = "https://api.mangadex.org"

	// MangaDex session tokens expire after fifteen minutes; refresh a little early.
	sessionTokenLifetime = 14 * time.Minute

	defaultPageLimit = 100
	maxPageLimit     = 100
)

// MangaDexTitle is a localized title map keyed by language code.
type MangaDexTitle map[string]string

// MangaDexManga represents a manga entity in MangaDex responses.
type MangaDexManga struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Attributes struct {
		Title       MangaDexTitle   `json:"title"`
		AltTitles   []MangaDexTitle `json:"altTitles"`
		Description MangaDexTitle   `json:"description"`
		Status      string          `json:"status"`
		Year        int             `json:"year"`
	} `json:"attributes"`
	Relationships []struct {
		ID         string `json:"id"`
		Type       string `json:"type"`
		Attributes struct {
			Name string `json:"name"`
		} `json:"attributes"`
	} `json:"relationships"`
}

// MangaDexPaginatedManga represents a paginated collection response.
type MangaDexPaginatedManga struct {
	Result string          `json:"result"`
	Data   []MangaDexManga `json:"data"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
	Total  int             `json:"total"`
}

type mangaDexLoginResponse struct {
	Result string `json:"result"`
	Token  struct {
		Session string `json:"session"`
		Refresh string `json:"refresh"`
	} `json:"token"`
}

type mangaDexCheckResponse struct {
	Result          string `json:"result"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// MangaDexService implements the Source interface for the MangaDex API.
//
// The session is held as an [oauth2.Token] and passed along on every request;
// there is no package-level token state.
type MangaDexService struct {
	baseURL    string
	httpClient *http.Client
	token      *oauth2.Token
	pageLimit  int
}

// NewMangaDexService creates a new MangaDex service instance.
func NewMangaDexService(baseURL string, client *http.Client) *MangaDexService {
	if baseURL == "" {
		baseURL = defaultMangaDexBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &MangaDexService{
		baseURL:    baseURL,
		httpClient: client,
		pageLimit:  defaultPageLimit,
	}
}

// Name returns the service name.
func (s *MangaDexService) Name() string {
	return "MangaDex"
}

// BaseURL returns the resolved API base URL.
func (s *MangaDexService) BaseURL() string {
	return s.baseURL
}

// SetPageLimit overrides the follows page size (clamped to the API maximum).
func (s *MangaDexService) SetPageLimit(limit int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	s.pageLimit = limit
}

// Session returns the current session token, or nil before login.
func (s *MangaDexService) Session() *oauth2.Token {
	return s.token
}

// Login exchanges account credentials for a session token.
//
// Credential rejections (4xx) and unreachable-service failures (network, 5xx)
// surface as distinct error kinds and are not retried.
func (s *MangaDexService) Login(ctx context.Context, username, password string) (*oauth2.Token, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", shared.ErrMissingCredentials)
	}

	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, fmt.Errorf("%w: login rejected with status %d", shared.ErrInvalidCredentials, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: login returned status %d", shared.ErrServiceUnavailable, resp.StatusCode)
	}

	var loginResp mangaDexLoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode login response: %v", shared.ErrAuthFailed, err)
	}

	if loginResp.Token.Session == "" {
		return nil, fmt.Errorf("%w: login response carried no session token", shared.ErrAuthFailed)
	}

	s.token = &oauth2.Token{
		AccessToken:  loginResp.Token.Session,
		RefreshToken: loginResp.Token.Refresh,
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(sessionTokenLifetime),
	}

	return s.token, nil
}

// Adopt installs an existing session token, skipping the login call.
func (s *MangaDexService) Adopt(token string) {
	s.token = &oauth2.Token{AccessToken: token, TokenType: "Bearer"}
}

// Refresh exchanges the refresh token for a new session token.
func (s *MangaDexService) Refresh(ctx context.Context) error {
	if s.token == nil || s.token.RefreshToken == "" {
		return shared.ErrNoRefreshToken
	}

	var refreshResp mangaDexLoginResponse
	err := s.doRequest(ctx, http.MethodPost, "/auth/refresh", map[string]string{"token": s.token.RefreshToken}, &refreshResp)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	if refreshResp.Token.Session == "" {
		return fmt.Errorf("%w: refresh response carried no session token", shared.ErrRefreshFailed)
	}

	s.token = &oauth2.Token{
		AccessToken:  refreshResp.Token.Session,
		RefreshToken: s.token.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(sessionTokenLifetime),
	}

	return nil
}

// CheckAuth verifies the current session token against /auth/check.
func (s *MangaDexService) CheckAuth(ctx context.Context) (bool, error) {
	if s.token == nil {
		return false, shared.ErrNotAuthenticated
	}

	var checkResp mangaDexCheckResponse
	if err := s.doRequest(ctx, http.MethodGet, "/auth/check", nil, &checkResp); err != nil {
		return false, err
	}

	return checkResp.IsAuthenticated, nil
}

// doRequest performs an authenticated HTTP request to the MangaDex API.
func (s *MangaDexService) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	apiURL := s.baseURL + endpoint

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if s.token != nil {
		req.Header.Set("Authorization", "Bearer "+s.token.AccessToken)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: status 401", shared.ErrNotAuthenticated)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: mangadex API error: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// FollowedManga pages through /user/follows/manga until the reported total is
// reached, deduplicating by manga ID so page overlap during pagination cannot
// produce repeats.
//
// Any page failure discards results fetched so far; a re-run restarts from
// offset zero. Entries with no usable title are dropped.
func (s *MangaDexService) FollowedManga(ctx context.Context) ([]models.Manga, error) {
	if s.token == nil {
		return nil, fmt.Errorf("%w: call Login or Adopt first", shared.ErrNotAuthenticated)
	}

	var manga []models.Manga
	seen := make(map[string]struct{})
	offset := 0

	for {
		endpoint := fmt.Sprintf("/user/follows/manga?limit=%d&offset=%d&includes[]=%s",
			s.pageLimit, offset, url.QueryEscape("author"))

		var page MangaDexPaginatedManga
		if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
			return nil, fmt.Errorf("%w: page at offset %d: %v", shared.ErrFetchFailed, offset, err)
		}

		for _, entry := range page.Data {
			if _, ok := seen[entry.ID]; ok {
				continue
			}
			seen[entry.ID] = struct{}{}

			m := entry.toManga()
			if m.Title == "" {
				continue
			}
			manga = append(manga, m)
		}

		offset += s.pageLimit
		if offset >= page.Total || len(page.Data) == 0 {
			break
		}
	}

	return manga, nil
}

// Manga retrieves a single manga with author details.
func (s *MangaDexService) Manga(ctx context.Context, id string) (*models.Manga, error) {
	var response struct {
		Result string        `json:"result"`
		Data   MangaDexManga `json:"data"`
	}

	endpoint := fmt.Sprintf("/manga/%s?includes[]=%s", url.PathEscape(id), url.QueryEscape("author"))
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}

	m := response.Data.toManga()
	return &m, nil
}

// toManga converts a MangaDex entity to the service-neutral model.
func (md MangaDexManga) toManga() models.Manga {
	m := models.Manga{
		ID:          md.ID,
		Title:       pickTitle(md.Attributes.Title),
		Description: pickTitle(md.Attributes.Description),
		Status:      md.Attributes.Status,
		Year:        md.Attributes.Year,
	}

	for _, alt := range md.Attributes.AltTitles {
		if title := pickTitle(alt); title != "" {
			m.AltTitles = append(m.AltTitles, title)
		}
	}

	for _, rel := range md.Relationships {
		if rel.Type == "author" && rel.Attributes.Name != "" {
			m.Authors = append(m.Authors, rel.Attributes.Name)
		}
	}

	return m
}

// pickTitle selects a display string from a localized map: English first,
// then romanized Japanese, then the lexicographically-smallest language code
// so the choice is deterministic.
func pickTitle(titles MangaDexTitle) string {
	if len(titles) == 0 {
		return ""
	}
	if title, ok := titles["en"]; ok && title != "" {
		return title
	}
	if title, ok := titles["ja-ro"]; ok && title != "" {
		return title
	}

	langs := make([]string, 0, len(titles))
	for lang := range titles {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	for _, lang := range langs {
		if titles[lang] != "" {
			return titles[lang]
		}
	}
	return ""
}
