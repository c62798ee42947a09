// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"golang.org/x/oauth2"

	"github.com/desertthunder/mdx/internal/models"
)

// MockSource is a configurable test double for [services.Source].
// Unset funcs fall back to harmless defaults.
type MockSource struct {
	LoginFunc         func(ctx context.Context, username, password string) (*oauth2.Token, error)
	CheckAuthFunc     func(ctx context.Context) (bool, error)
	FollowedMangaFunc func(ctx context.Context) ([]models.Manga, error)
	MangaFunc         func(ctx context.Context, id string) (*models.Manga, error)
	Adopted           string
}

func (m *MockSource) Login(ctx context.Context, username, password string) (*oauth2.Token, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return &oauth2.Token{AccessToken: "mock-session"}, nil
}

func (m *MockSource) Adopt(token string) {
	m.Adopted = token
}

func (m *MockSource) CheckAuth(ctx context.Context) (bool, error) {
	if m.CheckAuthFunc != nil {
		return m.CheckAuthFunc(ctx)
	}
	return true, nil
}

func (m *MockSource) FollowedManga(ctx context.Context) ([]models.Manga, error) {
	if m.FollowedMangaFunc != nil {
		return m.FollowedMangaFunc(ctx)
	}
	return []models.Manga{}, nil
}

func (m *MockSource) Manga(ctx context.Context, id string) (*models.Manga, error) {
	if m.MangaFunc != nil {
		return m.MangaFunc(ctx, id)
	}
	return &models.Manga{ID: id}, nil
}

func (m *MockSource) Name() string { return "mock-source" }

// MockDestination is a configurable test double for [services.Destination].
// AddCalls records every target ID passed to AddToLibrary.
type MockDestination struct {
	AuthenticateFunc func(ctx context.Context, token string) error
	SearchFunc       func(ctx context.Context, title string, limit int) ([]models.Candidate, error)
	LibraryFunc      func(ctx context.Context) ([]models.LibraryEntry, error)
	AddFunc          func(ctx context.Context, targetID string) (models.AddOutcome, error)
	AddCalls         []string
}

func (m *MockDestination) Authenticate(ctx context.Context, token string) error {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, token)
	}
	return nil
}

func (m *MockDestination) Search(ctx context.Context, title string, limit int) ([]models.Candidate, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, title, limit)
	}
	return []models.Candidate{}, nil
}

func (m *MockDestination) Library(ctx context.Context) ([]models.LibraryEntry, error) {
	if m.LibraryFunc != nil {
		return m.LibraryFunc(ctx)
	}
	return []models.LibraryEntry{}, nil
}

func (m *MockDestination) AddToLibrary(ctx context.Context, targetID string) (models.AddOutcome, error) {
	m.AddCalls = append(m.AddCalls, targetID)
	if m.AddFunc != nil {
		return m.AddFunc(ctx, targetID)
	}
	return models.AddNew, nil
}

func (m *MockDestination) Name() string { return "mock-destination" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
