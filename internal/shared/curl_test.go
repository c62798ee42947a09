package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseCurlCommand(t *testing.T) {
	t.Run("parses single-quoted headers", func(t *testing.T) {
		curlCmd := `curl 'https://api.comick.app/user/library' -H 'accept: application/json' -H 'authorization: Bearer abc123'`

		headers, err := ParseCurlCommand([]byte(curlCmd))
		if err != nil {
			t.Fatalf("failed to parse curl command: %v", err)
		}

		if headers.Headers["accept"] != "application/json" {
			t.Errorf("expected accept header, got %v", headers.Headers)
		}
		if headers.Headers["authorization"] != "Bearer abc123" {
			t.Errorf("expected authorization header, got %v", headers.Headers)
		}
	})

	t.Run("parses double-quoted headers", func(t *testing.T) {
		curlCmd := `curl "https://api.comick.app/search" -H "user-agent: Mozilla/5.0" -H "referer: https://comick.app/"`

		headers, err := ParseCurlCommand([]byte(curlCmd))
		if err != nil {
			t.Fatalf("failed to parse curl command: %v", err)
		}

		if headers.Headers["user-agent"] != "Mozilla/5.0" {
			t.Errorf("expected user-agent header, got %v", headers.Headers)
		}
	})

	t.Run("extracts cookie header separately", func(t *testing.T) {
		curlCmd := `curl 'https://api.comick.app/' -H 'cookie: session=xyz' -H 'accept: */*'`

		headers, err := ParseCurlCommand([]byte(curlCmd))
		if err != nil {
			t.Fatalf("failed to parse curl command: %v", err)
		}

		if headers.Cookie != "session=xyz" {
			t.Errorf("expected cookie session=xyz, got %s", headers.Cookie)
		}
		if _, ok := headers.Headers["cookie"]; ok {
			t.Error("cookie should not appear in the header map")
		}
	})

	t.Run("extracts -b cookie flag", func(t *testing.T) {
		curlCmd := `curl 'https://api.comick.app/' -H 'accept: */*' -b 'session=flagged'`

		headers, err := ParseCurlCommand([]byte(curlCmd))
		if err != nil {
			t.Fatalf("failed to parse curl command: %v", err)
		}

		if headers.Cookie != "session=flagged" {
			t.Errorf("expected cookie from -b flag, got %s", headers.Cookie)
		}
	})

	t.Run("handles line continuations", func(t *testing.T) {
		curlCmd := "curl 'https://api.comick.app/' \\\n  -H 'accept: */*' \\\n  -H 'authorization: Bearer abc'"

		headers, err := ParseCurlCommand([]byte(curlCmd))
		if err != nil {
			t.Fatalf("failed to parse curl command: %v", err)
		}

		if len(headers.Headers) != 2 {
			t.Errorf("expected 2 headers, got %d", len(headers.Headers))
		}
	})

	t.Run("fails with no headers", func(t *testing.T) {
		if _, err := ParseCurlCommand([]byte("curl 'https://api.comick.app/'")); err == nil {
			t.Error("expected error for command without headers")
		}
	})
}

func TestParseCurlFile(t *testing.T) {
	t.Run("reads and parses a file", func(t *testing.T) {
		tmpDir := t.TempDir()
		curlFile := filepath.Join(tmpDir, "request.sh")

		content := `curl 'https://api.comick.app/user/library' -H 'authorization: Bearer file-token'`
		if err := os.WriteFile(curlFile, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write curl file: %v", err)
		}

		headers, err := ParseCurlFile(curlFile)
		if err != nil {
			t.Fatalf("failed to parse curl file: %v", err)
		}

		if headers.Headers["authorization"] != "Bearer file-token" {
			t.Errorf("expected authorization header, got %v", headers.Headers)
		}
	})

	t.Run("fails for missing file", func(t *testing.T) {
		if _, err := ParseCurlFile("/nonexistent/request.sh"); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestBearerToken(t *testing.T) {
	t.Run("strips the Bearer prefix", func(t *testing.T) {
		headers := &CurlHeaders{Headers: map[string]string{"authorization": "Bearer abc123"}}

		token, err := headers.BearerToken()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if token != "abc123" {
			t.Errorf("expected token abc123, got %s", token)
		}
	})

	t.Run("header key is case-insensitive", func(t *testing.T) {
		headers := &CurlHeaders{Headers: map[string]string{"Authorization": "bearer xyz"}}

		token, err := headers.BearerToken()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if token != "xyz" {
			t.Errorf("expected token xyz, got %s", token)
		}
	})

	t.Run("raw token without prefix passes through", func(t *testing.T) {
		headers := &CurlHeaders{Headers: map[string]string{"authorization": "raw-token"}}

		token, err := headers.BearerToken()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if token != "raw-token" {
			t.Errorf("expected token raw-token, got %s", token)
		}
	})

	t.Run("fails without an authorization header", func(t *testing.T) {
		headers := &CurlHeaders{Headers: map[string]string{"accept": "*/*"}}
		if _, err := headers.BearerToken(); err == nil {
			t.Error("expected error for missing authorization header")
		}
	})

	t.Run("fails for an empty token", func(t *testing.T) {
		headers := &CurlHeaders{Headers: map[string]string{"authorization": "Bearer "}}
		if _, err := headers.BearerToken(); err == nil {
			t.Error("expected error for empty token")
		}
	})
}
