package correction

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// DefaultLanguageToolURL is the public LanguageTool Plus API.
const DefaultLanguageToolURL = "https://api.languagetoolplus.com"

// maxResponseBytes caps the size of a check response that will be decoded.
const maxResponseBytes = 4 << 20

// Match is one issue reported by LanguageTool. Offset and Length count
// characters of the checked text.
type Match struct {
	Offset       int           `json:"offset"`
	Length       int           `json:"length"`
	Message      string        `json:"message,omitempty"`
	Replacements []Replacement `json:"replacements"`
}

// Replacement is a suggested fix for a Match.
type Replacement struct {
	Value string `json:"value"`
}

type checkResponse struct {
	Matches []Match `json:"matches"`
}

// LanguageTool corrects text with the LanguageTool /v2/check endpoint.
type LanguageTool struct {
	baseURL    string
	username   string
	apiKey     string
	httpClient *http.Client
}

var _ Corrector = (*LanguageTool)(nil)

// LanguageToolOption configures a LanguageTool corrector.
type LanguageToolOption func(*LanguageTool)

// WithCredentials sets the premium account credentials. They are only sent
// when both are non-empty.
func WithCredentials(username, apiKey string) LanguageToolOption {
	return func(lt *LanguageTool) {
		lt.username = username
		lt.apiKey = apiKey
	}
}

// WithTimeout sets the per-request timeout. Zero keeps DefaultTimeout.
func WithTimeout(timeout time.Duration) LanguageToolOption {
	return func(lt *LanguageTool) {
		if timeout > 0 {
			lt.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) LanguageToolOption {
	return func(lt *LanguageTool) {
		if client != nil {
			lt.httpClient = client
		}
	}
}

// NewLanguageTool creates a corrector for the LanguageTool server at baseURL.
// An empty baseURL uses DefaultLanguageToolURL.
func NewLanguageTool(baseURL string, opts ...LanguageToolOption) *LanguageTool {
	if baseURL == "" {
		baseURL = DefaultLanguageToolURL
	}
	lt := &LanguageTool{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(lt)
	}
	return lt
}

// Correct implements Corrector. Blank text is returned without a request.
func (lt *LanguageTool) Correct(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	matches, err := lt.Check(ctx, text)
	if err != nil {
		log.Printf("[correction] %v", err)
		return text
	}
	return ApplyMatches(text, matches)
}

// Check sends text to LanguageTool and returns the reported matches.
func (lt *LanguageTool) Check(ctx context.Context, text string) ([]Match, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", "auto")
	if lt.username != "" && lt.apiKey != "" {
		form.Set("username", lt.username)
		form.Set("apiKey", lt.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, lt.baseURL+"/v2/check", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &ServiceError{Service: "languagetool", Message: "failed to build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := lt.httpClient.Do(req)
	if err != nil {
		return nil, &ServiceError{Service: "languagetool", Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, &ServiceError{Service: "languagetool", StatusCode: resp.StatusCode, Message: "unexpected status"}
	}

	var result checkResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&result); err != nil {
		return nil, &ServiceError{Service: "languagetool", Message: "failed to decode response", Cause: err}
	}
	return result.Matches, nil
}

// ApplyMatches applies the first replacement of every match, working from the
// highest offset down so earlier offsets stay valid. Matches without
// replacements, out of range, or overlapping an already applied match are
// skipped.
func ApplyMatches(text string, matches []Match) string {
	if len(matches) == 0 {
		return text
	}

	ordered := make([]Match, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Offset > ordered[j].Offset
	})

	runes := []rune(text)
	limit := len(runes)
	for _, m := range ordered {
		if len(m.Replacements) == 0 {
			continue
		}
		start, end := m.Offset, m.Offset+m.Length
		if start < 0 || m.Length < 0 || end > limit {
			continue
		}
		replacement := []rune(m.Replacements[0].Value)
		next := make([]rune, 0, len(runes)-m.Length+len(replacement))
		next = append(next, runes[:start]...)
		next = append(next, replacement...)
		next = append(next, runes[end:]...)
		runes = next
		limit = start
	}
	return string(runes)
}

// String describes the corrector for logs.
func (lt *LanguageTool) String() string {
	auth := "anonymous"
	if lt.username != "" && lt.apiKey != "" {
		auth = "user " + lt.username
	}
	return fmt.Sprintf("languagetool(%s, %s)", lt.baseURL, auth)
}
