package correction

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLanguageToolServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestLanguageTool_Correct(t *testing.T) {
	server := newLanguageToolServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/check", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "I has a apple", r.PostForm.Get("text"))
		assert.Equal(t, "auto", r.PostForm.Get("language"))
		assert.Empty(t, r.PostForm.Get("username"))
		assert.Empty(t, r.PostForm.Get("apiKey"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"matches": []map[string]any{
				{"offset": 2, "length": 3, "replacements": []map[string]string{{"value": "have"}, {"value": "had"}}},
				{"offset": 6, "length": 1, "replacements": []map[string]string{{"value": "an"}}},
			},
		})
	})

	lt := NewLanguageTool(server.URL)
	assert.Equal(t, "I have an apple", lt.Correct(context.Background(), "I has a apple"))
}

func TestLanguageTool_SendsCredentialsOnlyWhenComplete(t *testing.T) {
	var gotUser, gotKey atomic.Value
	server := newLanguageToolServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotUser.Store(r.PostForm.Get("username"))
		gotKey.Store(r.PostForm.Get("apiKey"))
		_, _ = w.Write([]byte(`{"matches":[]}`))
	})

	lt := NewLanguageTool(server.URL, WithCredentials("ada", "secret"))
	lt.Correct(context.Background(), "hello")
	assert.Equal(t, "ada", gotUser.Load())
	assert.Equal(t, "secret", gotKey.Load())

	lt = NewLanguageTool(server.URL, WithCredentials("ada", ""))
	lt.Correct(context.Background(), "hello")
	assert.Equal(t, "", gotUser.Load())
	assert.Equal(t, "", gotKey.Load())
}

func TestLanguageTool_FallsBackOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "rate limited", http.StatusTooManyRequests)
			},
		},
		{
			name: "malformed JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"matches": [`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newLanguageToolServer(t, tt.handler)
			lt := NewLanguageTool(server.URL)
			assert.Equal(t, "I has a apple", lt.Correct(context.Background(), "I has a apple"))
		})
	}
}

func TestLanguageTool_Timeout(t *testing.T) {
	server := newLanguageToolServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"matches":[{"offset":0,"length":1,"replacements":[{"value":"X"}]}]}`))
	})

	lt := NewLanguageTool(server.URL, WithTimeout(20*time.Millisecond))
	assert.Equal(t, "abc", lt.Correct(context.Background(), "abc"))
}

func TestLanguageTool_TransportError(t *testing.T) {
	lt := NewLanguageTool("http://127.0.0.1:1")
	assert.Equal(t, "abc", lt.Correct(context.Background(), "abc"))

	_, err := lt.Check(context.Background(), "abc")
	var serviceErr *ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "languagetool", serviceErr.Service)
}

func TestLanguageTool_BlankTextSkipsRequest(t *testing.T) {
	var calls atomic.Int32
	server := newLanguageToolServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"matches":[]}`))
	})

	lt := NewLanguageTool(server.URL)
	assert.Equal(t, "", lt.Correct(context.Background(), ""))
	assert.Equal(t, "   ", lt.Correct(context.Background(), "   "))
	assert.Equal(t, int32(0), calls.Load())
}

func TestLanguageTool_StatusError(t *testing.T) {
	server := newLanguageToolServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := NewLanguageTool(server.URL).Check(context.Background(), "abc")
	var serviceErr *ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, http.StatusBadGateway, serviceErr.StatusCode)
	assert.Contains(t, err.Error(), "status 502")
}

func TestApplyMatches(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		matches []Match
		want    string
	}{
		{
			name: "no matches",
			text: "fine",
			want: "fine",
		},
		{
			name: "unsorted input",
			text: "teh cat sat on teh mat",
			matches: []Match{
				{Offset: 0, Length: 3, Replacements: []Replacement{{Value: "the"}}},
				{Offset: 15, Length: 3, Replacements: []Replacement{{Value: "the"}}},
			},
			want: "the cat sat on the mat",
		},
		{
			name: "match without replacement",
			text: "teh cat",
			matches: []Match{
				{Offset: 0, Length: 3},
			},
			want: "teh cat",
		},
		{
			name: "replacement changes length",
			text: "a b c",
			matches: []Match{
				{Offset: 4, Length: 1, Replacements: []Replacement{{Value: "charlie"}}},
				{Offset: 0, Length: 1, Replacements: []Replacement{{Value: "alpha"}}},
			},
			want: "alpha b charlie",
		},
		{
			name: "offsets count characters",
			text: "café teh",
			matches: []Match{
				{Offset: 5, Length: 3, Replacements: []Replacement{{Value: "the"}}},
			},
			want: "café the",
		},
		{
			name: "out of range",
			text: "short",
			matches: []Match{
				{Offset: 3, Length: 10, Replacements: []Replacement{{Value: "x"}}},
				{Offset: -1, Length: 1, Replacements: []Replacement{{Value: "x"}}},
			},
			want: "short",
		},
		{
			name: "overlapping match skipped",
			text: "abcdef",
			matches: []Match{
				{Offset: 2, Length: 2, Replacements: []Replacement{{Value: "XX"}}},
				{Offset: 1, Length: 3, Replacements: []Replacement{{Value: "YYY"}}},
			},
			want: "abXXef",
		},
		{
			name: "empty replacement deletes",
			text: "a  b",
			matches: []Match{
				{Offset: 1, Length: 1, Replacements: []Replacement{{Value: ""}}},
			},
			want: "a b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyMatches(tt.text, tt.matches))
		})
	}
}
