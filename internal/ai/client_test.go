package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

// dictionaryServer serves a minimal dictionaryapi.dev response for any term.
func dictionaryServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := []map[string]any{{
			"phonetics": []map[string]string{{"text": "/ˈæpəl/"}, {"text": "/ˈæpəl/"}},
			"meanings": []map[string]any{{
				"partOfSpeech": "noun",
				"definitions":  []map[string]string{{"definition": "a round fruit"}},
			}},
		}}
		_ = json.NewEncoder(w).Encode(payload)
	}))
}

func erroringServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", status)
	}))
}

func TestExplainOfflineFallback(t *testing.T) {
	dict := dictionaryServer(t)
	defer dict.Close()
	wiki := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"extract": "An apple is a fruit."})
	}))
	defer wiki.Close()

	c := NewClient(
		WithOpenAI("", ""), // no LLM key: offline path
		WithTavily("", ""),
		WithDictionaryBase(dict.URL),
		WithWikipediaBase(wiki.URL+"/%s"),
		WithClock(fixedClock()),
	)

	md, err := c.Explain(context.Background(), "apple", Options{Search: SearchOff})
	require.NoError(t, err)
	assert.Contains(t, md, "# apple")
	assert.Contains(t, md, "/ˈæpəl/")
	assert.Contains(t, md, "a round fruit")
	assert.Contains(t, md, "An apple is a fruit.")
	assert.Contains(t, md, "Offline note")
}

func TestExplainUsesLLMWhenConfigured(t *testing.T) {
	dict := dictionaryServer(t)
	defer dict.Close()
	wikiDown := erroringServer(t, http.StatusNotFound)
	defer wikiDown.Close()

	var gotAuth string
	llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		var req struct {
			Model    string        `json:"model"`
			Messages []chatMessage `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[1].Content, "**apple**")

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"content": "## Senses\nthe llm body"}}},
		})
	}))
	defer llm.Close()

	c := NewClient(
		WithOpenAI(llm.URL, "sk-test"),
		WithTavily("", ""),
		WithDictionaryBase(dict.URL),
		WithWikipediaBase(wikiDown.URL+"/%s"),
		WithClock(fixedClock()),
	)

	md, err := c.Explain(context.Background(), "apple", Options{Model: "test-model", Search: SearchOff})
	require.NoError(t, err)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Contains(t, md, "# apple")
	assert.Contains(t, md, "the llm body")
	assert.Contains(t, md, "AI note (generated 2024-05-01 12:00)")
}

func TestExplainLLMFailureDegradesToOfflineNote(t *testing.T) {
	dict := dictionaryServer(t)
	defer dict.Close()
	wikiDown := erroringServer(t, http.StatusNotFound)
	defer wikiDown.Close()
	llmDown := erroringServer(t, http.StatusInternalServerError)
	defer llmDown.Close()

	c := NewClient(
		WithOpenAI(llmDown.URL, "sk-test"),
		WithTavily("", ""),
		WithDictionaryBase(dict.URL),
		WithWikipediaBase(wikiDown.URL+"/%s"),
		WithClock(fixedClock()),
	)

	md, err := c.Explain(context.Background(), "apple", Options{Search: SearchOff})
	require.NoError(t, err)
	assert.Contains(t, md, "Offline note")
	assert.Contains(t, md, "LLM call failed")
}

func TestExplainAuthFailureKind(t *testing.T) {
	dictDown := erroringServer(t, http.StatusNotFound)
	defer dictDown.Close()
	llmAuth := erroringServer(t, http.StatusUnauthorized)
	defer llmAuth.Close()

	c := NewClient(
		WithOpenAI(llmAuth.URL, "sk-bad"),
		WithTavily("", ""),
		WithDictionaryBase(dictDown.URL),
		WithWikipediaBase(dictDown.URL+"/%s"),
	)

	_, err := c.Explain(context.Background(), "apple", Options{Search: SearchOff})
	require.Error(t, err)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, KindAuthFailure, genErr.Kind)
}

func TestExplainTimeoutKind(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer slow.Close()

	c := NewClient(
		WithOpenAI("", ""),
		WithTavily("", ""),
		WithDictionaryBase(slow.URL),
		WithWikipediaBase(slow.URL+"/%s"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Explain(ctx, "apple", Options{Search: SearchOff})
	require.Error(t, err)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, KindTimeout, genErr.Kind)
}

func TestExplainEmptyTerm(t *testing.T) {
	c := NewClient()
	_, err := c.Explain(context.Background(), "   ", Options{})
	assert.Error(t, err)
}

func TestStripHeadings(t *testing.T) {
	md := "# Title\nbody\n## Sub\n### Deep heading\ntext with # not at line start"
	out := StripHeadings(md)
	assert.Equal(t, "Title\nbody\nSub\nDeep heading\ntext with # not at line start", out)
}

func TestPlainOptionStripsHeadings(t *testing.T) {
	dict := dictionaryServer(t)
	defer dict.Close()
	wikiDown := erroringServer(t, http.StatusNotFound)
	defer wikiDown.Close()

	c := NewClient(
		WithOpenAI("", ""),
		WithTavily("", ""),
		WithDictionaryBase(dict.URL),
		WithWikipediaBase(wikiDown.URL+"/%s"),
	)

	md, err := c.Explain(context.Background(), "apple", Options{Search: SearchOff, Plain: true})
	require.NoError(t, err)
	assert.NotContains(t, md, "# apple")
	assert.Contains(t, md, "apple")
}
