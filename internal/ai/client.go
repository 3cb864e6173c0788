// Package ai turns a single vocabulary term into a markdown study note.
// With an OpenAI-compatible key it asks an LLM, optionally grounded by a
// Tavily web search; without one it assembles a note from free sources
// (dictionaryapi.dev and Wikipedia summaries).
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// SearchMode controls whether the web search step runs.
type SearchMode string

const (
	SearchAuto   SearchMode = "auto"   // search when a Tavily key is configured
	SearchTavily SearchMode = "tavily" // always search
	SearchOff    SearchMode = "off"    // never search
)

// Options tune a single Explain call.
type Options struct {
	Model         string
	Sentences     int
	Search        SearchMode
	MaxWebResults int
	Plain         bool // strip markdown headings from the result
}

type Client struct {
	http        *http.Client
	openAIBase  string
	openAIKey   string
	tavilyBase  string
	tavilyKey   string
	dictBase    string
	wikiBaseFmt string // one %s verb for the language code
	now         func() time.Time
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithOpenAI(base, key string) Option {
	return func(c *Client) { c.openAIBase, c.openAIKey = base, key }
}

func WithTavily(base, key string) Option {
	return func(c *Client) { c.tavilyBase, c.tavilyKey = base, key }
}

func WithDictionaryBase(base string) Option {
	return func(c *Client) { c.dictBase = base }
}

func WithWikipediaBase(baseFmt string) Option {
	return func(c *Client) { c.wikiBaseFmt = baseFmt }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient builds a client from the environment (OPENAI_API_KEY,
// OPENAI_BASE_URL, TAVILY_API_KEY), then applies any options.
func NewClient(opts ...Option) *Client {
	base := os.Getenv("OPENAI_BASE_URL")
	if base == "" {
		base = "https://api.openai.com"
	}
	c := &Client{
		http:        &http.Client{Timeout: 60 * time.Second},
		openAIBase:  base,
		openAIKey:   os.Getenv("OPENAI_API_KEY"),
		tavilyBase:  "https://api.tavily.com",
		tavilyKey:   os.Getenv("TAVILY_API_KEY"),
		dictBase:    "https://api.dictionaryapi.dev",
		wikiBaseFmt: "https://%s.wikipedia.org/api/rest_v1/page/summary",
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LLMAvailable reports whether an LLM key is configured.
func (c *Client) LLMAvailable() bool { return c.openAIKey != "" }

// Explain produces a markdown note for term. LLM failures degrade to the
// free-source note with a warning footer when those sources delivered
// anything; a GenerationError is returned only when no usable text could be
// produced at all.
func (c *Client) Explain(ctx context.Context, term string, opts Options) (string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", genErr("explain", KindProviderError, fmt.Errorf("empty term"))
	}
	if opts.Sentences < 1 {
		opts.Sentences = 6
	}
	if opts.MaxWebResults < 1 {
		opts.MaxWebResults = 6
	}

	var search *tavilyResult
	useSearch := opts.Search == SearchTavily || (opts.Search == SearchAuto && c.tavilyKey != "")
	if useSearch && c.tavilyKey != "" {
		if res, err := c.searchTavily(ctx, term, opts.MaxWebResults); err == nil {
			search = res
		}
	}

	dict, dictErr := c.fetchDictionary(ctx, term)
	wikiEN, _ := c.fetchWikipedia(ctx, term, "en")
	wikiZH, _ := c.fetchWikipedia(ctx, term, "zh")

	footer := referenceFooter(search)

	var md string
	if c.openAIKey != "" {
		body, err := c.chatCompletion(ctx, buildMessages(term, opts.Sentences, search, dict, wikiEN, wikiZH), opts.Model)
		if err == nil {
			md = renderNote(term, body, footer, c.now())
		} else if dict != nil || wikiEN != "" || wikiZH != "" {
			md = renderFallback(term, dict, wikiEN, wikiZH, opts.Sentences, footer, c.now())
			md += fmt.Sprintf("\n> LLM call failed, offline note shown instead: %v\n", err)
		} else {
			return "", err
		}
	} else {
		if dict == nil && wikiEN == "" && wikiZH == "" {
			if dictErr != nil {
				return "", dictErr
			}
			return "", genErr("explain", KindNetworkFailure, fmt.Errorf("no source produced content for %q", term))
		}
		md = renderFallback(term, dict, wikiEN, wikiZH, opts.Sentences, footer, c.now())
	}

	if opts.Plain {
		md = StripHeadings(md)
	}
	return md, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (c *Client) chatCompletion(ctx context.Context, messages []chatMessage, model string) (string, error) {
	if model == "" {
		model = "gpt-4o-mini"
	}
	payload := map[string]any{
		"model":       model,
		"temperature": 0.3,
		"max_tokens":  2200,
		"messages":    messages,
	}
	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	endpoint := strings.TrimRight(c.openAIBase, "/") + "/v1/chat/completions"
	if err := c.postJSON(ctx, "llm", endpoint, c.openAIKey, payload, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", genErr("llm", KindProviderError, fmt.Errorf("empty choices"))
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

func (c *Client) postJSON(ctx context.Context, op, endpoint, bearer string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return genErr(op, KindProviderError, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return genErr(op, KindProviderError, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransport(op, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 160))
		return classifyStatus(op, resp.StatusCode, string(snippet))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return genErr(op, KindProviderError, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, op, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return genErr(op, KindProviderError, err)
	}
	req.Header.Set("User-Agent", "vocab-tui/1.0")
	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransport(op, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 160))
		return classifyStatus(op, resp.StatusCode, string(snippet))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return genErr(op, KindProviderError, err)
	}
	return nil
}

func escapeTerm(term string) string {
	return url.PathEscape(term)
}
