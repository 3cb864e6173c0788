package ai

import (
	"context"
	"fmt"
	"strings"
)

// tavilyResult is the subset of the Tavily search response the prompt and
// footer use.
type tavilyResult struct {
	Answer string
	Items  []tavilyItem
}

type tavilyItem struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

func (c *Client) searchTavily(ctx context.Context, term string, maxResults int) (*tavilyResult, error) {
	if maxResults > 15 {
		maxResults = 15
	}
	query := fmt.Sprintf(
		"%s meaning and usage; collocations; common phrases; etymology; synonyms antonyms; example sentences; register; CEFR",
		term,
	)
	payload := map[string]any{
		"api_key":             c.tavilyKey,
		"query":               query,
		"search_depth":        "advanced",
		"include_answer":      true,
		"max_results":         maxResults,
		"include_images":      false,
		"include_raw_content": false,
		"topic":               "general",
	}
	var out struct {
		Answer  string       `json:"answer"`
		Results []tavilyItem `json:"results"`
	}
	if err := c.postJSON(ctx, "tavily", c.tavilyBase+"/search", "", payload, &out); err != nil {
		return nil, err
	}
	return &tavilyResult{Answer: out.Answer, Items: out.Results}, nil
}

// dictEntry holds the distilled dictionaryapi.dev response: the phonetic
// transcriptions plus per-part-of-speech definitions.
type dictEntry struct {
	Phonetics []string
	Senses    []dictSense
}

type dictSense struct {
	PartOfSpeech string
	Definitions  []string
}

func (c *Client) fetchDictionary(ctx context.Context, term string) (*dictEntry, error) {
	var out []struct {
		Phonetics []struct {
			Text string `json:"text"`
		} `json:"phonetics"`
		Meanings []struct {
			PartOfSpeech string `json:"partOfSpeech"`
			Definitions  []struct {
				Definition string `json:"definition"`
			} `json:"definitions"`
		} `json:"meanings"`
	}
	endpoint := c.dictBase + "/api/v2/entries/en/" + escapeTerm(term)
	if err := c.getJSON(ctx, "dictionary", endpoint, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, genErr("dictionary", KindProviderError, fmt.Errorf("no entries for %q", term))
	}

	entry := &dictEntry{}
	seen := map[string]bool{}
	for _, ph := range out[0].Phonetics {
		if ph.Text != "" && !seen[ph.Text] {
			seen[ph.Text] = true
			entry.Phonetics = append(entry.Phonetics, ph.Text)
		}
	}
	for _, m := range out[0].Meanings {
		sense := dictSense{PartOfSpeech: m.PartOfSpeech}
		for _, d := range m.Definitions {
			if d.Definition != "" {
				sense.Definitions = append(sense.Definitions, d.Definition)
			}
		}
		if len(sense.Definitions) > 0 {
			entry.Senses = append(entry.Senses, sense)
		}
	}
	return entry, nil
}

func (c *Client) fetchWikipedia(ctx context.Context, term, lang string) (string, error) {
	var out struct {
		Extract string `json:"extract"`
	}
	endpoint := fmt.Sprintf(c.wikiBaseFmt, lang) + "/" + escapeTerm(term)
	if err := c.getJSON(ctx, "wikipedia", endpoint, &out); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.Extract), nil
}
