package ai

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

func trim(s string, n int) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
	if len(s) > n {
		return s[:n] + "…"
	}
	return s
}

// buildMessages assembles the chat prompt: a fixed editorial persona plus
// whatever reference material the free sources and the web search produced.
func buildMessages(term string, sentences int, search *tavilyResult, dict *dictEntry, wikiEN, wikiZH string) []chatMessage {
	var refs []string
	if block := searchBlock(search); block != "" {
		refs = append(refs, "## Web search\n"+block)
	}
	if wikiEN != "" {
		refs = append(refs, "## Wikipedia EN\n"+trim(wikiEN, 800))
	}
	if wikiZH != "" {
		refs = append(refs, "## Wikipedia ZH\n"+trim(wikiZH, 800))
	}
	if block := dictBlock(dict); block != "" {
		refs = append(refs, "## Dictionary (summary)\n"+block)
	}
	refBlock := "(no external references)"
	if len(refs) > 0 {
		refBlock = strings.Join(refs, "\n\n")
	}

	system := chatMessage{
		Role: "system",
		Content: "You are a bilingual English-Chinese dictionary editor and writing coach " +
			"for Chinese learners of English. Answer mostly in Chinese, clearly structured, " +
			"ready to be used as study notes. When references conflict with common knowledge, " +
			"prefer the references and say so.",
	}
	user := chatMessage{
		Role: "user",
		Content: fmt.Sprintf(`Write a thorough markdown study note for the English word **%s**.

Reference material gathered so far (for fact alignment, not to be quoted verbatim):
%s

Required sections:
1. Phonetics and stress (UK/US if available)
2. Core senses with Chinese explanations, one common collocation each
3. Common collocations and fixed phrases (at least 6)
4. Synonyms and antonyms (5-10 each, noting differences where useful)
5. Register and usage warnings
6. Etymology and word family
7. %d high-quality example sentences with Chinese translations
8. %d sentence-building templates (Chinese prompt plus English pattern)
9. Exercises: cloze, synonym choice, Chinese-to-English translation (with answers)
10. 4-6 extension collocation chunks with Chinese hints`, term, refBlock, sentences, max(3, sentences/2)),
	}
	return []chatMessage{system, user}
}

func searchBlock(search *tavilyResult) string {
	if search == nil {
		return ""
	}
	var lines []string
	if search.Answer != "" {
		lines = append(lines, "(search answer) "+trim(search.Answer, 600))
	}
	for i, it := range search.Items {
		if i >= 8 || it.URL == "" {
			break
		}
		lines = append(lines, fmt.Sprintf("[%d] %s — %s\n    %s", i+1, trim(it.Title, 120), it.URL, trim(it.Content, 380)))
	}
	return strings.Join(lines, "\n")
}

func dictBlock(dict *dictEntry) string {
	if dict == nil {
		return ""
	}
	var parts []string
	if len(dict.Phonetics) > 0 {
		parts = append(parts, "Phonetics: "+strings.Join(dict.Phonetics, " / "))
	}
	var senses []string
	for _, s := range dict.Senses {
		defs := s.Definitions
		if len(defs) > 2 {
			defs = defs[:2]
		}
		senses = append(senses, s.PartOfSpeech+": "+strings.Join(defs, "; "))
	}
	if len(senses) > 0 {
		parts = append(parts, "Senses: "+strings.Join(senses, " | "))
	}
	return strings.Join(parts, " | ")
}

// referenceFooter lists the search answer and result links, appended to the
// generated note so the reader can check sources.
func referenceFooter(search *tavilyResult) string {
	if search == nil {
		return ""
	}
	var lines []string
	if search.Answer != "" {
		lines = append(lines, "> Search summary: "+trim(search.Answer, 240))
	}
	for _, it := range search.Items {
		if it.URL == "" {
			continue
		}
		title := it.Title
		if title == "" {
			title = it.URL
		}
		lines = append(lines, fmt.Sprintf("- [%s](%s)", trim(title, 80), it.URL))
	}
	return strings.Join(lines, "\n")
}

func renderNote(term, body, footer string, now time.Time) string {
	head := fmt.Sprintf("# %s\n> AI note (generated %s)\n\n", term, now.Format("2006-01-02 15:04"))
	tail := ""
	if footer != "" {
		tail = "\n---\n**References (auto-collected)**\n" + footer + "\n"
	}
	return head + strings.TrimSpace(body) + tail
}

// renderFallback builds a usable note from the free sources alone.
func renderFallback(term string, dict *dictEntry, wikiEN, wikiZH string, sentences int, footer string, now time.Time) string {
	lines := []string{
		"# " + term,
		fmt.Sprintf("> Offline note (%s)", now.Format("2006-01-02 15:04")),
		"",
	}

	if dict != nil {
		if len(dict.Phonetics) > 0 {
			lines = append(lines, "## Phonetics", "- "+strings.Join(dict.Phonetics, " / "))
		}
		if len(dict.Senses) > 0 {
			lines = append(lines, "## Core senses (dictionaryapi.dev)")
			for _, s := range dict.Senses {
				lines = append(lines, fmt.Sprintf("- **%s**: %s", s.PartOfSpeech, s.Definitions[0]))
				for _, extra := range s.Definitions[1:min(len(s.Definitions), 3)] {
					lines = append(lines, "  - also: "+extra)
				}
			}
		}
	}

	if wikiEN != "" || wikiZH != "" {
		lines = append(lines, "## Wikipedia summary")
		if wikiEN != "" {
			lines = append(lines, "- EN: "+wikiEN)
		}
		if wikiZH != "" {
			lines = append(lines, "- ZH: "+wikiZH)
		}
	}

	lines = append(lines, "## Example sentences (auto-generated)")
	templates := []string{
		fmt.Sprintf("I used the word '%s' in a simple sentence.", term),
		fmt.Sprintf("The meaning of '%s' depends on the context.", term),
		fmt.Sprintf("People often learn '%s' through examples and practice.", term),
		fmt.Sprintf("Here is another example that clarifies '%s'.", term),
		fmt.Sprintf("This phrase with '%s' is common in daily speech.", term),
	}
	n := max(3, sentences)
	if n > len(templates) {
		n = len(templates)
	}
	for i, s := range templates[:n] {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, s))
	}

	lines = append(lines,
		"## Exercises",
		"1) Cloze: I ____ this word by writing three sentences. (example: learned)",
		"2) Choice: Which option is closest to the meaning of the word? (A) … (B) … (C) …",
		fmt.Sprintf("3) Translation: write a sentence using **%s** and translate it.", term),
	)
	if footer != "" {
		lines = append(lines, "", "---", "**References (auto-collected)**", footer)
	}
	return strings.Join(lines, "\n") + "\n"
}

var headingRe = regexp.MustCompile(`(?m)^#{1,6}\s*`)

// StripHeadings turns a markdown note into plain-ish text for surfaces that
// do not render markdown.
func StripHeadings(md string) string {
	return headingRe.ReplaceAllString(md, "")
}
