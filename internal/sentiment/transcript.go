package sentiment

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"edgarcli/pkg/contracts/domain"
)

var quarterTitleRe = regexp.MustCompile(`Q([1-4])\s+(\d{4})`)

// LoadTranscripts reads a JSON transcript bundle: an array of objects
// with ticker, company_name, quarter, year, date, url, and text fields.
// This is the already-fetched form the correlator consumes; live
// scraping stays outside the core.
func LoadTranscripts(path string) ([]domain.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcripts file: %w", err)
	}

	var raw []struct {
		domain.Transcript
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse transcripts file: %w", err)
	}

	transcripts := make([]domain.Transcript, 0, len(raw))
	for _, r := range raw {
		t := r.Transcript
		t.Text = r.Text
		transcripts = append(transcripts, t)
	}
	return transcripts, nil
}

// LoadTranscriptPages reads saved transcript HTML pages from a
// directory, extracting readable text and the quarter/year from each
// page title. Filenames carry the join keys as TICKER_YYYY-MM-DD.html;
// files that do not follow the convention or hold no readable text are
// skipped, not errored.
func LoadTranscriptPages(dir string) ([]domain.Transcript, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript pages directory: %w", err)
	}

	var transcripts []domain.Transcript
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(name), ".html") {
			continue
		}
		ticker, date, ok := parsePageName(name)
		if !ok {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read transcript page %s: %w", name, err)
		}
		html := string(data)

		text, err := ExtractTranscriptText(html)
		if err != nil {
			continue
		}
		quarter, year := ParseTitle(pageTitle(html))

		transcripts = append(transcripts, domain.Transcript{
			Ticker:  ticker,
			Quarter: quarter,
			Year:    year,
			Date:    date,
			Text:    text,
		})
	}
	return transcripts, nil
}

// parsePageName splits a TICKER_YYYY-MM-DD.html filename into its join
// keys.
func parsePageName(name string) (ticker, date string, ok bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.SplitN(base, "_", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", false
	}
	if _, valid := ParseDate(parts[1]); !valid {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// pageTitle returns the page's title text, or "" when the page has
// none.
func pageTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// ExtractTranscriptText pulls readable transcript text from a saved
// article page. The selectors mirror the article-viewer markup used by
// the common transcript hosts, with a body-text fallback.
func ExtractTranscriptText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse transcript page: %w", err)
	}

	var parts []string
	doc.Find(`div[data-module="ArticleViewer"]`).Each(func(_ int, s *goquery.Selection) {
		parts = append(parts, s.Text())
	})
	if len(parts) == 0 {
		doc.Find(`div[class*="article-content"]`).Each(func(_ int, s *goquery.Selection) {
			parts = append(parts, s.Text())
		})
	}
	if len(parts) == 0 {
		parts = append(parts, doc.Find("body").Text())
	}

	text := strings.TrimSpace(strings.Join(parts, " "))
	if text == "" {
		return "", fmt.Errorf("transcript page contains no text")
	}
	return text, nil
}

// ParseTitle extracts quarter and year from an article title such as
// "Apple Inc. Q3 2025 Earnings Call Transcript". Unknown titles yield
// quarter "Unknown" and year 0.
func ParseTitle(title string) (quarter string, year int) {
	m := quarterTitleRe.FindStringSubmatch(title)
	if m == nil {
		return "Unknown", 0
	}
	year, _ = strconv.Atoi(m[2])
	return "Q" + m[1], year
}
