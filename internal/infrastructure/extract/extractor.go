package extract

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"ComplianceScanner/internal/domain"
	"ComplianceScanner/internal/ports"
)

// maxContentLength caps the extracted body size per document.
const maxContentLength = 50000

// structural regions stripped before content selection.
var stripSelectors = []string{"nav", "header", "footer", "aside", "script", "style"}

// contentSelectors are tried in order, most semantic first.
var contentSelectors = []string{
	"main", "article", ".content", ".post-content",
	".entry-content", "#content", ".publication-detail",
}

// Extractor normalizes a document's raw payload into bounded plain text.
type Extractor struct {
	client *http.Client
}

var _ ports.ContentExtractor = (*Extractor)(nil)

// NewExtractor wires an HTTP client; nil gets a 30s-timeout default.
func NewExtractor(client *http.Client) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Extractor{client: client}
}

// Extract returns the document with Content populated. Pre-filled content
// passes through untouched and causes no network call. A non-nil error means
// the caller should drop the document from the run.
func (e *Extractor) Extract(ctx context.Context, doc domain.Document) (domain.Document, error) {
	if doc.Content != "" {
		return doc, nil
	}
	if doc.URL == "" {
		return domain.Document{}, fmt.Errorf("document %q has no url", doc.Title)
	}

	page, err := e.fetchPage(ctx, doc.URL)
	if err != nil {
		return domain.Document{}, err
	}

	doc.Content = flattenContent(page)
	return doc, nil
}

func (e *Extractor) fetchPage(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "ComplianceScanner/1.0")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned %s", resp.Status)
	}

	page, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	return page, nil
}

func flattenContent(page *goquery.Document) string {
	for _, sel := range stripSelectors {
		page.Find(sel).Remove()
	}

	region := selectContentRegion(page)
	if region == nil {
		return ""
	}

	// Flatten to line-broken text with blank lines collapsed.
	var lines []string
	text := region.Text()
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	content := strings.Join(lines, "\n")
	if len(content) > maxContentLength {
		content = truncateAtRune(content, maxContentLength)
	}
	return content
}

// truncateAtRune cuts s to at most n bytes without splitting a UTF-8 rune.
func truncateAtRune(s string, n int) string {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func selectContentRegion(page *goquery.Document) *goquery.Selection {
	for _, sel := range contentSelectors {
		if region := page.Find(sel).First(); region.Length() > 0 {
			return region
		}
	}
	if body := page.Find("body").First(); body.Length() > 0 {
		return body
	}
	return nil
}
