package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ComplianceScanner/internal/domain"
	"ComplianceScanner/internal/source"
)

const minTitleLength = 10

// titleMarkers is the allow-list a listing entry must match to be treated as
// a relevant publication rather than site chrome.
var titleMarkers = []string{"sp 800", "special publication", "cybersecurity", "framework"}

// CSRCAdapter scrapes the NIST CSRC search listing for publication links.
type CSRCAdapter struct {
	baseURL string
	client  *http.Client
}

var _ source.Adapter = (*CSRCAdapter)(nil)

// NewCSRCAdapter wires an HTTP client; the timeout ceiling lives on the client.
func NewCSRCAdapter(baseURL string, client *http.Client) *CSRCAdapter {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &CSRCAdapter{baseURL: strings.TrimSuffix(baseURL, "/"), client: client}
}

// Name identifies the strategy inside the registry.
func (a *CSRCAdapter) Name() string {
	return "csrc"
}

// Fetch runs one search-listing query and extracts up to limit title/link pairs.
func (a *CSRCAdapter) Fetch(ctx context.Context, query string, limit int) ([]domain.Document, error) {
	if limit <= 0 {
		return nil, nil
	}

	searchURL := fmt.Sprintf("%s/search?q=%s", a.baseURL, url.QueryEscape(query))
	doc, err := a.fetchDocument(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", query, err)
	}

	return a.extractListing(doc, query, limit), nil
}

func (a *CSRCAdapter) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "ComplianceScanner/1.0")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("csrc returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func (a *CSRCAdapter) extractListing(doc *goquery.Document, query string, limit int) []domain.Document {
	collected := make([]domain.Document, 0, limit)

	doc.Find("a[href*=\"/publications/\"]").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if len(collected) >= limit {
			return false
		}

		title := strings.TrimSpace(sel.Text())
		href, _ := sel.Attr("href")
		if !relevantTitle(title) {
			return true
		}

		collected = append(collected, domain.Document{
			Title:         title,
			URL:           a.resolveLink(href),
			PublishedDate: time.Now().Format("2006-01-02"),
			Summary:       fmt.Sprintf("NIST publication related to %s", query),
			Source:        "NIST CSRC",
		})
		return true
	})

	return collected
}

// resolveLink turns listing-relative hrefs into canonical absolute addresses.
func (a *CSRCAdapter) resolveLink(href string) string {
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return a.baseURL + href
}

func relevantTitle(title string) bool {
	if len(title) <= minTitleLength {
		return false
	}
	lower := strings.ToLower(title)
	for _, marker := range titleMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
