// Package relocateme scrapes job listings from the Relocate.me job board.
package relocateme

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://relocate.me"

// targetCountries and cityKeywords form the fixed allow-list applied to
// the location field of every scraped listing.
var targetCountries = []string{
	"Ireland", "Netherlands", "Finland", "Denmark", "Luxembourg",
	"Germany", "Sweden", "Norway", "Switzerland", "Belgium", "France",
	"Estonia", "Lithuania", "Latvia", "Czech Republic",
}

var cityKeywords = []string{
	"dublin", "amsterdam", "helsinki", "copenhagen", "luxembourg", "berlin", "stockholm",
	"oslo", "zurich", "brussels", "paris", "tallinn", "vilnius", "riga", "prague",
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// SearchResult is one scraped job card, fields defaulting to "" when the
// expected markup is absent.
type SearchResult struct {
	Title       string
	Company     string
	Location    string
	Link        string
	Description string
}

type Client struct {
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
	baseURL     string
	maxRetries  int
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		baseURL:    defaultBaseURL,
		maxRetries: 2,
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

// SetTimeout bounds every request attempt. It only applies to the default
// HTTP client; an injected one owns its own timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	if client, ok := c.httpClient.(*http.Client); ok {
		client.Timeout = timeout
	}
}

func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
}

func (c *Client) SetMaxRetries(maxRetries int) {
	c.maxRetries = maxRetries
}

// Search scrapes one results page for the keyword and returns the job
// cards located in a target country or city.
func (c *Client) Search(ctx context.Context, keyword string) ([]SearchResult, error) {

	params := url.Values{}
	params.Set("keywords", keyword)
	params.Set("date", "last-24-hours")

	doc, err := c.fetchDocument(ctx, c.baseURL+"/search?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	doc.Find("div.job-listing").Each(func(_ int, card *goquery.Selection) {
		result := SearchResult{
			Title:       strings.TrimSpace(card.Find("h2").First().Text()),
			Company:     strings.TrimSpace(card.Find("div.company").First().Text()),
			Location:    strings.TrimSpace(card.Find("div.location").First().Text()),
			Description: strings.TrimSpace(card.Find("div.description").First().Text()),
		}
		if href, ok := card.Find("a.job-link").First().Attr("href"); ok {
			result.Link = c.absoluteURL(href)
		}

		if matchesTargetLocation(result.Location) {
			results = append(results, result)
		}
	})

	return results, nil
}

// fetchDocument issues the request with bounded retries; each attempt is
// bounded by the HTTP client timeout.
func (c *Client) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if c.rateLimiter != nil {
			if err := c.rateLimiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		doc, err := c.fetchOnce(ctx, pageURL)
		if err == nil {
			return doc, nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
	}

	return nil, lastErr
}

func (c *Client) fetchOnce(ctx context.Context, pageURL string) (*goquery.Document, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %v", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error parsing document: %v", err)
	}

	return doc, nil
}

func (c *Client) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	return c.baseURL + href
}

func matchesTargetLocation(location string) bool {
	lowered := strings.ToLower(location)
	for _, country := range targetCountries {
		if strings.Contains(lowered, strings.ToLower(country)) {
			return true
		}
	}
	for _, city := range cityKeywords {
		if strings.Contains(lowered, city) {
			return true
		}
	}
	return false
}
