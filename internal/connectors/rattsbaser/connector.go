// Package rattsbaser scrapes Swedish legislation from the
// rkrattsbaser.gov.se SFS register.
package rattsbaser

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/nordlaw/lagrum/internal/core/domain"
	"github.com/nordlaw/lagrum/internal/core/ports/driven"
	"github.com/nordlaw/lagrum/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.CorpusSource = (*Connector)(nil)

const (
	// DefaultBaseURL is the public SFS register.
	DefaultBaseURL = "https://rkrattsbaser.gov.se"

	// DefaultRateLimit caps requests per second against the register.
	DefaultRateLimit = 2

	fulltextLinkText = "Visa fulltext"
	issuedDateLabel  = "Utfärdad:"
)

// Detail row keys on the fulltext page. The dates are scraped but are
// not part of the public search projection.
const (
	rowSFSNumber    = domain.FieldSFSNumber
	rowTitle        = domain.FieldTitle
	rowIssuer       = domain.FieldIssuer
	rowContent      = domain.FieldContent
	rowIssuedDate   = "issued_date"
	rowInEffectDate = "in_effect_date"
)

// fieldByPosition maps a record detail row, identified by its position
// among the child nodes of the results container and its CSS class, to
// a record field. Positions are odd because the markup interleaves
// whitespace text nodes with the detail rows.
var fieldByPosition = map[string]string{
	"1_result-inner-box bold": rowSFSNumber,
	"3_result-inner-box":      rowTitle,
	"5_result-inner-box":      rowIssuer,
	"7_result-inner-box":      rowIssuedDate,
	"9_result-inner-box":      rowInEffectDate,
	"11_result-inner-box":     rowContent,
}

// Config holds scraper settings.
type Config struct {
	BaseURL   string
	RateLimit float64 // requests per second, 0 uses DefaultRateLimit
	Timeout   time.Duration
}

// Connector fetches legislation records by walking post ids.
type Connector struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// New creates a new register scraper.
func New(cfg Config) *Connector {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Connector{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
	}
}

// FetchRecord retrieves a single record by its post id. It first loads
// the register hit page for the post, follows its fulltext link, and
// extracts the detail rows from the fulltext page.
func (c *Connector) FetchRecord(ctx context.Context, postID int) (*domain.SourceRecord, error) {
	listURL := fmt.Sprintf("%s/sfsr?fritext=&upph=false&sort=desc&page=2&post_id=%d", c.baseURL, postID)

	listDoc, err := c.get(ctx, listURL)
	if err != nil {
		return nil, fmt.Errorf("fetching post %d: %w", postID, err)
	}

	fulltextPath, err := findFulltextLink(listDoc)
	if err != nil {
		return nil, fmt.Errorf("post %d: %w", postID, err)
	}

	fullDoc, err := c.get(ctx, c.baseURL+fulltextPath)
	if err != nil {
		return nil, fmt.Errorf("fetching fulltext for post %d: %w", postID, err)
	}

	record, err := extractRecord(fullDoc)
	if err != nil {
		return nil, fmt.Errorf("post %d: %w", postID, err)
	}

	record.ID = recordID(postID)
	return record, nil
}

// Fetch retrieves the records for post ids in [from, to). Per-item
// failures are reported through the callback and skipped.
func (c *Connector) Fetch(ctx context.Context, from, to int, onError func(postID int, err error)) ([]domain.SourceRecord, error) {
	if from < 1 || to < from {
		return nil, fmt.Errorf("%w: invalid post id range [%d, %d)", domain.ErrInvalidConfiguration, from, to)
	}

	records := make([]domain.SourceRecord, 0, to-from)
	for postID := from; postID < to; postID++ {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		record, err := c.FetchRecord(ctx, postID)
		if err != nil {
			logger.Warn("Skipping post %d: %v", postID, err)
			if onError != nil {
				onError(postID, err)
			}
			continue
		}
		records = append(records, *record)
	}
	return records, nil
}

// get performs a rate-limited GET and parses the response body.
func (c *Connector) get(ctx context.Context, url string) (*goquery.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// findFulltextLink locates the "Visa fulltext" anchor on a hit page.
func findFulltextLink(doc *goquery.Document) (string, error) {
	var href string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(s.Text(), fulltextLinkText) {
			href, _ = s.Attr("href")
			return false
		}
		return true
	})
	if href == "" {
		return "", fmt.Errorf("%w: no fulltext link on hit page", domain.ErrNotFound)
	}
	return href, nil
}

// extractRecord pulls the detail rows out of a fulltext page.
func extractRecord(doc *goquery.Document) (*domain.SourceRecord, error) {
	container := doc.Find(".main.wrapper .content .search-results .search-main .search-results-content")
	if container.Length() == 0 {
		return nil, fmt.Errorf("%w: fulltext page has no results content", domain.ErrNotFound)
	}

	fields := make(map[string]string)

	// Walk raw child nodes so that positions count the whitespace text
	// nodes between the detail rows.
	position := 0
	for node := container.Nodes[0].FirstChild; node != nil; node = node.NextSibling {
		if node.Type == html.ElementNode {
			key := fmt.Sprintf("%d_%s", position, nodeClass(node))
			if field, ok := fieldByPosition[key]; ok {
				fields[field] = strings.TrimSpace(goquery.NewDocumentFromNode(node).Text())
			}
		}
		position++
	}

	record := &domain.SourceRecord{
		Title:        fields[rowTitle],
		Content:      fields[rowContent],
		Issuer:       fields[rowIssuer],
		SFSNumber:    normalizeSFSNumber(fields[rowSFSNumber]),
		IssuedDate:   normalizeIssuedDate(fields[rowIssuedDate]),
		InEffectDate: fields[rowInEffectDate],
	}

	if record.Content == "" {
		return nil, fmt.Errorf("%w: fulltext page has no content row", domain.ErrNotFound)
	}
	return record, nil
}

func nodeClass(node *html.Node) string {
	for _, attr := range node.Attr {
		if attr.Key == "class" {
			return attr.Val
		}
	}
	return ""
}

// normalizeSFSNumber reduces the register's "SFS nr: 2020:1" row to the
// bare number.
func normalizeSFSNumber(raw string) string {
	parts := strings.Fields(raw)
	if len(parts) < 3 {
		return raw
	}
	return parts[2]
}

// normalizeIssuedDate drops the label prefix from the issued date row.
func normalizeIssuedDate(raw string) string {
	return strings.TrimSpace(strings.TrimPrefix(raw, issuedDateLabel))
}

// recordID derives a stable identifier from the post id so repeated
// scans upsert instead of duplicating records.
func recordID(postID int) string {
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(fmt.Sprintf("rkrattsbaser:post:%d", postID))).String()
}
