/*
Package ipo fetches the investorgain IPO report, filters it to issues open for
subscription and converts raw rows into typed listings.
*/
package ipo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shanehull/iposcraper/internal/types"
)

const (
	DefaultBaseURL = "https://webnodejs.investorgain.com/cloud/report/data-read/331/1/9/2025/2025-26/0/all"
	collectionKey  = "reportTableData"
	cacheBustFmt   = "15-04"
)

var (
	ErrUnexpectedStatus  = errors.New("unexpected status code")
	ErrMissingCollection = errors.New("missing " + collectionKey + " array")
)

var defaultClient = &http.Client{
	Timeout: 60 * time.Second,
}

// Fetcher retrieves the report and keeps the issues open today.
type Fetcher struct {
	baseURL string
	client  *http.Client
	logger  *logrus.Logger
	now     func() time.Time
}

type Option func(*Fetcher)

func WithBaseURL(u string) Option {
	return func(f *Fetcher) { f.baseURL = u }
}

func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

func WithLogger(l *logrus.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// WithClock overrides time.Now. The returned time's location decides what
// "today" means.
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) { f.now = now }
}

func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		baseURL: DefaultBaseURL,
		client:  defaultClient,
		logger:  logrus.StandardLogger(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// BuildURL appends an empty search term and a per-minute cache-busting token.
func (f *Fetcher) BuildURL(now time.Time) (string, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", f.baseURL, err)
	}
	q := u.Query()
	q.Set("search", "")
	q.Set("v", now.Format(cacheBustFmt))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchOpenIPOs returns the records whose subscription window contains today,
// ordered by close date.
func (f *Fetcher) FetchOpenIPOs(ctx context.Context) ([]types.RawRecord, error) {
	now := f.now()

	records, err := f.fetchReport(ctx, now)
	if err != nil {
		return nil, err
	}

	open := FilterOpen(records, now, f.logger)

	f.logger.WithFields(logrus.Fields{
		"total": len(records),
		"open":  len(open),
		"date":  now.Format(dateLayout),
	}).Info("Filtered IPO report")

	return open, nil
}

func (f *Fetcher) fetchReport(ctx context.Context, now time.Time) ([]types.RawRecord, error) {
	reqURL, err := f.BuildURL(now)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", reqURL, err)
	}
	req.Header.Set("Accept", "application/json")

	f.logger.WithField("url", reqURL).Debug("Fetching IPO report")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %s: %w", reqURL, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			f.logger.WithError(err).Warnf("Failed to close response body for %s", reqURL)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w %d from %s", ErrUnexpectedStatus, resp.StatusCode, reqURL)
	}

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode JSON from %s: %w", reqURL, err)
	}

	raw, ok := payload[collectionKey]
	if !ok {
		return nil, ErrMissingCollection
	}

	return decodeRecords(raw)
}

func decodeRecords(raw json.RawMessage) ([]types.RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var records []types.RawRecord
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingCollection, err)
	}
	if records == nil {
		return nil, ErrMissingCollection
	}
	return records, nil
}
