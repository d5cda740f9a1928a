package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/umedrahimoff/techstan/app/news"
)

// CandidateFetcher is the producer side of the pipeline: one call per
// configured source per cycle.
type CandidateFetcher interface {
	Fetch(ctx context.Context, source *news.Source) []news.Candidate
	FetchAll(ctx context.Context, sources []*news.Source) []news.Candidate
}

// Fetcher extracts candidate records from configured sources. Each source's
// fetch runs under its own timeout so one slow or unreachable site never
// stalls the others; a failing source yields an empty list, not an error.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
}

var _ CandidateFetcher = (*Fetcher)(nil)

func NewFetcher(httpClient *http.Client, userAgent string) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Fetcher{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// Fetch returns candidates extracted from a single source.
func (f *Fetcher) Fetch(ctx context.Context, source *news.Source) []news.Candidate {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(source.Settings.Timeout)*time.Second)
	defer cancel()

	var (
		candidates []news.Candidate
		err        error
	)
	switch source.Kind {
	case "rss":
		candidates, err = f.fetchRSS(timeoutCtx, source)
	default:
		candidates, err = f.fetchHTML(timeoutCtx, source)
	}

	if err != nil {
		slog.Error("Source fetch failed", "source", source.Name, "kind", source.Kind, "error", err)
		return nil
	}

	slog.Debug("Source fetched", "source", source.Name, "candidates", len(candidates))
	return candidates
}

// FetchAll collects candidates from every enabled source. Partial results
// from healthy sources flow through even when others fail.
func (f *Fetcher) FetchAll(ctx context.Context, sources []*news.Source) []news.Candidate {
	var all []news.Candidate
	for _, source := range sources {
		all = append(all, f.Fetch(ctx, source)...)
	}

	slog.Info("Sources scanned", "sources", len(sources), "candidates", len(all))
	return all
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
