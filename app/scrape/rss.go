package scrape

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mmcdole/gofeed"

	"github.com/umedrahimoff/techstan/app/news"
)

func (f *Fetcher) fetchRSS(ctx context.Context, source *news.Source) ([]news.Candidate, error) {
	data, err := f.get(ctx, source.URL)
	if err != nil {
		return nil, err
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	candidates := make([]news.Candidate, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		title := strings.TrimSpace(item.Title)
		if utf8.RuneCountInString(title) < minTitleLength {
			continue
		}
		link := strings.TrimSpace(item.Link)
		if !strings.HasPrefix(link, "http") {
			continue
		}

		candidates = append(candidates, news.Candidate{
			Title:  title,
			Link:   link,
			Source: source.Name,
		})
	}

	return candidates, nil
}
