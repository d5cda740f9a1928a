package scrape

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/umedrahimoff/techstan/app/news"
)

// minTitleLength is the producer-side cutoff: shorter titles are navigation
// labels and section headers, not articles.
const minTitleLength = 10

var articleClassExpr = regexp.MustCompile(`(article|news|post|item|card)`)

func (f *Fetcher) fetchHTML(ctx context.Context, source *news.Source) ([]news.Candidate, error) {
	data, err := f.get(ctx, source.URL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return extractCandidates(doc, source), nil
}

// extractCandidates walks article-like blocks on a listing page and pulls a
// title and link out of each. Sites differ wildly, so the selection is
// heuristic: blocks whose class mentions article/news/post/item/card, with a
// headline-based fallback when nothing matches.
func extractCandidates(doc *goquery.Document, source *news.Source) []news.Candidate {
	blocks := doc.Find("article, div").FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		return articleClassExpr.MatchString(class)
	})

	if blocks.Length() == 0 {
		return extractFromHeadlines(doc, source)
	}

	seen := make(map[string]struct{})
	var candidates []news.Candidate

	blocks.Each(func(_ int, block *goquery.Selection) {
		candidate, ok := extractCandidate(block, source)
		if !ok {
			return
		}
		if _, dup := seen[candidate.Link]; dup {
			return
		}
		seen[candidate.Link] = struct{}{}
		candidates = append(candidates, candidate)
	})

	return candidates
}

// extractFromHeadlines is the fallback for pages without recognizable
// article blocks: treat each headline's closest container as a block.
func extractFromHeadlines(doc *goquery.Document, source *news.Source) []news.Candidate {
	seen := make(map[string]struct{})
	var candidates []news.Candidate

	doc.Find("h1, h2, h3, h4").Each(func(_ int, headline *goquery.Selection) {
		block := headline.Closest("article, div, a")
		if block.Length() == 0 {
			return
		}
		candidate, ok := extractCandidate(block, source)
		if !ok {
			return
		}
		if _, dup := seen[candidate.Link]; dup {
			return
		}
		seen[candidate.Link] = struct{}{}
		candidates = append(candidates, candidate)
	})

	return candidates
}

func extractCandidate(block *goquery.Selection, source *news.Source) (news.Candidate, bool) {
	title := ""
	titleNode := block.Find("h1, h2, h3, h4, a").First()
	if titleNode.Length() > 0 {
		title = strings.TrimSpace(titleNode.Text())
	}
	if utf8.RuneCountInString(title) < minTitleLength {
		return news.Candidate{}, false
	}

	link, ok := extractLink(block, titleNode)
	if !ok {
		return news.Candidate{}, false
	}
	link, ok = resolveLink(link, source.URL)
	if !ok {
		return news.Candidate{}, false
	}

	return news.Candidate{
		Title:  title,
		Link:   link,
		Source: source.Name,
	}, true
}

func extractLink(block, titleNode *goquery.Selection) (string, bool) {
	if href, ok := block.Find("a[href]").First().Attr("href"); ok && href != "" {
		return href, true
	}
	if goquery.NodeName(titleNode) == "a" {
		if href, ok := titleNode.Attr("href"); ok && href != "" {
			return href, true
		}
	}
	return "", false
}

// resolveLink turns site-relative hrefs into absolute ones and drops
// anything that is not an HTTP link (anchors, javascript:, mailto:).
func resolveLink(link, baseURL string) (string, bool) {
	if strings.HasPrefix(link, "/") {
		return strings.TrimSuffix(baseURL, "/") + link, true
	}
	if strings.HasPrefix(link, "http") {
		return link, true
	}
	return "", false
}
