package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/umedrahimoff/techstan/app/news"
)

func testSource(name, url, kind string) *news.Source {
	return &news.Source{
		Name:     name,
		URL:      url,
		Kind:     kind,
		Settings: news.SourceSettings{Enabled: true, Timeout: 5},
	}
}

func TestFetcher_FetchHTML(t *testing.T) {
	page := `<!DOCTYPE html>
<html><body>
<div class="news-item">
  <h2>Казахстанский стартап привлек инвестиции в технологии</h2>
  <a href="/news/startup-investment">Читать</a>
</div>
<div class="news-item">
  <h2>Короткий</h2>
  <a href="/news/too-short">Читать</a>
</div>
<div class="sidebar">
  <p>Навигация без новостей</p>
</div>
<div class="article-card">
  <h3>Новая платформа для финтех компаний запущена</h3>
  <a href="https://external.example/full-link">Читать</a>
</div>
</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "test-agent" {
			t.Errorf("User-Agent = %q, expected test-agent", ua)
		}
		w.Write([]byte(page))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "test-agent")
	candidates := fetcher.Fetch(context.Background(), testSource("test", server.URL, "html"))

	if len(candidates) != 2 {
		t.Fatalf("Expected 2 candidates, got %d: %+v", len(candidates), candidates)
	}
	if candidates[0].Link != server.URL+"/news/startup-investment" {
		t.Errorf("Relative link not resolved: %q", candidates[0].Link)
	}
	if candidates[1].Link != "https://external.example/full-link" {
		t.Errorf("Absolute link altered: %q", candidates[1].Link)
	}
	for _, c := range candidates {
		if c.Source != "test" {
			t.Errorf("Source = %q, expected test", c.Source)
		}
	}
}

func TestFetcher_FetchHTML_HeadlineFallback(t *testing.T) {
	page := `<html><body>
<div class="wrapper">
  <h2><a href="/no-classes-here">Стартап без классов в верстке получил инвестиции</a></h2>
</div>
</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "test-agent")
	candidates := fetcher.Fetch(context.Background(), testSource("test", server.URL, "html"))

	if len(candidates) != 1 {
		t.Fatalf("Expected 1 candidate via headline fallback, got %d", len(candidates))
	}
}

func TestFetcher_FetchRSS(t *testing.T) {
	feed := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
<title>Test Feed</title>
<item>
  <title>Компания запускает новую технологическую платформу</title>
  <link>https://example.kz/platform</link>
</item>
<item>
  <title>Кратко</title>
  <link>https://example.kz/short</link>
</item>
</channel></rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feed))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "test-agent")
	candidates := fetcher.Fetch(context.Background(), testSource("feed", server.URL, "rss"))

	if len(candidates) != 1 {
		t.Fatalf("Expected 1 candidate, got %d: %+v", len(candidates), candidates)
	}
	if candidates[0].Link != "https://example.kz/platform" {
		t.Errorf("Link = %q", candidates[0].Link)
	}
}

func TestFetcher_SourceFailureYieldsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "test-agent")
	candidates := fetcher.Fetch(context.Background(), testSource("broken", server.URL, "html"))

	if len(candidates) != 0 {
		t.Errorf("Expected no candidates from a failing source, got %d", len(candidates))
	}
}

func TestFetcher_FetchAll_PartialResults(t *testing.T) {
	okPage := `<html><body><div class="news">
<h2>Стартап привлек инвестиции в новые технологии</h2>
<a href="/ok">Читать</a>
</div></body></html>`

	okServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(okPage))
	}))
	defer okServer.Close()

	slowServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer slowServer.Close()

	slow := testSource("slow", slowServer.URL, "html")
	slow.Settings.Timeout = 1

	fetcher := NewFetcher(nil, "test-agent")
	candidates := fetcher.FetchAll(context.Background(), []*news.Source{
		slow,
		testSource("ok", okServer.URL, "html"),
	})

	if len(candidates) != 1 {
		t.Fatalf("Expected 1 candidate from the healthy source, got %d", len(candidates))
	}
	if candidates[0].Source != "ok" {
		t.Errorf("Candidate source = %q, expected ok", candidates[0].Source)
	}
}
