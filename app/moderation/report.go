package moderation

import (
	"fmt"
	"strings"
	"time"

	"github.com/umedrahimoff/techstan/app/news"
)

const reportFallbackCount = 10

// Report builds the on-demand text summary: today's and cumulative counters
// plus recently published items within the lookback window. Archive entries
// without a usable timestamp (legacy data) trigger a fallback to the last
// ten items regardless of time.
func (q *Queue) Report(hours int) string {
	if hours <= 0 {
		hours = 24
	}

	q.mu.Lock()
	stats := q.store.LoadStatistics()
	published := q.store.LoadPublished()
	q.mu.Unlock()

	recent := recentPublished(published, hours, q.now())

	var b strings.Builder
	fmt.Fprintf(&b, "<b>ОТЧЕТ ЗА ПОСЛЕДНИЕ %d ЧАСОВ</b>\n\n", hours)
	fmt.Fprintf(&b, "<b>Спарсено новостей:</b> %d\n", stats.ParsedToday)
	fmt.Fprintf(&b, "<b>Опубликовано:</b> %d\n", stats.PublishedToday)
	fmt.Fprintf(&b, "<b>Отклонено:</b> %d\n\n", stats.RejectedToday)

	b.WriteString("<b>ОБЩАЯ СТАТИСТИКА:</b>\n")
	fmt.Fprintf(&b, "Всего спарсено: %d\n", stats.TotalParsed)
	fmt.Fprintf(&b, "Всего опубликовано: %d\n", stats.TotalPublished)
	fmt.Fprintf(&b, "Всего отклонено: %d\n", stats.TotalRejected)

	if len(recent) > 0 {
		b.WriteString("\n<b>ПОСЛЕДНИЕ ОПУБЛИКОВАННЫЕ НОВОСТИ:</b>\n")
		start := 0
		if len(recent) > 5 {
			start = len(recent) - 5
		}
		for i, item := range recent[start:] {
			title := item.Title
			if title == "" {
				title = "Без заголовка"
			}
			fmt.Fprintf(&b, "%d. %s\n", i+1, title)
			if item.Link != "" {
				fmt.Fprintf(&b, "   %s\n", item.Link)
			}
		}
	}

	return b.String()
}

// recentPublished selects archive entries published within the window.
// When no entry carries a timestamp at all, the last entries are returned
// regardless of time. The fallback is deliberately all-or-nothing: a mixed
// archive keeps the window filter, so stray legacy entries cannot replace a
// time-filtered report with an unfiltered one.
func recentPublished(published []news.PublishedItem, hours int, now time.Time) []news.PublishedItem {
	windowStart := now.Add(-time.Duration(hours) * time.Hour)

	var recent []news.PublishedItem
	hasTimestamps := false
	for _, item := range published {
		if item.PublishedAt.IsZero() {
			continue
		}
		hasTimestamps = true
		if !item.PublishedAt.Before(windowStart) {
			recent = append(recent, item)
		}
	}

	if !hasTimestamps && len(published) > 0 {
		start := 0
		if len(published) > reportFallbackCount {
			start = len(published) - reportFallbackCount
		}
		return published[start:]
	}

	return recent
}
