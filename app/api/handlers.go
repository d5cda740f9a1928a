package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/umedrahimoff/techstan/app/cfg"
	"github.com/umedrahimoff/techstan/app/moderation"
	"github.com/umedrahimoff/techstan/app/news"
	"github.com/umedrahimoff/techstan/app/scrape"
	"github.com/umedrahimoff/techstan/app/tasks"
)

func NewHandler(queue *moderation.Queue, sources *news.SourceCache,
	fetcher scrape.CandidateFetcher, scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		queue:     queue,
		sources:   sources,
		fetcher:   fetcher,
		scheduler: scheduler,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   cfg.GetVersion(),
		"sources":   len(h.sources.GetSources()),
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	status := h.queue.Status()
	stats := status.Statistics

	c.JSON(http.StatusOK, map[string]interface{}{
		"pending":   status.PendingCount,
		"published": status.PublishedCount,
		"today": map[string]interface{}{
			"parsed":    stats.ParsedToday,
			"published": stats.PublishedToday,
			"rejected":  stats.RejectedToday,
		},
		"total": map[string]interface{}{
			"parsed":    stats.TotalParsed,
			"published": stats.TotalPublished,
			"rejected":  stats.TotalRejected,
		},
		"last_reset_date": stats.LastResetDate,
	})
}

func (h *Handler) GetReport(c *gin.Context) {
	hours := 24
	if raw := c.Query("hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "hours must be a positive integer"})
			return
		}
		hours = parsed
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, h.queue.Report(hours))
}

func (h *Handler) GetSources(c *gin.Context) {
	configs := h.sources.GetSources()

	sources := make([]map[string]interface{}, 0, len(configs))
	for _, source := range configs {
		sources = append(sources, map[string]interface{}{
			"name":    source.Name,
			"url":     source.URL,
			"kind":    source.Kind,
			"enabled": source.Settings.Enabled,
			"timeout": (time.Duration(source.Settings.Timeout) * time.Second).String(),
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"sources": sources,
		"total":   len(sources),
	})
}

func (h *Handler) PostScan(c *gin.Context) {
	task := tasks.NewScanSourcesTask(h.sources, h.fetcher, h.queue)
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Error enqueueing scan task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue scan task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Scan task enqueued successfully",
		"task": gin.H{
			"id":   task.ID,
			"type": task.Type,
		},
	})
}
