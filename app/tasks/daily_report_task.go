package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/umedrahimoff/techstan/app/moderation"
)

// DailyReportTask sends the periodic statistics digest to the moderation
// channel.
type DailyReportTask struct {
	Task
	queue  *moderation.Queue
	sender ReportSender
	hours  int
}

func NewDailyReportTask(queue *moderation.Queue, sender ReportSender, hours int) *DailyReportTask {
	return &DailyReportTask{
		Task:   NewTask(TaskTypeDailyReport),
		queue:  queue,
		sender: sender,
		hours:  hours,
	}
}

func (t *DailyReportTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	report := t.queue.Report(t.hours)
	if err := t.sender.SendReport(report); err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}

	slog.Info("Task completed",
		"type", "DailyReport",
		"duration", t.GetDuration(),
		"hours", t.hours)

	return nil
}
