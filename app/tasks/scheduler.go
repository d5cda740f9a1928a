package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/umedrahimoff/techstan/app/cfg"
	"github.com/umedrahimoff/techstan/app/moderation"
	"github.com/umedrahimoff/techstan/app/news"
	"github.com/umedrahimoff/techstan/app/scrape"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	sources         *news.SourceCache
	fetcher         scrape.CandidateFetcher
	queue           *moderation.Queue
	reportSender    ReportSender
	startupDelay    time.Duration
	scanInterval    time.Duration
	reportInterval  time.Duration
	failureCooldown time.Duration
	workerCount     int
	ctx             context.Context
	cancel          context.CancelFunc
	wg              sync.WaitGroup
	taskQueue       chan TaskInterface
}

func NewScheduler(sources *news.SourceCache, fetcher scrape.CandidateFetcher,
	queue *moderation.Queue, reportSender ReportSender) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		sources:         sources,
		fetcher:         fetcher,
		queue:           queue,
		reportSender:    reportSender,
		startupDelay:    time.Duration(cfg.StartupDelay) * time.Second,
		scanInterval:    time.Duration(cfg.CheckInterval) * time.Minute,
		reportInterval:  time.Duration(cfg.ReportInterval) * time.Hour,
		failureCooldown: time.Duration(cfg.FailureCooldown) * time.Second,
		workerCount:     1,
		ctx:             ctx,
		cancel:          cancel,
		taskQueue:       make(chan TaskInterface, 30),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		// The first scan waits for the startup delay so the Telegram bot
		// is polling before moderation cards go out.
		startup := time.NewTimer(s.startupDelay)
		defer startup.Stop()

		select {
		case <-s.ctx.Done():
			return
		case <-startup.C:
			s.enqueueScanTask()
		}

		ticker := time.NewTicker(s.scanInterval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueScanTask()
			}
		}
	}()

	if s.reportInterval > 0 {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()

			ticker := time.NewTicker(s.reportInterval)
			defer ticker.Stop()

			for {
				select {
				case <-s.ctx.Done():
					return
				case <-ticker.C:
					s.enqueueReportTask()
				}
			}
		}()
	} else {
		slog.Debug("Periodic report disabled")
	}
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueScanTask() {
	task := NewScanSourcesTask(s.sources, s.fetcher, s.queue)
	if err := s.EnqueueTask(task); err != nil {
		slog.Warn("Failed to enqueue ScanSourcesTask", "error", err)
	}
}

func (s *Scheduler) enqueueReportTask() {
	hours := int(s.reportInterval / time.Hour)
	task := NewDailyReportTask(s.queue, s.reportSender, hours)
	if err := s.EnqueueTask(task); err != nil {
		slog.Warn("Failed to enqueue DailyReportTask", "error", err)
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > s.failureCooldown {
				retryDelay = s.failureCooldown
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			// The retry goroutine joins the WaitGroup so Stop cannot close
			// the task queue underneath a pending re-enqueue.
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()

				timer := time.NewTimer(retryDelay)
				defer timer.Stop()

				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				case <-timer.C:
				}

				if retryErr := s.EnqueueTask(task); retryErr != nil {
					slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
