package tasks

// TaskSchedulerInterface defines the interface for background task scheduling.
// Used by the main application to manage the periodic scan and report cycles.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// ReportSender delivers the periodic digest to the moderation channel.
type ReportSender interface {
	SendReport(text string) error
}
