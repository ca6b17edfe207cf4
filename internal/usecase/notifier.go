package usecase

// Notifier pushes a typed event to live subscribers.
type Notifier interface {
	Notify(eventType string, payload any)
}

const (
	EventJobsImported = "jobs_imported"
	EventIndexSynced  = "index_synced"
)
