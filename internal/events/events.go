package events

var (
	ListingScoredTopic     = "ListingScoredEvent"
	ManualApplicationTopic = "ManualApplicationQueuedEvent"
	RunCompletedTopic      = "PipelineRunCompletedEvent"
)

// ListingScored is published for every listing that survives filtering.
type ListingScored struct {
	Title       string
	Company     string
	Url         string
	Score       float64
	Explanation string
}

// ManualApplicationQueued is published when a listing was routed to the
// manual-application store.
type ManualApplicationQueued struct {
	Title   string
	Company string
	Url     string
	Reason  string
}

// RunCompleted summarizes one pipeline run.
type RunCompleted struct {
	Fetched int
	Scored  int
	Manual  int
}
