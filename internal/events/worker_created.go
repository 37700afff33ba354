package events

import "time"

const WorkerCreatedTopic = "mandor.worker.lifecycle.v1"

type WorkerCreatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	WorkerID   string    `json:"worker_id"`
	CompanyID  string    `json:"company_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
