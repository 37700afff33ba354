package events

import "time"

const KasbonDeductedTopic = "mandor.kasbon.settlement.v1"

// KasbonDeductedEvent is emitted when an approved kasbon is matched to a
// pending payroll and settled by deduction.
type KasbonDeductedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	KasbonID   string    `json:"kasbon_id"`
	PayrollID  string    `json:"payroll_id"`
	WorkerID   string    `json:"worker_id"`
	CompanyID  string    `json:"company_id"`
	Amount     int64     `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}
