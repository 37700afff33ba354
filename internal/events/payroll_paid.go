package events

import "time"

const PayrollPaidTopic = "mandor.payroll.payment.v1"

type PayrollPaidEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	PayrollID  string    `json:"payroll_id"`
	WorkerID   string    `json:"worker_id"`
	CompanyID  string    `json:"company_id"`
	Period     string    `json:"period"`
	TotalPay   int64     `json:"total_pay"`
	OccurredAt time.Time `json:"occurred_at"`
}
