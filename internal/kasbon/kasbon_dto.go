package kasbon

type SubmitKasbonRequest struct {
	WorkerID string `json:"worker_id" binding:"required,uuid"`
	Date     string `json:"date" binding:"required"`
	Amount   int64  `json:"amount" binding:"required"`
	Reason   string `json:"reason" binding:"required,max=255"`
}

type RejectKasbonRequest struct {
	Reason string `json:"reason" binding:"required,max=255"`
}

type KasbonResponse struct {
	ID                  string  `json:"id"`
	CompanyID           string  `json:"company_id"`
	WorkerID            string  `json:"worker_id"`
	KasbonNumber        string  `json:"kasbon_number"`
	Date                string  `json:"date"`
	Amount              int64   `json:"amount"`
	Reason              string  `json:"reason"`
	Status              string  `json:"status"`
	ApprovedBy          *string `json:"approved_by,omitempty"`
	ApprovedAt          *string `json:"approved_at,omitempty"`
	RejectedBy          *string `json:"rejected_by,omitempty"`
	RejectedAt          *string `json:"rejected_at,omitempty"`
	RejectedReason      *string `json:"rejected_reason,omitempty"`
	DeductedFromPayroll *string `json:"deducted_from_payroll,omitempty"`
	SettledAt           *string `json:"settled_at,omitempty"`
	CreatedBy           string  `json:"created_by"`
}
