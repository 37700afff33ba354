package transaction

type CreateTransactionRequest struct {
	Type        string  `json:"type" binding:"required"`
	Category    string  `json:"category" binding:"required,max=60"`
	Amount      int64   `json:"amount" binding:"required"`
	Status      string  `json:"status" binding:"omitempty"`
	Date        string  `json:"date" binding:"required"`
	ProjectID   *string `json:"project_id" binding:"omitempty,uuid"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

type UpdateTransactionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type TransactionQueryFilter struct {
	Type   string
	Status string
	From   string
	To     string
}

type TransactionResponse struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"company_id"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      int64   `json:"amount"`
	Status      string  `json:"status"`
	Date        string  `json:"date"`
	ProjectID   *string `json:"project_id,omitempty"`
	Description *string `json:"description,omitempty"`
	CreatedBy   string  `json:"created_by"`
}
