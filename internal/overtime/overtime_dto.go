package overtime

type CreateOvertimeRequest struct {
	WorkerID    string  `json:"worker_id" binding:"required,uuid"`
	Date        string  `json:"date" binding:"required"`
	Hours       float64 `json:"hours" binding:"required"`
	HourlyRate  int64   `json:"hourly_rate" binding:"required"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

type UpdateOvertimeRequest struct {
	Date        string  `json:"date" binding:"required"`
	Hours       float64 `json:"hours" binding:"required"`
	HourlyRate  int64   `json:"hourly_rate" binding:"required"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

type OvertimeResponse struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"company_id"`
	WorkerID    string  `json:"worker_id"`
	Date        string  `json:"date"`
	Period      string  `json:"period"`
	Hours       float64 `json:"hours"`
	HourlyRate  int64   `json:"hourly_rate"`
	Total       int64   `json:"total"`
	Description *string `json:"description,omitempty"`
	CreatedBy   string  `json:"created_by"`
}
