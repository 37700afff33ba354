package payroll

type GeneratePayrollRequest struct {
	WorkerID   string `json:"worker_id" binding:"required,uuid"`
	Period     string `json:"period" binding:"required"`
	DaysWorked int    `json:"days_worked"`
}

type PreviewPayrollRequest struct {
	DailyRate     int64 `json:"daily_rate" binding:"required"`
	DaysWorked    int   `json:"days_worked"`
	OvertimeTotal int64 `json:"overtime_total"`
}

type PayrollResponse struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"company_id"`
	WorkerID    string  `json:"worker_id"`
	Period      string  `json:"period"`
	DaysWorked  int     `json:"days_worked"`
	DailyRate   int64   `json:"daily_rate"`
	RegularPay  int64   `json:"regular_pay"`
	OvertimePay int64   `json:"overtime_pay"`
	TotalPay    int64   `json:"total_pay"`
	Status      string  `json:"status"`
	CreatedBy   string  `json:"created_by"`
	PaidAt      *string `json:"paid_at,omitempty"`
}
