package report

type CashFlowResponse struct {
	From         string `json:"from"`
	To           string `json:"to"`
	TotalIncome  int64  `json:"total_income"`
	TotalExpense int64  `json:"total_expense"`
	Net          int64  `json:"net"`
}

type WorkerProductivity struct {
	WorkerID      string  `json:"worker_id"`
	WorkerName    string  `json:"worker_name"`
	DaysWorked    int     `json:"days_worked"`
	OvertimeHours float64 `json:"overtime_hours"`
	// Percentage of a 40-hour reference week.
	Productivity float64 `json:"productivity"`
}

type ProductivityResponse struct {
	Period  string               `json:"period"`
	Workers []WorkerProductivity `json:"workers"`
}

type ProjectBudgetUtilization struct {
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name"`
	Budget      int64  `json:"budget"`
	Spent       int64  `json:"spent"`
	// Spent as a percentage of budget; can exceed 100 on overruns.
	Utilization float64 `json:"utilization"`
}

type BudgetUtilizationResponse struct {
	Projects []ProjectBudgetUtilization `json:"projects"`
}
