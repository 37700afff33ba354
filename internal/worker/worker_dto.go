package worker

type CreateWorkerRequest struct {
	Name      string  `json:"name" binding:"required"`
	Phone     *string `json:"phone"`
	Skill     string  `json:"skill"`
	DailyRate int64   `json:"daily_rate" binding:"required"`
	JoinDate  string  `json:"join_date" binding:"required"`
}

type UpdateWorkerRequest struct {
	Name      string  `json:"name" binding:"required"`
	Phone     *string `json:"phone"`
	Skill     string  `json:"skill"`
	DailyRate int64   `json:"daily_rate" binding:"required"`
}

type WorkerResponse struct {
	ID           string  `json:"id"`
	CompanyID    string  `json:"company_id"`
	WorkerNumber string  `json:"worker_number"`
	Name         string  `json:"name"`
	Phone        *string `json:"phone,omitempty"`
	Skill        string  `json:"skill"`
	DailyRate    int64   `json:"daily_rate"`
	IsActive     bool    `json:"is_active"`
	JoinDate     string  `json:"join_date"`
}
