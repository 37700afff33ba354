package project

type CreateProjectRequest struct {
	Name      string  `json:"name" binding:"required,max=120"`
	Client    *string `json:"client" binding:"omitempty,max=120"`
	Location  *string `json:"location" binding:"omitempty,max=255"`
	Budget    int64   `json:"budget" binding:"required"`
	StartDate *string `json:"start_date" binding:"omitempty"`
	EndDate   *string `json:"end_date" binding:"omitempty"`
}

type UpdateProjectRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=120"`
	Client    *string `json:"client" binding:"omitempty,max=120"`
	Location  *string `json:"location" binding:"omitempty,max=255"`
	Budget    *int64  `json:"budget" binding:"omitempty"`
	Status    *string `json:"status" binding:"omitempty"`
	StartDate *string `json:"start_date" binding:"omitempty"`
	EndDate   *string `json:"end_date" binding:"omitempty"`
}

type ProjectResponse struct {
	ID        string  `json:"id"`
	CompanyID string  `json:"company_id"`
	Name      string  `json:"name"`
	Client    *string `json:"client,omitempty"`
	Location  *string `json:"location,omitempty"`
	Budget    int64   `json:"budget"`
	Status    string  `json:"status"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	CreatedBy string  `json:"created_by"`
}
