package material

type CreateMaterialRequest struct {
	Name      string  `json:"name" binding:"required,max=120"`
	Unit      string  `json:"unit" binding:"required,max=20"`
	Stock     int64   `json:"stock" binding:"omitempty"`
	UnitPrice int64   `json:"unit_price" binding:"omitempty"`
	ProjectID *string `json:"project_id" binding:"omitempty,uuid"`
}

type StockMovementRequest struct {
	Quantity int64   `json:"quantity" binding:"required"`
	Note     *string `json:"note" binding:"omitempty,max=255"`
}

type MaterialResponse struct {
	ID        string  `json:"id"`
	CompanyID string  `json:"company_id"`
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	Stock     int64   `json:"stock"`
	UnitPrice int64   `json:"unit_price"`
	ProjectID *string `json:"project_id,omitempty"`
	CreatedBy string  `json:"created_by"`
}
