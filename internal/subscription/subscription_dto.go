package subscription

type UpgradeRequest struct {
	DurationMonths int `json:"duration_months" binding:"required,min=1,max=12"`
}

type SubscriptionResponse struct {
	ID        string  `json:"id"`
	CompanyID string  `json:"company_id"`
	Tier      string  `json:"tier"`
	IsActive  bool    `json:"is_active"`
	StartedAt *string `json:"started_at,omitempty"`
	ExpiresAt *string `json:"expires_at,omitempty"`
}
