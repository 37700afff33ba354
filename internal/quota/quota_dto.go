package quota

type QuotaStatusResponse struct {
	Used       int     `json:"used"`
	Max        int     `json:"max"`
	Remaining  int     `json:"remaining"`
	Percentage float64 `json:"percentage"`
	IsPremium  bool    `json:"is_premium"`
	ResetDate  string  `json:"reset_date"`
}
