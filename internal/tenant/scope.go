package tenant

import "gorm.io/gorm"

// Scope restricts any query to one contractor company. Every feature repo
// chains this so a tenant can never read another tenant's rows.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
