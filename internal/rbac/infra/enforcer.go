package infra

import "github.com/casbin/casbin/v2"

// NewEnforcer loads the RBAC model only; the policy lives in the
// database and is fed to Enforce per request.
func NewEnforcer(modelPath string) (*casbin.Enforcer, error) {
	return casbin.NewEnforcer(modelPath)
}
