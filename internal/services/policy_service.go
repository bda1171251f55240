package services

import (
	"strings"

	"github.com/yassirrachad97/Factura-sub000/domain"
)

// PolicyServiceImpl implements domain.PolicyService. Policy subjects are the
// role names prefixed with "role_", matching what the enforcement middleware
// derives from the session claims.
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a new policy service
func NewPolicyService(enforcer domain.CasbinEnforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: enforcer}
}

// policySubject normalizes a role into a policy subject. Callers may pass the
// bare role or the prefixed subject; anything outside the known roles is
// rejected so a typo cannot create an unenforced rule.
func policySubject(role string) (string, error) {
	r := strings.TrimPrefix(role, "role_")
	if !domain.IsValidRole(r) {
		return "", domain.ErrInvalidRole
	}
	return "role_" + r, nil
}

// AddPolicy implements domain.PolicyService
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	sub, err := policySubject(role)
	if err != nil {
		return err
	}
	if _, err := p.enforcer.AddPolicy(sub, resource, action); err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// RemovePolicy implements domain.PolicyService
func (p *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	sub, err := policySubject(role)
	if err != nil {
		return err
	}
	if _, err := p.enforcer.RemovePolicy(sub, resource, action); err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	sub, err := policySubject(role)
	if err != nil {
		return false, err
	}
	return p.enforcer.Enforce(sub, resource, action)
}

// GetPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) GetPolicies() [][]string {
	policies, _ := p.enforcer.GetPolicy()
	return policies
}
