package models

// PermissionConfig is the two-tier entitlement matrix: for each plan, a map
// from capability key to whether that plan may use it. Admin users bypass the
// matrix entirely.
type PermissionConfig struct {
	Free map[string]bool `json:"free"`
	Pro  map[string]bool `json:"pro"`
}

// ForPlan returns the capability row for a plan, defaulting to free.
func (c PermissionConfig) ForPlan(plan Plan) map[string]bool {
	if plan == PlanPro {
		return c.Pro
	}
	return c.Free
}

// PermissionDefinition names a capability key so the admin console can list,
// add and remove capabilities independently of the matrix contents.
type PermissionDefinition struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}
