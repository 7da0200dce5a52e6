package models

// Role controls admin override in permission checks.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Plan selects the row of the entitlement matrix a user is checked against.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// User represents an account. There is no real authentication: accounts are
// created by filling the login form and identified by their ID afterwards.
// Role and Plan jointly determine entitlement.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	Plan      Plan   `json:"plan"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Company   string `json:"company,omitempty"`
	CreatedAt string `json:"created_at"`
}
