package auth

// Role names carried in JWT claims. Authentication itself happens upstream;
// this service only consumes the authenticated principal.
const (
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
)

// Principal is the authenticated caller of an operation.
type Principal struct {
	AccountID string
	Role      string
}
