package identity

// Role is the marketplace actor role carried in auth tokens and recorded on
// order lifecycle transitions.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSupplier Role = "supplier"
	RoleReseller Role = "reseller"
	RoleCustomer Role = "customer"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSupplier, RoleReseller, RoleCustomer:
		return true
	}
	return false
}

// IsOperator reports whether the role may manage store configuration
// (coupons, shipping rates, discount rules).
func (r Role) IsOperator() bool {
	switch r {
	case RoleAdmin, RoleSupplier, RoleReseller:
		return true
	}
	return false
}

func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.IsValid()
}
