package enums

import "fmt"

// BillerRole distinguishes counter staff from managers who edit the menu
// and discount codes.
type BillerRole string

const (
	BillerRoleStaff   BillerRole = "staff"
	BillerRoleManager BillerRole = "manager"
)

var validBillerRoles = []BillerRole{
	BillerRoleStaff,
	BillerRoleManager,
}

// String implements fmt.Stringer.
func (r BillerRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known BillerRole.
func (r BillerRole) IsValid() bool {
	for _, candidate := range validBillerRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseBillerRole converts raw input into a BillerRole.
func ParseBillerRole(value string) (BillerRole, error) {
	for _, candidate := range validBillerRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid biller role %q", value)
}
