package enum

import (
	"encoding/json"
	"fmt"
)

// Role is the operating role of a store user
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStock   Role = "STOCK"
	RoleCashier Role = "CASHIER"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStock, RoleCashier:
		return true
	}
	return false
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	role := Role(str)
	if !role.IsValid() {
		return fmt.Errorf("unknown role %q", str)
	}
	*r = role
	return nil
}
