package admin

import (
	"github.com/clinic/clinic/internal/domain/address"
)

// Clinic is a care facility identified by its CNPJ.
type Clinic struct {
	ID      string          `json:"id"`
	Name    string          `json:"name" validate:"required"`
	CNPJ    string          `json:"cnpj" validate:"required"`
	Phone   string          `json:"phone"`
	Email   string          `json:"email" validate:"omitempty,email"`
	Address address.Address `json:"address"`
}
