// Package address holds the postal address shared by patients and clinics.
package address

// Address is stored as a value object. The shape is fixed but no field is
// required; only the owning record's identifying fields are.
type Address struct {
	Zip          string `json:"zip"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}
