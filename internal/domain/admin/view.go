package admin

import (
	"github.com/clinic/clinic/internal/platform/listview"
)

type ClinicColumn string

const (
	ClinicName  ClinicColumn = "name"
	ClinicCNPJ  ClinicColumn = "cnpj"
	ClinicPhone ClinicColumn = "phone"
	ClinicEmail ClinicColumn = "email"
)

var ClinicScreen = listview.Screen[ClinicColumn]{
	Name: "clinics",
	Defaults: listview.NewColumns(
		listview.Column[ClinicColumn]{Key: ClinicName, Label: "Name", Visible: true},
		listview.Column[ClinicColumn]{Key: ClinicCNPJ, Label: "CNPJ", Visible: true},
		listview.Column[ClinicColumn]{Key: ClinicPhone, Label: "Phone", Visible: true},
		listview.Column[ClinicColumn]{Key: ClinicEmail, Label: "Email", Visible: true},
	),
}

var clinicProjector = listview.Projector[*Clinic, ClinicColumn]{
	Search: func(c *Clinic) []string { return []string{c.Name, c.CNPJ} },
	ID:     func(c *Clinic) string { return c.ID },
	Cell: func(c *Clinic, k ClinicColumn) any {
		switch k {
		case ClinicName:
			return c.Name
		case ClinicCNPJ:
			return c.CNPJ
		case ClinicPhone:
			return c.Phone
		case ClinicEmail:
			return c.Email
		}
		return nil
	},
	EmptyMessage: "No clinics found.",
}
