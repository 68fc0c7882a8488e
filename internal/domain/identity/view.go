package identity

import (
	"github.com/clinic/clinic/internal/platform/listview"
)

type PatientColumn string

const (
	PatientFullName PatientColumn = "full_name"
	PatientCPF      PatientColumn = "cpf"
	PatientPhone    PatientColumn = "phone"
	PatientEmail    PatientColumn = "email"
)

var PatientScreen = listview.Screen[PatientColumn]{
	Name: "patients",
	Defaults: listview.NewColumns(
		listview.Column[PatientColumn]{Key: PatientFullName, Label: "Full name", Visible: true},
		listview.Column[PatientColumn]{Key: PatientCPF, Label: "CPF", Visible: true},
		listview.Column[PatientColumn]{Key: PatientPhone, Label: "Phone", Visible: true},
		listview.Column[PatientColumn]{Key: PatientEmail, Label: "Email", Visible: true},
	),
}

var patientProjector = listview.Projector[*Patient, PatientColumn]{
	Search: func(p *Patient) []string { return []string{p.FullName, p.CPF} },
	ID:     func(p *Patient) string { return p.ID },
	Cell: func(p *Patient, k PatientColumn) any {
		switch k {
		case PatientFullName:
			return p.FullName
		case PatientCPF:
			return p.CPF
		case PatientPhone:
			return p.Phone
		case PatientEmail:
			return p.Email
		}
		return nil
	},
	EmptyMessage: "No patients found.",
}

type DoctorColumn string

const (
	DoctorFullName  DoctorColumn = "full_name"
	DoctorSpecialty DoctorColumn = "specialty"
	DoctorCRM       DoctorColumn = "crm"
	DoctorPhone     DoctorColumn = "phone"
)

var DoctorScreen = listview.Screen[DoctorColumn]{
	Name: "doctors",
	Defaults: listview.NewColumns(
		listview.Column[DoctorColumn]{Key: DoctorFullName, Label: "Full name", Visible: true},
		listview.Column[DoctorColumn]{Key: DoctorSpecialty, Label: "Specialty", Visible: true},
		listview.Column[DoctorColumn]{Key: DoctorCRM, Label: "CRM", Visible: true},
		listview.Column[DoctorColumn]{Key: DoctorPhone, Label: "Phone", Visible: true},
	),
}

var doctorProjector = listview.Projector[*Doctor, DoctorColumn]{
	Search: func(d *Doctor) []string { return []string{d.FullName, d.Specialty} },
	ID:     func(d *Doctor) string { return d.ID },
	Cell: func(d *Doctor, k DoctorColumn) any {
		switch k {
		case DoctorFullName:
			return d.FullName
		case DoctorSpecialty:
			return d.Specialty
		case DoctorCRM:
			return d.CRM
		case DoctorPhone:
			return d.Phone
		}
		return nil
	},
	EmptyMessage: "No doctors found.",
}
