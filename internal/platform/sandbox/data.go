package sandbox

import (
	"time"

	"github.com/clinic/clinic/internal/domain/address"
	"github.com/clinic/clinic/internal/domain/admin"
	"github.com/clinic/clinic/internal/domain/identity"
	"github.com/clinic/clinic/internal/domain/scheduling"
)

func samplePatients() []identity.Patient {
	return []identity.Patient{
		{
			ID: "p1", FullName: "Ana Silva", CPF: "111.222.333-44", BirthDate: "1985-05-20",
			Phone: "(11) 98765-4321", Email: "ana.silva@example.com",
			Address: address.Address{Zip: "01000-000", Street: "Rua A", Number: "123",
				Neighborhood: "Centro", City: "São Paulo", State: "SP"},
		},
		{
			ID: "p2", FullName: "Bruno Costa", CPF: "222.333.444-55", BirthDate: "1990-11-15",
			Phone: "(21) 91234-5678", Email: "bruno.costa@example.com",
			Address: address.Address{Zip: "20000-000", Street: "Av. B", Number: "456",
				Neighborhood: "Copacabana", City: "Rio de Janeiro", State: "RJ"},
		},
	}
}

func sampleDoctors() []identity.Doctor {
	return []identity.Doctor{
		{
			ID: "d1", FullName: "Dr. Carlos Ferreira", CRM: "12345-SP", Specialty: "Cardiologia",
			Phone: "(11) 99999-8888", Email: "carlos.ferreira@clinic.com",
			Availability: []identity.Availability{
				{DayOfWeek: identity.Monday, StartTime: "08:00", EndTime: "12:00"},
				{DayOfWeek: identity.Wednesday, StartTime: "14:00", EndTime: "18:00"},
			},
		},
		{
			ID: "d2", FullName: "Dra. Fernanda Lima", CRM: "54321-RJ", Specialty: "Dermatologia",
			Phone: "(21) 98888-7777", Email: "fernanda.lima@clinic.com",
			Availability: []identity.Availability{
				{DayOfWeek: identity.Tuesday, StartTime: "09:00", EndTime: "17:00"},
				{DayOfWeek: identity.Thursday, StartTime: "09:00", EndTime: "17:00"},
			},
		},
	}
}

func sampleClinics() []admin.Clinic {
	return []admin.Clinic{
		{
			ID: "c1", Name: "Clínica Saúde Plena", CNPJ: "12.345.678/0001-99",
			Phone: "(11) 5555-1111", Email: "contato@saudeplena.com",
			Address: address.Address{Zip: "01234-567", Street: "Avenida Brasil", Number: "1000",
				Neighborhood: "Jardins", City: "São Paulo", State: "SP"},
		},
		{
			ID: "c2", Name: "Hospital Bem Estar", CNPJ: "98.765.432/0001-11",
			Phone: "(21) 5555-2222", Email: "contato@hospitalbemestar.com",
			Address: address.Address{Zip: "22345-890", Street: "Rua da Praia", Number: "500",
				Neighborhood: "Botafogo", City: "Rio de Janeiro", State: "RJ"},
		},
	}
}

// sampleAppointments places two visits in the coming days and one in the
// past, relative to now.
func sampleAppointments(now time.Time) []scheduling.Appointment {
	day := 24 * time.Hour
	return []scheduling.Appointment{
		{ID: "a1", PatientID: "p1", DoctorID: "d1", DateTime: now.Add(day).UTC(), Status: scheduling.StatusScheduled},
		{ID: "a2", PatientID: "p2", DoctorID: "d2", DateTime: now.Add(2 * day).UTC(), Status: scheduling.StatusScheduled},
		{ID: "a3", PatientID: "p1", DoctorID: "d2", DateTime: now.Add(-5 * day).UTC(), Status: scheduling.StatusCompleted},
	}
}
