// Package ident generates record ids on the controller side.
package ident

import (
	"github.com/google/uuid"
)

// Prefixes per entity kind.
const (
	PatientPrefix     = "p"
	DoctorPrefix      = "d"
	ClinicPrefix      = "c"
	AppointmentPrefix = "a"
	UserPrefix        = "u"
)

// New returns prefix followed by a UUIDv7. Version 7 ids are ordered by
// creation time, so ids also sort in creation order.
func New(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return prefix + "-" + id.String()
}
