package validation

import (
	"errors"
	"strings"
	"testing"
)

type slot struct {
	Day   string `json:"day" validate:"required,oneof=monday tuesday"`
	Start string `json:"start" validate:"required,hhmm"`
}

type form struct {
	Name  string `json:"full_name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Born  string `json:"birth_date" validate:"required,isodate"`
	Slots []slot `json:"slots" validate:"dive"`
}

func TestStruct_Valid(t *testing.T) {
	f := form{
		Name:  "Ana",
		Email: "ana@example.com",
		Born:  "1985-05-20",
		Slots: []slot{{Day: "monday", Start: "08:00"}},
	}
	if err := Struct(f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(form{Born: "1985-05-20"})
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if len(verr.Fields) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(verr.Fields))
	}
	if verr.Fields[0].Field != "full_name" || verr.Fields[0].Message != "is required" {
		t.Errorf("unexpected field error: %+v", verr.Fields[0])
	}
}

func TestStruct_NestedPaths(t *testing.T) {
	err := Struct(form{
		Name:  "Ana",
		Born:  "1985-05-20",
		Slots: []slot{{Day: "monday", Start: "8h"}, {Day: "friday", Start: "09:00"}},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "slots[0].start") {
		t.Errorf("expected slots[0].start in %q", msg)
	}
	if !strings.Contains(msg, "slots[1].day must be one of: monday, tuesday") {
		t.Errorf("expected oneof message in %q", msg)
	}
}

func TestStruct_Formats(t *testing.T) {
	tests := []struct {
		name string
		in   form
	}{
		{"bad email", form{Name: "A", Born: "1985-05-20", Email: "not-an-email"}},
		{"bad date", form{Name: "A", Born: "20/05/1985"}},
		{"bad clock", form{Name: "A", Born: "1985-05-20", Slots: []slot{{Day: "monday", Start: "25:00"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Struct(tt.in); !IsValidationError(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestNew(t *testing.T) {
	err := New("email", "is already registered")
	if err.Error() != "email is already registered" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
