package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/internal/platform/listview"
)

type mockPrefs struct {
	hidden map[string]map[string]bool
}

func newMockPrefs() *mockPrefs {
	return &mockPrefs{hidden: make(map[string]map[string]bool)}
}

func (m *mockPrefs) HiddenColumns(_ context.Context, userID, screen string) (map[string]bool, error) {
	return m.hidden[userID+"/"+screen], nil
}

func (m *mockPrefs) SetColumnVisible(_ context.Context, userID, screen, key string, visible bool) error {
	k := userID + "/" + screen
	if m.hidden[k] == nil {
		m.hidden[k] = make(map[string]bool)
	}
	m.hidden[k][key] = !visible
	return nil
}

func newTestHandler() (*Handler, *echo.Echo) {
	return NewHandler(newTestService(), newMockPrefs()), echo.New()
}

func newContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req = req.WithContext(auth.WithSession(req.Context(), &auth.Session{UserID: "u-1"}))
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func assertHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	if he.Code != code {
		t.Errorf("expected %d, got %d", code, he.Code)
	}
}

const patientBody = `{
	"full_name": "Ana Silva",
	"cpf": "111.222.333-44",
	"birth_date": "1985-05-15",
	"email": "ana.silva@email.com",
	"address": {"zip": "01000-000", "street": "Rua das Flores", "number": "123",
		"neighborhood": "Centro", "city": "São Paulo", "state": "SP"}
}`

func TestHandler_CreatePatient(t *testing.T) {
	h, e := newTestHandler()
	c, rec := newContext(e, http.MethodPost, "/api/v1/patients", patientBody)

	if err := h.CreatePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	var p Patient
	json.Unmarshal(rec.Body.Bytes(), &p)
	if p.FullName != "Ana Silva" || p.ID == "" {
		t.Errorf("unexpected patient %+v", p)
	}
}

func TestHandler_CreatePatient_MissingFields(t *testing.T) {
	h, e := newTestHandler()
	c, _ := newContext(e, http.MethodPost, "/api/v1/patients", `{"full_name":"Ana Silva"}`)
	assertHTTPError(t, h.CreatePatient(c), http.StatusBadRequest)
}

func TestHandler_CreatePatient_MalformedJSON(t *testing.T) {
	h, e := newTestHandler()
	c, _ := newContext(e, http.MethodPost, "/api/v1/patients", `{"full_name":`)
	assertHTTPError(t, h.CreatePatient(c), http.StatusBadRequest)
}

func TestHandler_GetPatient(t *testing.T) {
	h, e := newTestHandler()
	p := validPatient("Ana Silva")
	h.svc.CreatePatient(context.Background(), p)

	c, rec := newContext(e, http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues(p.ID)
	if err := h.GetPatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_GetPatient_NotFound(t *testing.T) {
	h, e := newTestHandler()
	c, _ := newContext(e, http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("p-missing")
	assertHTTPError(t, h.GetPatient(c), http.StatusNotFound)
}

func TestHandler_UpdatePatient_UsesPathID(t *testing.T) {
	h, e := newTestHandler()
	p := validPatient("Ana Silva")
	h.svc.CreatePatient(context.Background(), p)

	body := strings.Replace(patientBody, "Ana Silva", "Ana Souza", 1)
	c, rec := newContext(e, http.MethodPut, "/", body)
	c.SetParamNames("id")
	c.SetParamValues(p.ID)
	if err := h.UpdatePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	got, _ := h.svc.GetPatient(context.Background(), p.ID)
	if got.FullName != "Ana Souza" {
		t.Errorf("expected Ana Souza, got %s", got.FullName)
	}
}

func TestHandler_UpdatePatient_UnknownID(t *testing.T) {
	h, e := newTestHandler()
	c, _ := newContext(e, http.MethodPut, "/", patientBody)
	c.SetParamNames("id")
	c.SetParamValues("p-missing")
	assertHTTPError(t, h.UpdatePatient(c), http.StatusNotFound)
}

func TestHandler_DeletePatient(t *testing.T) {
	h, e := newTestHandler()
	p := validPatient("Ana Silva")
	h.svc.CreatePatient(context.Background(), p)

	c, rec := newContext(e, http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues(p.ID)
	if err := h.DeletePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}

	c, _ = newContext(e, http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues(p.ID)
	assertHTTPError(t, h.DeletePatient(c), http.StatusNotFound)
}

type listBody struct {
	Data struct {
		Columns []listview.Column[PatientColumn] `json:"columns"`
		Rows    []listview.Row                   `json:"rows"`
		Empty   bool                             `json:"empty"`
	} `json:"data"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

func TestHandler_ListPatients_SearchAndPaging(t *testing.T) {
	h, e := newTestHandler()
	ctx := context.Background()
	for _, name := range []string{"Ana Silva", "Mariana Alves", "Bruno Costa"} {
		h.svc.CreatePatient(ctx, validPatient(name))
	}

	c, rec := newContext(e, http.MethodGet, "/api/v1/patients?q=ANA&limit=1", "")
	if err := h.ListPatients(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var body listBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 2 || !body.HasMore {
		t.Errorf("expected 2 matches with more pages, got total=%d has_more=%v", body.Total, body.HasMore)
	}
	if len(body.Data.Rows) != 1 || body.Data.Rows[0].Cells["full_name"] != "Ana Silva" {
		t.Errorf("unexpected rows %+v", body.Data.Rows)
	}
}

func TestHandler_ListPatients_Empty(t *testing.T) {
	h, e := newTestHandler()
	c, rec := newContext(e, http.MethodGet, "/api/v1/patients?q=zzz", "")
	if err := h.ListPatients(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var body listBody
	json.Unmarshal(rec.Body.Bytes(), &body)
	if !body.Data.Empty {
		t.Error("expected empty indicator")
	}
}

func TestHandler_TogglePatientColumn(t *testing.T) {
	h, e := newTestHandler()
	h.svc.CreatePatient(context.Background(), validPatient("Ana Silva"))

	c, _ := newContext(e, http.MethodPost, "/", "")
	c.SetParamNames("key")
	c.SetParamValues("email")
	if err := h.TogglePatientColumn(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, rec := newContext(e, http.MethodGet, "/api/v1/patients", "")
	h.ListPatients(c)
	var body listBody
	json.Unmarshal(rec.Body.Bytes(), &body)
	if len(body.Data.Columns) != 3 {
		t.Errorf("expected 3 visible columns, got %d", len(body.Data.Columns))
	}
	if _, ok := body.Data.Rows[0].Cells["email"]; ok {
		t.Error("email cell should be hidden")
	}
}

func TestHandler_TogglePatientColumn_UnknownKey(t *testing.T) {
	h, e := newTestHandler()
	c, _ := newContext(e, http.MethodPost, "/", "")
	c.SetParamNames("key")
	c.SetParamValues("address")
	assertHTTPError(t, h.TogglePatientColumn(c), http.StatusBadRequest)
}

func TestHandler_CreateDoctor(t *testing.T) {
	h, e := newTestHandler()
	body := `{"full_name":"Dr. Carlos Ferreira","crm":"12345-SP","specialty":"Cardiologia",
		"availability":[{"day_of_week":"monday","start_time":"08:00","end_time":"12:00"}]}`
	c, rec := newContext(e, http.MethodPost, "/api/v1/doctors", body)
	if err := h.CreateDoctor(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	var d Doctor
	json.Unmarshal(rec.Body.Bytes(), &d)
	if len(d.Availability) != 1 || d.Availability[0].StartTime != "08:00" {
		t.Errorf("unexpected doctor %+v", d)
	}
}

func TestHandler_CreateDoctor_BadSlot(t *testing.T) {
	h, e := newTestHandler()
	body := `{"full_name":"Dr. X","crm":"1","specialty":"Y",
		"availability":[{"day_of_week":"someday","start_time":"08:00","end_time":"12:00"}]}`
	c, _ := newContext(e, http.MethodPost, "/api/v1/doctors", body)
	assertHTTPError(t, h.CreateDoctor(c), http.StatusBadRequest)
}

func TestHandler_DoctorColumns(t *testing.T) {
	h, e := newTestHandler()
	c, rec := newContext(e, http.MethodGet, "/api/v1/doctors/columns", "")
	if err := h.DoctorColumns(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var cols []listview.Column[DoctorColumn]
	json.Unmarshal(rec.Body.Bytes(), &cols)
	if len(cols) != 4 || cols[0].Key != DoctorFullName {
		t.Errorf("unexpected columns %+v", cols)
	}
}
