package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/oshanw/pharmacare-api/internal/domain"
	"github.com/oshanw/pharmacare-api/internal/service"
)

type stubDetailService struct {
	calls int

	detail domain.PrescriptionDetail
	err    error
}

func (s *stubDetailService) GetDetailsByPrescription(ctx context.Context, prescriptionID uint) ([]domain.PrescriptionDetail, error) {
	s.calls++
	return []domain.PrescriptionDetail{s.detail}, s.err
}

func (s *stubDetailService) GetDetail(ctx context.Context, id uint) (domain.PrescriptionDetail, error) {
	s.calls++
	return s.detail, s.err
}

func (s *stubDetailService) CreateDetail(ctx context.Context, prescriptionID, medicationID uint, count int) (domain.PrescriptionDetail, error) {
	s.calls++
	return s.detail, s.err
}

func (s *stubDetailService) ResizeDetail(ctx context.Context, id uint, newCount int) (domain.PrescriptionDetail, error) {
	s.calls++
	return s.detail, s.err
}

func (s *stubDetailService) RemoveDetail(ctx context.Context, id uint, role domain.Role) (domain.PrescriptionDetail, error) {
	s.calls++
	return s.detail, s.err
}

func TestPrescriptionDetailHandler_RoleGate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	createBody := `{"prescription_id":1,"medication_id":2,"count":3}`

	tests := []struct {
		name       string
		role       domain.Role
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"cashier cannot create", domain.RoleCashier, http.MethodPost, "/prescription_details", createBody, http.StatusUnauthorized},
		{"owner may create", domain.RoleOwner, http.MethodPost, "/prescription_details", createBody, http.StatusCreated},
		{"cashier may resize", domain.RoleCashier, http.MethodPut, "/prescription_details/1", `{"count":2}`, http.StatusOK},
		{"cashier cannot delete", domain.RoleCashier, http.MethodDelete, "/prescription_details/1", "", http.StatusUnauthorized},
		{"manager may delete", domain.RoleManager, http.MethodDelete, "/prescription_details/1", "", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubDetailService{}
			h := NewPrescriptionDetailHandler(svc)

			router := gin.New()
			router.Use(setUser(domain.User{ID: 1, Role: tc.role}))
			router.POST("/prescription_details", h.HandleCreatePrescriptionDetail)
			router.PUT("/prescription_details/:id", h.HandleUpdatePrescriptionDetail)
			router.DELETE("/prescription_details/:id", h.HandleDeletePrescriptionDetail)

			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)

			if tc.wantStatus == http.StatusUnauthorized {
				assert.Zero(t, svc.calls)

				body := decodeEnvelope(t, w)
				assert.Nil(t, body["data"])
				assert.Equal(t, "Unauthorized Action", body["message"])
			}
		})
	}
}

func TestPrescriptionDetailHandler_InsufficientStock(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &stubDetailService{err: &service.InsufficientStockError{
		MedicationID: 2,
		Name:         "Paracetamol",
		Requested:    10,
		Available:    7,
	}}
	h := NewPrescriptionDetailHandler(svc)

	router := gin.New()
	router.Use(setUser(domain.User{ID: 1, Role: domain.RoleOwner}))
	router.POST("/prescription_details", h.HandleCreatePrescriptionDetail)

	req := httptest.NewRequest(http.MethodPost, "/prescription_details",
		strings.NewReader(`{"prescription_id":1,"medication_id":2,"count":10}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := decodeEnvelope(t, w)
	assert.Nil(t, body["data"])
	assert.Equal(t, "Paracetamol Medication Quantity Not Enough For This Prescription", body["message"])
}

func TestPrescriptionDetailHandler_ListRequiresPrescriptionID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &stubDetailService{}
	h := NewPrescriptionDetailHandler(svc)

	router := gin.New()
	router.GET("/prescription_details", h.HandleListPrescriptionDetails)

	req := httptest.NewRequest(http.MethodGet, "/prescription_details", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Zero(t, svc.calls)
}
