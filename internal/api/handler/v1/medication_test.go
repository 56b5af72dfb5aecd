package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshanw/pharmacare-api/internal/api/middleware"
	"github.com/oshanw/pharmacare-api/internal/domain"
	"github.com/oshanw/pharmacare-api/internal/service"
)

type stubMedicationService struct {
	calls int

	medication domain.Medication
	err        error
}

func (s *stubMedicationService) GetMedications(ctx context.Context) ([]domain.Medication, error) {
	s.calls++
	return []domain.Medication{s.medication}, s.err
}

func (s *stubMedicationService) GetMedication(ctx context.Context, id uint) (domain.Medication, error) {
	s.calls++
	return s.medication, s.err
}

func (s *stubMedicationService) CreateMedication(ctx context.Context, medication domain.Medication) (domain.Medication, error) {
	s.calls++
	return s.medication, s.err
}

func (s *stubMedicationService) UpdateMedication(ctx context.Context, medication domain.Medication) (domain.Medication, error) {
	s.calls++
	return s.medication, s.err
}

func (s *stubMedicationService) DeleteMedication(ctx context.Context, id uint, role domain.Role) error {
	s.calls++
	return s.err
}

func setUser(user domain.User) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(middleware.CtxUserKey, user)
	}
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body
}

func TestMedicationHandler_RoleGate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	validBody := `{"name":"Paracetamol","description":"500mg","unit_price":50,"quantity":10}`

	tests := []struct {
		name       string
		role       domain.Role
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"cashier cannot create", domain.RoleCashier, http.MethodPost, "/medications", validBody, http.StatusUnauthorized},
		{"manager cannot create", domain.RoleManager, http.MethodPost, "/medications", validBody, http.StatusUnauthorized},
		{"owner may create", domain.RoleOwner, http.MethodPost, "/medications", validBody, http.StatusCreated},
		{"manager cannot update", domain.RoleManager, http.MethodPut, "/medications/1", validBody, http.StatusUnauthorized},
		{"cashier cannot delete", domain.RoleCashier, http.MethodDelete, "/medications/1", "", http.StatusUnauthorized},
		{"manager may delete", domain.RoleManager, http.MethodDelete, "/medications/1", "", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubMedicationService{}
			h := NewMedicationHandler(svc)

			router := gin.New()
			router.Use(setUser(domain.User{ID: 1, Role: tc.role}))
			router.POST("/medications", h.HandleCreateMedication)
			router.PUT("/medications/:id", h.HandleUpdateMedication)
			router.DELETE("/medications/:id", h.HandleDeleteMedication)

			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)

			if tc.wantStatus == http.StatusUnauthorized {
				assert.Zero(t, svc.calls, "a denied request must not reach the service")

				body := decodeEnvelope(t, w)
				assert.Nil(t, body["data"])
				assert.Equal(t, "Unauthorized Action", body["message"])
			}
		})
	}
}

func TestMedicationHandler_HandleGetMedication(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("found", func(t *testing.T) {
		svc := &stubMedicationService{medication: domain.Medication{ID: 1, Name: "Paracetamol"}}
		h := NewMedicationHandler(svc)

		router := gin.New()
		router.GET("/medications/:id", h.HandleGetMedication)

		req := httptest.NewRequest(http.MethodGet, "/medications/1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		body := decodeEnvelope(t, w)
		assert.Equal(t, "Data Retrieve Successfully", body["message"])
		data, ok := body["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Paracetamol", data["name"])
	})

	t.Run("not found", func(t *testing.T) {
		svc := &stubMedicationService{err: service.ErrMedicationNotFound}
		h := NewMedicationHandler(svc)

		router := gin.New()
		router.GET("/medications/:id", h.HandleGetMedication)

		req := httptest.NewRequest(http.MethodGet, "/medications/999", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		body := decodeEnvelope(t, w)
		assert.Nil(t, body["data"])
		assert.Equal(t, "Medication Not Found", body["message"])
	})

	t.Run("bad id", func(t *testing.T) {
		svc := &stubMedicationService{}
		h := NewMedicationHandler(svc)

		router := gin.New()
		router.GET("/medications/:id", h.HandleGetMedication)

		req := httptest.NewRequest(http.MethodGet, "/medications/abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Zero(t, svc.calls)
	})
}

func TestMedicationHandler_HandleCreateMedication_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &stubMedicationService{}
	h := NewMedicationHandler(svc)

	router := gin.New()
	router.Use(setUser(domain.User{ID: 1, Role: domain.RoleOwner}))
	router.POST("/medications", h.HandleCreateMedication)

	req := httptest.NewRequest(http.MethodPost, "/medications",
		strings.NewReader(`{"name":"","description":"x","unit_price":0,"quantity":0}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Zero(t, svc.calls)
}

func TestMedicationHandler_HandleDeleteMedication_InUse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &stubMedicationService{err: service.ErrMedicationInUse}
	h := NewMedicationHandler(svc)

	router := gin.New()
	router.Use(setUser(domain.User{ID: 1, Role: domain.RoleOwner}))
	router.DELETE("/medications/:id", h.HandleDeleteMedication)

	req := httptest.NewRequest(http.MethodDelete, "/medications/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := decodeEnvelope(t, w)
	assert.Equal(t, "Medication Is Referenced By A Prescription", body["message"])
}
