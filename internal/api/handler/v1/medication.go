package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/oshanw/pharmacare-api/internal/api/handler/v1/request"
	"github.com/oshanw/pharmacare-api/internal/api/handler/v1/response"
	"github.com/oshanw/pharmacare-api/internal/domain"
)

type medicationService interface {
	GetMedications(ctx context.Context) ([]domain.Medication, error)
	GetMedication(ctx context.Context, id uint) (domain.Medication, error)
	CreateMedication(ctx context.Context, medication domain.Medication) (domain.Medication, error)
	UpdateMedication(ctx context.Context, medication domain.Medication) (domain.Medication, error)
	DeleteMedication(ctx context.Context, id uint, role domain.Role) error
}

type MedicationHandler struct {
	svc medicationService
}

func NewMedicationHandler(svc medicationService) *MedicationHandler {
	return &MedicationHandler{
		svc: svc,
	}
}

// HandleListMedications godoc
// @Summary  List all medications
// @Tags     medications
// @Produce  json
// @Security BearerToken
// @Success  200 {object} response.Envelope
// @Failure  401 {object} response.Err
// @Router   /medications [get]
func (h *MedicationHandler) HandleListMedications(ctx *gin.Context) {
	medications, err := h.svc.GetMedications(ctx.Request.Context())
	if err != nil {
		renderPharmacyErr(ctx, err)
		return
	}

	response.RenderOK(ctx, medications, msgDataRetrieved)
}

// HandleGetMedication godoc
// @Summary  Get one medication
// @Tags     medications
// @Produce  json
// @Security BearerToken
// @Param    id path int true "medication ID"
// @Success  200 {object} response.Envelope
// @Failure  404 {object} response.Err
// @Router   /medications/{id} [get]
func (h *MedicationHandler) HandleGetMedication(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	medication, err := h.svc.GetMedication(ctx.Request.Context(), id)
	if err != nil {
		renderPharmacyErr(ctx, err)
		return
	}

	response.RenderOK(ctx, medication, msgDataRetrieved)
}

// HandleCreateMedication godoc
// @Summary  Add a medication to stock
// @Tags     medications
// @Accept   json
// @Produce  json
// @Security BearerToken
// @Param    request body request.CreateMedicationRequest true "request body"
// @Success  201 {object} response.Envelope
// @Failure  401 {object} response.Err
// @Failure  422 {object} response.Err
// @Router   /medications [post]
func (h *MedicationHandler) HandleCreateMedication(ctx *gin.Context) {
	user, ok := userFromContext(ctx)
	if !ok || !domain.CanMutate(user.Role, domain.ActionCreate, domain.ResourceMedication) {
		response.RenderErr(ctx, response.ErrUnauthorized(msgUnauthorizedAction))
		return
	}

	var req request.CreateMedicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	created, err := h.svc.CreateMedication(ctx.Request.Context(), domain.Medication{
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		Quantity:    req.Quantity,
	})
	if err != nil {
		renderPharmacyErr(ctx, err)
		return
	}

	response.RenderCreated(ctx, created, "Medication Created Successfully")
}

// HandleUpdateMedication godoc
// @Summary  Update a medication
// @Tags     medications
// @Accept   json
// @Produce  json
// @Security BearerToken
// @Param    id path int true "medication ID"
// @Param    request body request.UpdateMedicationRequest true "request body"
// @Success  200 {object} response.Envelope
// @Failure  401 {object} response.Err
// @Failure  404 {object} response.Err
// @Failure  422 {object} response.Err
// @Router   /medications/{id} [put]
func (h *MedicationHandler) HandleUpdateMedication(ctx *gin.Context) {
	user, ok := userFromContext(ctx)
	if !ok || !domain.CanMutate(user.Role, domain.ActionUpdate, domain.ResourceMedication) {
		response.RenderErr(ctx, response.ErrUnauthorized(msgUnauthorizedAction))
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	var req request.UpdateMedicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	updated, err := h.svc.UpdateMedication(ctx.Request.Context(), domain.Medication{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		Quantity:    req.Quantity,
	})
	if err != nil {
		renderPharmacyErr(ctx, err)
		return
	}

	response.RenderOK(ctx, updated, "Medication Updated Successfully")
}

// HandleDeleteMedication godoc
// @Summary  Delete a medication
// @Description Owners remove the row permanently, managers soft-delete.
// @Tags     medications
// @Produce  json
// @Security BearerToken
// @Param    id path int true "medication ID"
// @Success  200 {object} response.Envelope
// @Failure  401 {object} response.Err
// @Failure  404 {object} response.Err
// @Failure  422 {object} response.Err
// @Router   /medications/{id} [delete]
func (h *MedicationHandler) HandleDeleteMedication(ctx *gin.Context) {
	user, ok := userFromContext(ctx)
	if !ok || !domain.CanMutate(user.Role, domain.ActionDelete, domain.ResourceMedication) {
		response.RenderErr(ctx, response.ErrUnauthorized(msgUnauthorizedAction))
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	if err = h.svc.DeleteMedication(ctx.Request.Context(), id, user.Role); err != nil {
		renderPharmacyErr(ctx, err)
		return
	}

	response.RenderOK(ctx, nil, "Medication Deleted Successfully")
}
