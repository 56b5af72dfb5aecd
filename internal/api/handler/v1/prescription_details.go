package v1

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oshanw/pharmacare-api/internal/api/handler/v1/request"
	"github.com/oshanw/pharmacare-api/internal/api/handler/v1/response"
	"github.com/oshanw/pharmacare-api/internal/domain"
)

type prescriptionDetailService interface {
	GetDetailsByPrescription(ctx context.Context, prescriptionID uint) ([]domain.PrescriptionDetail, error)
	GetDetail(ctx context.Context, id uint) (domain.PrescriptionDetail, error)
	CreateDetail(ctx context.Context, prescriptionID, medicationID uint, count int) (domain.PrescriptionDetail, error)
	ResizeDetail(ctx context.Context, id uint, newCount int) (domain.PrescriptionDetail, error)
	RemoveDetail(ctx context.Context, id uint, role domain.Role) (domain.PrescriptionDetail, error)
}

type PrescriptionDetailHandler struct {
	svc prescriptionDetailService
}

func NewPrescriptionDetailHandler(svc prescriptionDetailService) *PrescriptionDetailHandler {
	return &PrescriptionDetailHandler{
		svc: svc,
	}
}

// HandleListPrescriptionDetails godoc
// @Summary  List a prescription's line items
// @Tags     prescription_details
// @Produce  json
// @Security BearerToken
// @Param    prescription_id query int true "prescription ID"
// @Success  200 {object} response.Envelope
// @Failure  404 {object} response.Err
// @Failure  422 {object} response.Err
// @Router   /prescription_details [get]
func (h *PrescriptionDetailHandler) HandleListPrescriptionDetails(ctx *gin.Context) {
	prescriptionID, err := strconv.ParseUint(ctx.Query("prescription_id"), 10, 32)
	if err != nil || prescriptionID == 0 {
		response.RenderErr(ctx, unprocessable("Prescription Id Is Required"))
		return
	}

	details, err := h.svc.GetDetailsByPrescription(ctx.Request.Context(), uint(prescriptionID))
	if err != nil {
		renderPharmacyErr(ctx, err)
		return
	}

	response.RenderOK(ctx, details, msgDataRetrieved)
}

// HandleGetPrescriptionDetail godoc
// @Summary  Get one line item
// @Tags     prescription_details
// @Produce  json
// @Security BearerToken
// @Param    id path int true "prescription detail ID"
// @Success  200 {object} response.Envelope
// @Failure  404 {object} response.Err
// @Router   /prescription_details/{id} [get]
func (h *PrescriptionDetailHandler) HandleGetPrescriptionDetail(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	detail, err := h.svc.GetDetail(ctx.Request.Context(), id)
	if err != nil {
		renderPharmacyErr(ctx, err)
		return
	}

	response.RenderOK(ctx, detail, msgDataRetrieved)
}

// HandleCreatePrescriptionDetail godoc
// @Summary  Add a line item to a prescription
// @Description Reserves count units of the medication and raises the
// @Description prescription total, atomically.
// @Tags     prescription_details
// @Accept   json
// @Produce  json
// @Security BearerToken
// @Param    request body request.CreatePrescriptionDetailRequest true "request body"
// @Success  201 {object} response.Envelope
// @Failure  401 {object} response.Err
// @Failure  404 {object} response.Err
// @Failure  422 {object} response.Err
// @Router   /prescription_details [post]
func (h *PrescriptionDetailHandler) HandleCreatePrescriptionDetail(ctx *gin.Context) {
	user, ok := userFromContext(ctx)
	if !ok || !domain.CanMutate(user.Role, domain.ActionCreate, domain.ResourcePrescriptionDetail) {
		response.RenderErr(ctx, response.ErrUnauthorized(msgUnauthorizedAction))
		return
	}

	var req request.CreatePrescriptionDetailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	created, err := h.svc.CreateDetail(ctx.Request.Context(), req.PrescriptionID, req.MedicationID, req.Count)
	if err != nil {
		renderPharmacyErr(ctx, err)
		return
	}

	response.RenderCreated(ctx, created, "Prescription Detail Created Successfully")
}

// HandleUpdatePrescriptionDetail godoc
// @Summary  Change a line item's count
// @Description Growing the count consumes more stock, shrinking releases
// @Description it; the prescription total moves accordingly.
// @Tags     prescription_details
// @Accept   json
// @Produce  json
// @Security BearerToken
// @Param    id path int true "prescription detail ID"
// @Param    request body request.UpdatePrescriptionDetailRequest true "request body"
// @Success  200 {object} response.Envelope
// @Failure  404 {object} response.Err
// @Failure  422 {object} response.Err
// @Router   /prescription_details/{id} [put]
func (h *PrescriptionDetailHandler) HandleUpdatePrescriptionDetail(ctx *gin.Context) {
	user, ok := userFromContext(ctx)
	if !ok || !domain.CanMutate(user.Role, domain.ActionUpdate, domain.ResourcePrescriptionDetail) {
		response.RenderErr(ctx, response.ErrUnauthorized(msgUnauthorizedAction))
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	var req request.UpdatePrescriptionDetailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	updated, err := h.svc.ResizeDetail(ctx.Request.Context(), id, req.Count)
	if err != nil {
		renderPharmacyErr(ctx, err)
		return
	}

	response.RenderOK(ctx, updated, "Prescription Detail Updated Successfully")
}

// HandleDeletePrescriptionDetail godoc
// @Summary  Remove a line item
// @Description Releases the reserved stock and lowers the prescription
// @Description total before deleting the row.
// @Tags     prescription_details
// @Produce  json
// @Security BearerToken
// @Param    id path int true "prescription detail ID"
// @Success  200 {object} response.Envelope
// @Failure  401 {object} response.Err
// @Failure  404 {object} response.Err
// @Router   /prescription_details/{id} [delete]
func (h *PrescriptionDetailHandler) HandleDeletePrescriptionDetail(ctx *gin.Context) {
	user, ok := userFromContext(ctx)
	if !ok || !domain.CanMutate(user.Role, domain.ActionDelete, domain.ResourcePrescriptionDetail) {
		response.RenderErr(ctx, response.ErrUnauthorized(msgUnauthorizedAction))
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	if _, err = h.svc.RemoveDetail(ctx.Request.Context(), id, user.Role); err != nil {
		renderPharmacyErr(ctx, err)
		return
	}

	response.RenderOK(ctx, nil, "Prescription Detail Deleted Successfully")
}
