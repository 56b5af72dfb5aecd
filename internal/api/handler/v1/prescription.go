package v1

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oshanw/pharmacare-api/internal/api/handler/v1/request"
	"github.com/oshanw/pharmacare-api/internal/api/handler/v1/response"
	"github.com/oshanw/pharmacare-api/internal/domain"
	"github.com/oshanw/pharmacare-api/internal/service"
)

type prescriptionService interface {
	GetPrescriptionsByCustomer(ctx context.Context, customerID uint, includeDetails bool) ([]domain.Prescription, error)
	GetPrescription(ctx context.Context, id uint, includeDetails bool) (domain.Prescription, error)
	CreatePrescription(ctx context.Context, customerID uint, input service.PrescriptionInput) (domain.Prescription, error)
	UpdatePrescriptionNote(ctx context.Context, id uint, note string) (domain.Prescription, error)
	DeletePrescription(ctx context.Context, id uint, role domain.Role) error
}

type PrescriptionHandler struct {
	svc prescriptionService
}

func NewPrescriptionHandler(svc prescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{
		svc: svc,
	}
}

// HandleListPrescriptions godoc
// @Summary  List a customer's prescriptions
// @Tags     prescriptions
// @Produce  json
// @Security BearerToken
// @Param    customer_id query int true "customer ID"
// @Param    include query string false "set to 'details' to embed line items"
// @Success  200 {object} response.Envelope
// @Failure  404 {object} response.Err
// @Failure  422 {object} response.Err
// @Router   /prescriptions [get]
func (h *PrescriptionHandler) HandleListPrescriptions(ctx *gin.Context) {
	customerID, err := strconv.ParseUint(ctx.Query("customer_id"), 10, 32)
	if err != nil || customerID == 0 {
		response.RenderErr(ctx, unprocessable("Customer Id Is Required"))
		return
	}

	includeDetails := ctx.Query("include") == "details"

	prescriptions, err := h.svc.GetPrescriptionsByCustomer(ctx.Request.Context(), uint(customerID), includeDetails)
	if err != nil {
		renderPharmacyErr(ctx, err)
		return
	}

	response.RenderOK(ctx, prescriptions, msgDataRetrieved)
}

// HandleGetPrescription godoc
// @Summary  Get one prescription
// @Tags     prescriptions
// @Produce  json
// @Security BearerToken
// @Param    id path int true "prescription ID"
// @Param    include query string false "set to 'details' to embed line items"
// @Success  200 {object} response.Envelope
// @Failure  404 {object} response.Err
// @Router   /prescriptions/{id} [get]
func (h *PrescriptionHandler) HandleGetPrescription(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	includeDetails := ctx.Query("include") == "details"

	prescription, err := h.svc.GetPrescription(ctx.Request.Context(), id, includeDetails)
	if err != nil {
		renderPharmacyErr(ctx, err)
		return
	}

	response.RenderOK(ctx, prescription, msgDataRetrieved)
}

// HandleCreatePrescription godoc
// @Summary  Create a prescription with its line items
// @Description Every line item reserves stock; the stored total is the
// @Description sum of count times unit price over the line items.
// @Tags     prescriptions
// @Accept   json
// @Produce  json
// @Security BearerToken
// @Param    request body request.CreatePrescriptionRequest true "request body"
// @Success  201 {object} response.Envelope
// @Failure  401 {object} response.Err
// @Failure  404 {object} response.Err
// @Failure  422 {object} response.Err
// @Router   /prescriptions [post]
func (h *PrescriptionHandler) HandleCreatePrescription(ctx *gin.Context) {
	user, ok := userFromContext(ctx)
	if !ok || !domain.CanMutate(user.Role, domain.ActionCreate, domain.ResourcePrescription) {
		response.RenderErr(ctx, response.ErrUnauthorized(msgUnauthorizedAction))
		return
	}

	var req request.CreatePrescriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	inputs := prescriptionInputs([]request.PrescriptionPayload{req.PrescriptionPayload})

	created, err := h.svc.CreatePrescription(ctx.Request.Context(), req.CustomerID, inputs[0])
	if err != nil {
		renderPharmacyErr(ctx, err)
		return
	}

	response.RenderCreated(ctx, created, "Prescription Created Successfully")
}

// HandleUpdatePrescription godoc
// @Summary  Update a prescription's note
// @Tags     prescriptions
// @Accept   json
// @Produce  json
// @Security BearerToken
// @Param    id path int true "prescription ID"
// @Param    request body request.UpdatePrescriptionRequest true "request body"
// @Success  200 {object} response.Envelope
// @Failure  404 {object} response.Err
// @Failure  422 {object} response.Err
// @Router   /prescriptions/{id} [put]
func (h *PrescriptionHandler) HandleUpdatePrescription(ctx *gin.Context) {
	user, ok := userFromContext(ctx)
	if !ok || !domain.CanMutate(user.Role, domain.ActionUpdate, domain.ResourcePrescription) {
		response.RenderErr(ctx, response.ErrUnauthorized(msgUnauthorizedAction))
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	var req request.UpdatePrescriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	updated, err := h.svc.UpdatePrescriptionNote(ctx.Request.Context(), id, req.Note)
	if err != nil {
		renderPharmacyErr(ctx, err)
		return
	}

	response.RenderOK(ctx, updated, "Prescription Updated Successfully")
}

// HandleDeletePrescription godoc
// @Summary  Delete a prescription and its line items
// @Description Cascades to line items. Reserved stock is not released;
// @Description a deleted prescription represents dispensed medication.
// @Tags     prescriptions
// @Produce  json
// @Security BearerToken
// @Param    id path int true "prescription ID"
// @Success  200 {object} response.Envelope
// @Failure  401 {object} response.Err
// @Failure  404 {object} response.Err
// @Router   /prescriptions/{id} [delete]
func (h *PrescriptionHandler) HandleDeletePrescription(ctx *gin.Context) {
	user, ok := userFromContext(ctx)
	if !ok || !domain.CanMutate(user.Role, domain.ActionDelete, domain.ResourcePrescription) {
		response.RenderErr(ctx, response.ErrUnauthorized(msgUnauthorizedAction))
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	if err = h.svc.DeletePrescription(ctx.Request.Context(), id, user.Role); err != nil {
		renderPharmacyErr(ctx, err)
		return
	}

	response.RenderOK(ctx, nil, "Prescription Deleted Successfully")
}
