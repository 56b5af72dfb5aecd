package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/oshanw/pharmacare-api/internal/api/handler/v1/request"
	"github.com/oshanw/pharmacare-api/internal/api/handler/v1/response"
	"github.com/oshanw/pharmacare-api/internal/domain"
	"github.com/oshanw/pharmacare-api/internal/service"
)

type customerService interface {
	GetCustomers(ctx context.Context, includePrescriptions bool) ([]domain.Customer, error)
	GetCustomer(ctx context.Context, id uint, includePrescriptions bool) (domain.Customer, error)
	CreateCustomer(ctx context.Context, customer domain.Customer, prescriptions []service.PrescriptionInput) (domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	DeleteCustomer(ctx context.Context, id uint, role domain.Role) error
}

type CustomerHandler struct {
	svc customerService
}

func NewCustomerHandler(svc customerService) *CustomerHandler {
	return &CustomerHandler{
		svc: svc,
	}
}

func prescriptionInputs(payloads []request.PrescriptionPayload) []service.PrescriptionInput {
	inputs := make([]service.PrescriptionInput, 0, len(payloads))
	for _, p := range payloads {
		input := service.PrescriptionInput{
			Note:        p.Note,
			TotalAmount: p.TotalAmount,
		}
		for _, d := range p.Details {
			input.Details = append(input.Details, service.DetailInput{
				MedicationID: d.MedicationID,
				Count:        d.Count,
			})
		}

		inputs = append(inputs, input)
	}

	return inputs
}

// HandleListCustomers godoc
// @Summary  List all customers
// @Tags     customers
// @Produce  json
// @Security BearerToken
// @Param    include query string false "set to 'prescriptions' to embed each customer's prescriptions"
// @Success  200 {object} response.Envelope
// @Failure  401 {object} response.Err
// @Router   /customers [get]
func (h *CustomerHandler) HandleListCustomers(ctx *gin.Context) {
	includePrescriptions := ctx.Query("include") == "prescriptions"

	customers, err := h.svc.GetCustomers(ctx.Request.Context(), includePrescriptions)
	if err != nil {
		renderPharmacyErr(ctx, err)
		return
	}

	response.RenderOK(ctx, customers, msgDataRetrieved)
}

// HandleGetCustomer godoc
// @Summary  Get one customer
// @Tags     customers
// @Produce  json
// @Security BearerToken
// @Param    id path int true "customer ID"
// @Param    include query string false "set to 'prescriptions' to embed the customer's prescriptions"
// @Success  200 {object} response.Envelope
// @Failure  404 {object} response.Err
// @Router   /customers/{id} [get]
func (h *CustomerHandler) HandleGetCustomer(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	includePrescriptions := ctx.Query("include") == "prescriptions"

	customer, err := h.svc.GetCustomer(ctx.Request.Context(), id, includePrescriptions)
	if err != nil {
		renderPharmacyErr(ctx, err)
		return
	}

	response.RenderOK(ctx, customer, msgDataRetrieved)
}

// HandleCreateCustomer godoc
// @Summary  Register a customer, optionally with prescriptions
// @Description The customer and every nested prescription commit as one
// @Description unit; any stock shortfall rolls everything back.
// @Tags     customers
// @Accept   json
// @Produce  json
// @Security BearerToken
// @Param    request body request.CreateCustomerRequest true "request body"
// @Success  201 {object} response.Envelope
// @Failure  401 {object} response.Err
// @Failure  422 {object} response.Err
// @Router   /customers [post]
func (h *CustomerHandler) HandleCreateCustomer(ctx *gin.Context) {
	user, ok := userFromContext(ctx)
	if !ok || !domain.CanMutate(user.Role, domain.ActionCreate, domain.ResourceCustomer) {
		response.RenderErr(ctx, response.ErrUnauthorized(msgUnauthorizedAction))
		return
	}

	var req request.CreateCustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	created, err := h.svc.CreateCustomer(ctx.Request.Context(), domain.Customer{
		Name:    req.Name,
		NIC:     req.NIC,
		Age:     req.Age,
		Mobile:  req.Mobile,
		Address: req.Address,
	}, prescriptionInputs(req.Prescriptions))
	if err != nil {
		renderPharmacyErr(ctx, err)
		return
	}

	response.RenderCreated(ctx, created, "Customer Created Successfully")
}

// HandleUpdateCustomer godoc
// @Summary  Update a customer's details
// @Tags     customers
// @Accept   json
// @Produce  json
// @Security BearerToken
// @Param    id path int true "customer ID"
// @Param    request body request.UpdateCustomerRequest true "request body"
// @Success  200 {object} response.Envelope
// @Failure  401 {object} response.Err
// @Failure  404 {object} response.Err
// @Failure  422 {object} response.Err
// @Router   /customers/{id} [put]
func (h *CustomerHandler) HandleUpdateCustomer(ctx *gin.Context) {
	user, ok := userFromContext(ctx)
	if !ok || !domain.CanMutate(user.Role, domain.ActionUpdate, domain.ResourceCustomer) {
		response.RenderErr(ctx, response.ErrUnauthorized(msgUnauthorizedAction))
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	var req request.UpdateCustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	updated, err := h.svc.UpdateCustomer(ctx.Request.Context(), domain.Customer{
		ID:      id,
		Name:    req.Name,
		NIC:     req.NIC,
		Age:     req.Age,
		Mobile:  req.Mobile,
		Address: req.Address,
	})
	if err != nil {
		renderPharmacyErr(ctx, err)
		return
	}

	response.RenderOK(ctx, updated, "Customer Updated Successfully")
}

// HandleDeleteCustomer godoc
// @Summary  Delete a customer and their prescriptions
// @Description Cascades to prescriptions and line items. Reserved stock
// @Description is not released.
// @Tags     customers
// @Produce  json
// @Security BearerToken
// @Param    id path int true "customer ID"
// @Success  200 {object} response.Envelope
// @Failure  401 {object} response.Err
// @Failure  404 {object} response.Err
// @Router   /customers/{id} [delete]
func (h *CustomerHandler) HandleDeleteCustomer(ctx *gin.Context) {
	user, ok := userFromContext(ctx)
	if !ok || !domain.CanMutate(user.Role, domain.ActionDelete, domain.ResourceCustomer) {
		response.RenderErr(ctx, response.ErrUnauthorized(msgUnauthorizedAction))
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return
	}

	if err = h.svc.DeleteCustomer(ctx.Request.Context(), id, user.Role); err != nil {
		renderPharmacyErr(ctx, err)
		return
	}

	response.RenderOK(ctx, nil, "Customer Deleted Successfully")
}
