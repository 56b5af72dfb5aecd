package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oshanw/pharmacare-api/internal/api/handler/v1/response"
	"github.com/oshanw/pharmacare-api/internal/api/middleware"
	"github.com/oshanw/pharmacare-api/internal/domain"
	"github.com/oshanw/pharmacare-api/internal/pkg/jwthelper"
	"github.com/oshanw/pharmacare-api/internal/service"
)

const (
	msgUnauthorizedAction = "Unauthorized Action"
	msgDataRetrieved      = "Data Retrieve Successfully"
)

func userFromContext(ctx *gin.Context) (domain.User, bool) {
	value, exists := ctx.Get(middleware.CtxUserKey)
	if !exists {
		return domain.User{}, false
	}

	user, ok := value.(domain.User)
	return user, ok
}

func claimsFromContext(ctx *gin.Context) (jwthelper.Claims, bool) {
	value, exists := ctx.Get(middleware.CtxClaimsKey)
	if !exists {
		return jwthelper.Claims{}, false
	}

	claims, ok := value.(jwthelper.Claims)
	return claims, ok
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}

	return uint(id), nil
}

func notFound(message string) *response.Err {
	return &response.Err{
		StatusCode: http.StatusNotFound,
		Message:    message,
	}
}

func unprocessable(message string) *response.Err {
	return &response.Err{
		StatusCode: http.StatusUnprocessableEntity,
		Message:    message,
	}
}

// renderPharmacyErr translates the service errors shared by the
// inventory handlers into the response envelope. Anything it does not
// recognize is reported as an internal error.
func renderPharmacyErr(ctx *gin.Context, err error) {
	var stockErr *service.InsufficientStockError

	switch {
	case errors.Is(err, service.ErrMedicationNotFound):
		response.RenderErr(ctx, notFound("Medication Not Found"))
	case errors.Is(err, service.ErrCustomerNotFound):
		response.RenderErr(ctx, notFound("Customer Not Found"))
	case errors.Is(err, service.ErrPrescriptionNotFound):
		response.RenderErr(ctx, notFound("Prescription Not Found"))
	case errors.Is(err, service.ErrPrescriptionDetailNotFound):
		response.RenderErr(ctx, notFound("Prescription Detail Not Found"))
	case errors.As(err, &stockErr):
		response.RenderErr(ctx, unprocessable(
			fmt.Sprintf("%s Medication Quantity Not Enough For This Prescription", stockErr.Name)))
	case errors.Is(err, service.ErrNonPositiveCount):
		response.RenderErr(ctx, unprocessable("Count Must Be A Positive Integer"))
	case errors.Is(err, service.ErrMedicationInUse):
		response.RenderErr(ctx, unprocessable("Medication Is Referenced By A Prescription"))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
