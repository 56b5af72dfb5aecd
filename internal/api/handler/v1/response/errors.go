package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *Err) Error() string {
	return e.Message
}

// ErrValidation covers malformed bodies and failed input validation.
func ErrValidation(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnprocessableEntity,
		Message:    err.Error(),
	}
}

// ErrUnprocessable covers business-rule rejections such as
// insufficient stock.
func ErrUnprocessable(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnprocessableEntity,
		Message:    err.Error(),
	}
}

func ErrNotFound(err error) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		Message:    err.Error(),
	}
}

func ErrUnauthorized(message string) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Message:    message,
	}
}

func ErrInternalServerError(err error) *Err {
	zap.L().Error("internal server error", zap.Error(err))

	return &Err{
		StatusCode: http.StatusInternalServerError,
		Message:    "Something Went Wrong",
	}
}

func RenderErr(ctx *gin.Context, err *Err) {
	ctx.AbortWithStatusJSON(err.StatusCode, Envelope{
		Data:    nil,
		Message: err.Message,
	})
}
