package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response body: data carries the payload (or
// null on failure), message a human-readable outcome.
type Envelope struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
}

func RenderOK(ctx *gin.Context, data any, message string) {
	ctx.JSON(http.StatusOK, Envelope{
		Data:    data,
		Message: message,
	})
}

func RenderCreated(ctx *gin.Context, data any, message string) {
	ctx.JSON(http.StatusCreated, Envelope{
		Data:    data,
		Message: message,
	})
}
