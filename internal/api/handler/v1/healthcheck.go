package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/oshanw/pharmacare-api/internal/api/handler/v1/response"
)

// HandleHealthcheck godoc
// @Summary  Liveness probe
// @Tags     healthcheck
// @Produce  json
// @Success  200 {object} response.Envelope
// @Router   / [get]
func HandleHealthcheck(ctx *gin.Context) {
	response.RenderOK(ctx, gin.H{"status": "ok"}, "OK")
}
