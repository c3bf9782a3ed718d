package trains

import (
	"errors"
	"net/http"

	"yatra/internal/shared/apperror"
	"yatra/internal/shared/utils/response"
	"yatra/internal/shared/utils/validation"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// SearchTrains handles POST /trains/search
func (c *Controller) SearchTrains(ctx *gin.Context) {
	var req SearchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Validation failed", validation.FieldErrors(err))
		return
	}

	trains, err := c.service.Search(ctx.Request.Context(), req)
	if err != nil {
		response.Fail(ctx, apperror.HTTPStatus(err), "Search failed. Please try again.", nil)
		return
	}

	response.OK(ctx, http.StatusOK, "Trains found successfully", trains)
}

// GetTrain handles GET /trains/:trainNumber
func (c *Controller) GetTrain(ctx *gin.Context) {
	trainNumber := ctx.Param("trainNumber")

	train, err := c.service.GetTrain(ctx.Request.Context(), trainNumber)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			response.Fail(ctx, http.StatusNotFound, "Train not found", nil)
			return
		}
		response.Fail(ctx, apperror.HTTPStatus(err), "Failed to get train details", nil)
		return
	}

	response.OK(ctx, http.StatusOK, "", train)
}
