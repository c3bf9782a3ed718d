package trains

import (
	"github.com/gin-gonic/gin"
)

// SetupTrainRoutes registers search and catalog routes on the /trains group.
func SetupTrainRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.POST("/search", controller.SearchTrains)           // POST /trains/search
	rg.GET("/:trainNumber", controller.GetTrain)          // GET  /trains/:trainNumber
}
