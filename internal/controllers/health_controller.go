package controllers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/saaaathvik/consultansease/internal/app"
	"github.com/saaaathvik/consultansease/internal/dtos"
	"github.com/saaaathvik/consultansease/internal/utils"
)

type HealthController struct {
	app *app.App
}

func NewHealthController(app *app.App) *HealthController {
	return &HealthController{
		app: app,
	}
}

func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	// Check database connectivity
	if err := c.app.Mongo.Ping(r.Context(), readpref.Primary()); err != nil {
		utils.Logger.WithError(err).Error("Database unreachable")
		utils.RespondErrorWithCode(
			w,
			http.StatusServiceUnavailable,
			utils.ErrCodeInternal,
			"Database unreachable",
			nil,
			err,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthCheckResponse{Status: "OK"})
}
