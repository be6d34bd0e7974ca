// internal/handlers/common.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/omsmarine/vims-backend/internal/engine"
	"github.com/omsmarine/vims-backend/internal/services"
	"github.com/omsmarine/vims-backend/internal/utils"
)

// actorFromContext builds the engine identity of the authenticated caller.
func actorFromContext(c *gin.Context) (engine.Identity, bool) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return engine.Identity{}, false
	}
	name, _ := utils.GetUserNameFromContext(c)
	return engine.Identity{UserID: userID, Name: name}, true
}

// respondDomainError maps engine and store errors onto the response envelope.
func respondDomainError(c *gin.Context, err error) {
	var verr *engine.ValidationError
	if errors.As(err, &verr) {
		utils.ErrorResponse(c, 400, "VALIDATION_ERROR", verr.Error(), gin.H{"field": verr.Field})
		return
	}

	var terr *engine.InvalidTransitionError
	if errors.As(err, &terr) {
		utils.ConflictResponse(c, "INVALID_TRANSITION", terr.Error(), gin.H{
			"from": terr.From,
			"to":   terr.To,
		})
		return
	}

	var oob *engine.IndexOutOfRangeError
	if errors.As(err, &oob) {
		utils.ErrorResponse(c, 400, "INDEX_OUT_OF_RANGE", oob.Error(), gin.H{
			"index":  oob.Index,
			"length": oob.Length,
		})
		return
	}

	if services.IsNotFound(err) {
		utils.NotFoundResponse(c, "Resource")
		return
	}

	logrus.WithError(err).Error("Unhandled service error")
	utils.InternalErrorResponse(c, "")
}
