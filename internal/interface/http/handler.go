package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lumoshop/lumoshop-api/internal/domain/entity"
	"github.com/lumoshop/lumoshop-api/pkg/apperror"
	"github.com/lumoshop/lumoshop-api/pkg/response"
)

// fail maps an application error to its HTTP status. Internal causes go
// to the log only; the response carries nothing beyond the stable
// message of the error kind.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	status := apperror.Status(err)
	if status == http.StatusInternalServerError {
		logger.WithError(apperror.CauseOf(err)).Error("request failed")
		response.Error[any](c, status, "internal server error", nil)
		return
	}
	response.Error[any](c, status, err.Error(), nil)
}

// userView is the serialized shape of an identity. The credential hash
// has no field here on purpose.
func userView(u *entity.User) gin.H {
	return gin.H{
		"id":              u.ID,
		"email":           u.Email,
		"username":        u.Username,
		"first_name":      u.FirstName,
		"last_name":       u.LastName,
		"photo_url":       u.PhotoURL,
		"role":            u.Role,
		"is_banned":       u.IsBanned,
		"email_confirmed": u.EmailConfirmed,
		"created_at":      u.CreatedAt,
		"updated_at":      u.UpdatedAt,
	}
}
