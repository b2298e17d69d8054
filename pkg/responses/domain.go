package responses

import (
	"errors"
	"net/http"

	"github.com/allanbakerhussmann-crypto/pickleball-app/pkg/apperrors"
	"github.com/gin-gonic/gin"
)

// SendDomainError maps the shared sentinel errors onto HTTP statuses.
// ErrConflict is the one status callers are expected to retry after
// re-reading; everything else needs a human decision.
func SendDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidTransition):
		Conflict(c, err.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		Forbidden(c, err.Error())
	case errors.Is(err, apperrors.ErrInvalidInput):
		BadRequest(c, err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		Conflict(c, err.Error())
	case errors.Is(err, apperrors.ErrUnavailable):
		UnprocessableEntity(c, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		SendError(c, http.StatusNotFound, err.Error())
	default:
		InternalServerError(c, "")
	}
}
