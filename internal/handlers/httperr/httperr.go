package httperr

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/GlebRadaev/scratchmart/internal/domain"
	"github.com/GlebRadaev/scratchmart/pkg/utils"
	"github.com/GlebRadaev/scratchmart/pkg/validate"
)

const (
	msgUnavailable   = "Service temporarily unavailable, retry later"
	msgMisconfigured = "Service misconfigured"
	msgInternal      = "Internal server error"
)

// Status maps an error returned by a service onto an HTTP status and the
// message shown to the client.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, validate.ErrInvalid):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusPaymentRequired, domain.ErrInsufficientBalance.Error()
	case errors.Is(err, domain.ErrAlreadyCheckedIn):
		return http.StatusConflict, domain.ErrAlreadyCheckedIn.Error()
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return http.StatusConflict, domain.ErrUserAlreadyExists.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, domain.ErrUserNotFound.Error()
	case domain.IsTransient(err):
		return http.StatusServiceUnavailable, msgUnavailable
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusInternalServerError, msgMisconfigured
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// Respond writes err as a JSON error response. Transient failures carry
// Retry-After so clients can replay the request.
func Respond(w http.ResponseWriter, err error) {
	status, msg := Status(err)
	switch {
	case status == http.StatusServiceUnavailable:
		zap.L().Warn("transient failure", zap.Error(err))
		w.Header().Set("Retry-After", "1")
	case status >= http.StatusInternalServerError:
		zap.L().Error("request failed", zap.Error(err))
	}
	utils.RespondWithError(w, status, msg)
}
