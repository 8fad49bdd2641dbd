package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkordes/campground-booking/internal/domain"
)

// Messages that clients match on verbatim.
const (
	msgServerError       = "Server error"
	msgInvalidBody       = "Invalid request body"
	msgBodyTooLarge      = "Request body too large"
	msgForbidden         = "Not authorized to access this resource"
	msgPromoInvalid      = "Invalid promo code"
	msgPromoExpired      = "Promo code has expired"
	msgPromoLimitReached = "Promo code usage limit reached"
	msgPromoMinimumSpend = "Minimum spend of $%s is required to use this code"
	msgPromoApplied      = "Promo code applied successfully"
)

// writeError maps a service error onto a status code and message. resource
// names what the route acts on ("Booking") for the not-found and conflict
// messages. Anything unrecognised is logged and reported as a bare 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	var minSpend *domain.MinimumSpendError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.Is(err, domain.ErrValidation):
		writeMessage(w, http.StatusBadRequest, detail(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrNotFound):
		msg := detail(err, domain.ErrNotFound)
		if msg == "" {
			msg = resource + " not found"
		}
		writeMessage(w, http.StatusNotFound, msg)
	case errors.Is(err, domain.ErrForbidden):
		writeMessage(w, http.StatusForbidden, msgForbidden)
	case errors.Is(err, domain.ErrConflict):
		writeMessage(w, http.StatusConflict, resource+" already exists")
	case errors.Is(err, domain.ErrPromotionExpired):
		writeMessage(w, http.StatusBadRequest, msgPromoExpired)
	case errors.Is(err, domain.ErrPromotionLimitReached):
		writeMessage(w, http.StatusBadRequest, msgPromoLimitReached)
	case errors.As(err, &minSpend):
		writeMessage(w, http.StatusBadRequest, fmt.Sprintf(msgPromoMinimumSpend, minSpend.Required))
	case errors.As(err, &tooLarge):
		writeMessage(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
	default:
		s.logger.ErrorContext(r.Context(), "unhandled error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeMessage(w, http.StatusInternalServerError, msgServerError)
	}
}

// detail extracts the human-readable part that follows a wrapped sentinel.
// e.g. "service.BookingService.Create: validation error: check-out date must be after check-in date"
// → "check-out date must be after check-in date". Returns "" when the
// sentinel carries no detail.
func detail(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return ""
}
