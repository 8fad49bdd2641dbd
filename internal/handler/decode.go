package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/pkordes/campground-booking/internal/domain"
)

// decodeBody reads the JSON request body into dst and validates its struct
// tags. A body that is too large keeps its *http.MaxBytesError so it maps to
// 413; every other failure is domain.ErrValidation.
func (s *Server) decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, msgInvalidBody)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return fmt.Errorf("%w: %s", domain.ErrValidation, msgInvalidBody)
	}
	if err := s.validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, validationMessage(err))
	}
	return nil
}
