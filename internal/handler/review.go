package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/campground-booking/internal/domain"
)

type reviewRequest struct {
	Text string `json:"text" validate:"max=500"`
	Star int    `json:"star" validate:"required,min=1,max=5"`
}

type reviewResponse struct {
	ID         uuid.UUID `json:"id"`
	User       uuid.UUID `json:"user"`
	Campground uuid.UUID `json:"campground"`
	Text       string    `json:"text"`
	Star       int       `json:"star"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ListReviews handles GET /api/v1/reviews and
// GET /api/v1/campgrounds/{campgroundId}/reviews.
func (s *Server) ListReviews(w http.ResponseWriter, r *http.Request) {
	campgroundID, err := optionalPathUUID(r, "campgroundId")
	if err != nil {
		s.writeError(w, r, err, "Review")
		return
	}
	p, err := paginationParams(r)
	if err != nil {
		s.writeError(w, r, err, "Review")
		return
	}
	page, err := s.reviews.List(r.Context(), campgroundID, p)
	if err != nil {
		s.writeError(w, r, err, "Review")
		return
	}
	writePage(w, page, p, reviewToResponse)
}

// GetReview handles GET /api/v1/reviews/{id}.
func (s *Server) GetReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "Review")
		return
	}
	rv, err := s.reviews.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "Review")
		return
	}
	writeData(w, http.StatusOK, reviewToResponse(rv))
}

// CreateReview handles POST /api/v1/campgrounds/{campgroundId}/reviews.
func (s *Server) CreateReview(w http.ResponseWriter, r *http.Request) {
	campgroundID, err := pathUUID(r, "campgroundId")
	if err != nil {
		s.writeError(w, r, err, "Review")
		return
	}
	var req reviewRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeError(w, r, err, "Review")
		return
	}
	created, err := s.reviews.Create(r.Context(), caller(r), domain.Review{
		CampgroundID: campgroundID,
		Text:         req.Text,
		Star:         req.Star,
	})
	if err != nil {
		s.writeError(w, r, err, "Review")
		return
	}
	writeData(w, http.StatusCreated, reviewToResponse(created))
}

// UpdateReview handles PUT /api/v1/reviews/{id}.
func (s *Server) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "Review")
		return
	}
	var req reviewRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeError(w, r, err, "Review")
		return
	}
	updated, err := s.reviews.Update(r.Context(), caller(r), id, req.Text, req.Star)
	if err != nil {
		s.writeError(w, r, err, "Review")
		return
	}
	writeData(w, http.StatusOK, reviewToResponse(updated))
}

// DeleteReview handles DELETE /api/v1/reviews/{id}.
func (s *Server) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "Review")
		return
	}
	if err := s.reviews.Delete(r.Context(), caller(r), id); err != nil {
		s.writeError(w, r, err, "Review")
		return
	}
	writeData(w, http.StatusOK, struct{}{})
}

func reviewToResponse(rv domain.Review) reviewResponse {
	return reviewResponse{
		ID:         rv.ID,
		User:       rv.UserID,
		Campground: rv.CampgroundID,
		Text:       rv.Text,
		Star:       rv.Star,
		CreatedAt:  rv.CreatedAt,
	}
}
