package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/campground-booking/internal/domain"
)

type campgroundRequest struct {
	Name           string           `json:"name" validate:"required,max=50"`
	Address        string           `json:"address" validate:"required"`
	District       string           `json:"district" validate:"required"`
	Province       string           `json:"province" validate:"required"`
	PostalCode     string           `json:"postalcode" validate:"required,max=5"`
	Tel            string           `json:"tel"`
	PricePerNight  *decimal.Decimal `json:"pricePerNight" validate:"required"`
	Breakfast      bool             `json:"breakfast"`
	BreakfastPrice *decimal.Decimal `json:"breakfastPrice"`
}

type campgroundResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	District       string    `json:"district"`
	Province       string    `json:"province"`
	PostalCode     string    `json:"postalcode"`
	Tel            string    `json:"tel"`
	PricePerNight  money     `json:"pricePerNight"`
	Breakfast      bool      `json:"breakfast"`
	BreakfastPrice money     `json:"breakfastPrice"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ListCampgrounds handles GET /api/v1/campgrounds.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListCampgrounds(w http.ResponseWriter, r *http.Request) {
	p, err := paginationParams(r)
	if err != nil {
		s.writeError(w, r, err, "Campground")
		return
	}
	page, err := s.campgrounds.List(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err, "Campground")
		return
	}
	writePage(w, page, p, campgroundToResponse)
}

// GetCampground handles GET /api/v1/campgrounds/{campgroundId}.
func (s *Server) GetCampground(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "campgroundId")
	if err != nil {
		s.writeError(w, r, err, "Campground")
		return
	}
	c, err := s.campgrounds.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "Campground")
		return
	}
	writeData(w, http.StatusOK, campgroundToResponse(c))
}

// CreateCampground handles POST /api/v1/campgrounds.
func (s *Server) CreateCampground(w http.ResponseWriter, r *http.Request) {
	var req campgroundRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeError(w, r, err, "Campground")
		return
	}
	created, err := s.campgrounds.Create(r.Context(), requestToCampground(uuid.Nil, req))
	if err != nil {
		s.writeError(w, r, err, "Campground")
		return
	}
	writeData(w, http.StatusCreated, campgroundToResponse(created))
}

// UpdateCampground handles PUT /api/v1/campgrounds/{campgroundId}.
func (s *Server) UpdateCampground(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "campgroundId")
	if err != nil {
		s.writeError(w, r, err, "Campground")
		return
	}
	var req campgroundRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeError(w, r, err, "Campground")
		return
	}
	updated, err := s.campgrounds.Update(r.Context(), requestToCampground(id, req))
	if err != nil {
		s.writeError(w, r, err, "Campground")
		return
	}
	writeData(w, http.StatusOK, campgroundToResponse(updated))
}

// DeleteCampground handles DELETE /api/v1/campgrounds/{campgroundId}.
func (s *Server) DeleteCampground(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "campgroundId")
	if err != nil {
		s.writeError(w, r, err, "Campground")
		return
	}
	if err := s.campgrounds.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "Campground")
		return
	}
	writeData(w, http.StatusOK, struct{}{})
}

// --- mapping helpers --------------------------------------------------------

func requestToCampground(id uuid.UUID, req campgroundRequest) domain.Campground {
	c := domain.Campground{
		ID:            id,
		Name:          req.Name,
		Address:       req.Address,
		District:      req.District,
		Province:      req.Province,
		PostalCode:    req.PostalCode,
		Tel:           req.Tel,
		PricePerNight: *req.PricePerNight,
		Breakfast:     req.Breakfast,
	}
	if req.BreakfastPrice != nil {
		c.BreakfastPrice = *req.BreakfastPrice
	}
	return c
}

func campgroundToResponse(c domain.Campground) campgroundResponse {
	return campgroundResponse{
		ID:             c.ID,
		Name:           c.Name,
		Address:        c.Address,
		District:       c.District,
		Province:       c.Province,
		PostalCode:     c.PostalCode,
		Tel:            c.Tel,
		PricePerNight:  money(c.PricePerNight),
		Breakfast:      c.Breakfast,
		BreakfastPrice: money(c.BreakfastPrice),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
