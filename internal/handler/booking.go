package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/campground-booking/internal/domain"
)

// Derived fields (duration and every price) are absent from the request
// types: they are always computed from the campground.

type bookingCreateRequest struct {
	CheckInDate  *dateTime `json:"checkInDate" validate:"required"`
	CheckOutDate *dateTime `json:"checkOutDate" validate:"required"`
	Breakfast    bool      `json:"breakfast"`
	Status       string    `json:"status" validate:"omitempty,oneof=pending confirmed checked-in checked-out cancelled"`
}

type bookingUpdateRequest struct {
	CheckInDate  *dateTime  `json:"checkInDate"`
	CheckOutDate *dateTime  `json:"checkOutDate"`
	Campground   *uuid.UUID `json:"campground"`
	Breakfast    *bool      `json:"breakfast"`
	Status       *string    `json:"status" validate:"omitnil,oneof=pending confirmed checked-in checked-out cancelled"`
}

type bookingResponse struct {
	ID             uuid.UUID `json:"id"`
	CheckInDate    time.Time `json:"checkInDate"`
	CheckOutDate   time.Time `json:"checkOutDate"`
	Duration       string    `json:"duration"`
	Breakfast      bool      `json:"breakfast"`
	PricePerNight  money     `json:"pricePerNight"`
	BreakfastPrice money     `json:"breakfastPrice"`
	TotalPrice     money     `json:"totalPrice"`
	Status         string    `json:"status"`
	User           uuid.UUID `json:"user"`
	Campground     uuid.UUID `json:"campground"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ListBookings handles GET /api/v1/bookings and
// GET /api/v1/campgrounds/{campgroundId}/bookings.
func (s *Server) ListBookings(w http.ResponseWriter, r *http.Request) {
	campgroundID, err := optionalPathUUID(r, "campgroundId")
	if err != nil {
		s.writeError(w, r, err, "Booking")
		return
	}
	p, err := paginationParams(r)
	if err != nil {
		s.writeError(w, r, err, "Booking")
		return
	}
	page, err := s.bookings.List(r.Context(), caller(r), campgroundID, p)
	if err != nil {
		s.writeError(w, r, err, "Booking")
		return
	}
	writePage(w, page, p, bookingToResponse)
}

// GetBooking handles GET /api/v1/bookings/{id}.
func (s *Server) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "Booking")
		return
	}
	b, err := s.bookings.GetByID(r.Context(), caller(r), id)
	if err != nil {
		s.writeError(w, r, err, "Booking")
		return
	}
	writeData(w, http.StatusOK, bookingToResponse(b))
}

// CreateBooking handles POST /api/v1/campgrounds/{campgroundId}/bookings.
func (s *Server) CreateBooking(w http.ResponseWriter, r *http.Request) {
	campgroundID, err := pathUUID(r, "campgroundId")
	if err != nil {
		s.writeError(w, r, err, "Booking")
		return
	}
	var req bookingCreateRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeError(w, r, err, "Booking")
		return
	}
	draft := domain.Booking{
		CampgroundID: campgroundID,
		CheckIn:      req.CheckInDate.Time,
		CheckOut:     req.CheckOutDate.Time,
		Breakfast:    req.Breakfast,
		Status:       domain.BookingStatus(req.Status),
	}
	created, err := s.bookings.Create(r.Context(), caller(r), draft)
	if err != nil {
		s.writeError(w, r, err, "Booking")
		return
	}
	writeData(w, http.StatusCreated, bookingToResponse(created))
}

// UpdateBooking handles PUT /api/v1/bookings/{id}. Omitted fields keep
// their stored values; the booking is re-priced either way.
func (s *Server) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "Booking")
		return
	}
	var req bookingUpdateRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeError(w, r, err, "Booking")
		return
	}
	patch := domain.BookingPatch{
		CheckIn:      timePtr(req.CheckInDate),
		CheckOut:     timePtr(req.CheckOutDate),
		CampgroundID: req.Campground,
		Breakfast:    req.Breakfast,
	}
	if req.Status != nil {
		st := domain.BookingStatus(*req.Status)
		patch.Status = &st
	}
	updated, err := s.bookings.Update(r.Context(), caller(r), id, patch)
	if err != nil {
		s.writeError(w, r, err, "Booking")
		return
	}
	writeData(w, http.StatusOK, bookingToResponse(updated))
}

// DeleteBooking handles DELETE /api/v1/bookings/{id}.
func (s *Server) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "Booking")
		return
	}
	if err := s.bookings.Delete(r.Context(), caller(r), id); err != nil {
		s.writeError(w, r, err, "Booking")
		return
	}
	writeData(w, http.StatusOK, struct{}{})
}

func bookingToResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:             b.ID,
		CheckInDate:    b.CheckIn,
		CheckOutDate:   b.CheckOut,
		Duration:       b.Duration,
		Breakfast:      b.Breakfast,
		PricePerNight:  money(b.PricePerNight),
		BreakfastPrice: money(b.BreakfastPrice),
		TotalPrice:     money(b.TotalPrice),
		Status:         string(b.Status),
		User:           b.UserID,
		Campground:     b.CampgroundID,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
