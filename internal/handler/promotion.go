package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/campground-booking/internal/domain"
)

type promotionRequest struct {
	PromotionCode      string           `json:"promotionCode" validate:"required,max=10"`
	DiscountPercentage int              `json:"discountPercentage" validate:"required,min=1,max=100"`
	ExpiredDate        *dateTime        `json:"expiredDate" validate:"required"`
	MinSpend           *decimal.Decimal `json:"minSpend"`
	MaxUses            *int             `json:"maxUses" validate:"omitnil,min=1"`
}

type promotionResponse struct {
	ID                 uuid.UUID `json:"id"`
	PromotionCode      string    `json:"promotionCode"`
	DiscountPercentage int       `json:"discountPercentage"`
	ExpiredDate        time.Time `json:"expiredDate"`
	MinSpend           *money    `json:"minSpend,omitempty"`
	MaxUses            *int      `json:"maxUses,omitempty"`
	UsedCount          int       `json:"usedCount"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type usageResponse struct {
	ID        uuid.UUID `json:"id"`
	Promotion uuid.UUID `json:"promotion"`
	User      uuid.UUID `json:"user"`
	CartTotal money     `json:"cartTotal"`
	UsedAt    time.Time `json:"usedAt"`
}

// applyRequest is checked by the applier itself, in its documented order,
// so it carries no validation tags.
type applyRequest struct {
	Code      string          `json:"code"`
	CartTotal decimal.Decimal `json:"cartTotal"`
}

type appliedResponse struct {
	DiscountPercentage int    `json:"discountPercentage"`
	Code               string `json:"code"`
}

// ListPromotions handles GET /api/v1/promotions.
func (s *Server) ListPromotions(w http.ResponseWriter, r *http.Request) {
	p, err := paginationParams(r)
	if err != nil {
		s.writeError(w, r, err, "Promotion")
		return
	}
	page, err := s.promotions.List(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err, "Promotion")
		return
	}
	writePage(w, page, p, promotionToResponse)
}

// GetPromotion handles GET /api/v1/promotions/{id}.
func (s *Server) GetPromotion(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "Promotion")
		return
	}
	p, err := s.promotions.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "Promotion")
		return
	}
	writeData(w, http.StatusOK, promotionToResponse(p))
}

// CreatePromotion handles POST /api/v1/promotions.
func (s *Server) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	var req promotionRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeError(w, r, err, "Promotion")
		return
	}
	created, err := s.promotions.Create(r.Context(), requestToPromotion(uuid.Nil, req))
	if err != nil {
		s.writeError(w, r, err, "Promotion")
		return
	}
	writeData(w, http.StatusCreated, promotionToResponse(created))
}

// UpdatePromotion handles PUT /api/v1/promotions/{id}.
func (s *Server) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "Promotion")
		return
	}
	var req promotionRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeError(w, r, err, "Promotion")
		return
	}
	updated, err := s.promotions.Update(r.Context(), requestToPromotion(id, req))
	if err != nil {
		s.writeError(w, r, err, "Promotion")
		return
	}
	writeData(w, http.StatusOK, promotionToResponse(updated))
}

// DeletePromotion handles DELETE /api/v1/promotions/{id}.
func (s *Server) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "Promotion")
		return
	}
	if err := s.promotions.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "Promotion")
		return
	}
	writeData(w, http.StatusOK, struct{}{})
}

// ListPromotionUsages handles GET /api/v1/promotions/{id}/usages.
func (s *Server) ListPromotionUsages(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "Promotion")
		return
	}
	p, err := paginationParams(r)
	if err != nil {
		s.writeError(w, r, err, "Promotion")
		return
	}
	page, err := s.promotions.ListUsages(r.Context(), id, p)
	if err != nil {
		s.writeError(w, r, err, "Promotion")
		return
	}
	writePage(w, page, p, usageToResponse)
}

// ApplyPromotion handles POST /api/v1/promotions/apply.
func (s *Server) ApplyPromotion(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeError(w, r, err, "Promotion")
		return
	}
	applied, err := s.applier.Apply(r.Context(), req.Code, req.CartTotal, caller(r).UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, msgPromoInvalid)
			return
		}
		s.writeError(w, r, err, "Promotion")
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: msgPromoApplied,
		Data: appliedResponse{
			DiscountPercentage: applied.DiscountPercentage,
			Code:               applied.Code,
		},
	})
}

// --- mapping helpers --------------------------------------------------------

func requestToPromotion(id uuid.UUID, req promotionRequest) domain.Promotion {
	return domain.Promotion{
		ID:                 id,
		Code:               req.PromotionCode,
		DiscountPercentage: req.DiscountPercentage,
		ExpiredDate:        req.ExpiredDate.Time,
		MinSpend:           req.MinSpend,
		MaxUses:            req.MaxUses,
	}
}

func promotionToResponse(p domain.Promotion) promotionResponse {
	return promotionResponse{
		ID:                 p.ID,
		PromotionCode:      p.Code,
		DiscountPercentage: p.DiscountPercentage,
		ExpiredDate:        p.ExpiredDate,
		MinSpend:           moneyPtr(p.MinSpend),
		MaxUses:            p.MaxUses,
		UsedCount:          p.UsedCount,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func usageToResponse(u domain.PromotionUsage) usageResponse {
	return usageResponse{
		ID:        u.ID,
		Promotion: u.PromotionID,
		User:      u.UserID,
		CartTotal: money(u.CartTotal),
		UsedAt:    u.UsedAt,
	}
}
