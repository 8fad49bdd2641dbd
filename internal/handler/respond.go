package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/pkordes/campground-booking/internal/domain"
)

// envelope is the body of every API response:
//
//	{"success":true,"data":...,"count":n,"pagination":{...}}
//	{"success":false,"message":"..."}
type envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Count      *int        `json:"count,omitempty"`
	Pagination *pagination `json:"pagination,omitempty"`
	Data       any         `json:"data,omitempty"`
}

type pageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type pagination struct {
	Page  int      `json:"page"`
	Limit int      `json:"limit"`
	Total int64    `json:"total"`
	Next  *pageRef `json:"next,omitempty"`
	Prev  *pageRef `json:"prev,omitempty"`
}

func newPagination(p domain.PaginationParams, total int64) *pagination {
	out := &pagination{Page: p.Page, Limit: p.Limit, Total: total}
	if int64(p.Page*p.Limit) < total {
		out.Next = &pageRef{Page: p.Page + 1, Limit: p.Limit}
	}
	if p.Page > 1 {
		out.Prev = &pageRef{Page: p.Page - 1, Limit: p.Limit}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeData writes a single resource.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// writePage writes one page of a listing. items must be a non-nil slice so
// an empty page renders as [].
func writePage[T, R any](w http.ResponseWriter, page domain.Page[T], p domain.PaginationParams, convert func(T) R) {
	items := make([]R, len(page.Items))
	for i, it := range page.Items {
		items[i] = convert(it)
	}
	n := len(items)
	writeJSON(w, http.StatusOK, envelope{
		Success:    true,
		Count:      &n,
		Pagination: newPagination(p, page.Total),
		Data:       items,
	})
}

// writeMessage writes a failure envelope.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

// money renders a decimal as a bare JSON number rather than a string.
type money decimal.Decimal

func (m money) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(m).String()), nil
}

func moneyPtr(d *decimal.Decimal) *money {
	if d == nil {
		return nil
	}
	m := money(*d)
	return &m
}
