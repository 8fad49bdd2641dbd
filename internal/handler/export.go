// export.go implements GET /api/v1/bookings/export.
// Returns every booking as a flat table, as JSON by default or as CSV with
// ?format=csv.
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/campground-booking/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"booking_id", "user_id", "campground_id", "campground_name",
	"check_in", "check_out", "duration", "breakfast",
	"price_per_night", "breakfast_price", "total_price", "status",
}

type exportRowResponse struct {
	BookingID      uuid.UUID `json:"booking"`
	UserID         uuid.UUID `json:"user"`
	CampgroundID   uuid.UUID `json:"campground"`
	CampgroundName string    `json:"campgroundName,omitempty"`
	CheckInDate    time.Time `json:"checkInDate"`
	CheckOutDate   time.Time `json:"checkOutDate"`
	Duration       string    `json:"duration"`
	Breakfast      bool      `json:"breakfast"`
	PricePerNight  money     `json:"pricePerNight"`
	BreakfastPrice money     `json:"breakfastPrice"`
	TotalPrice     money     `json:"totalPrice"`
	Status         string    `json:"status"`
}

// GetExport handles GET /api/v1/bookings/export.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid format")
		return
	}
	if format != nil && *format != "csv" && *format != "json" {
		writeMessage(w, http.StatusBadRequest, "format must be one of: csv json")
		return
	}

	rows, err := s.export.Export(r.Context())
	if err != nil {
		s.writeError(w, r, err, "Booking")
		return
	}

	if format != nil && *format == "csv" {
		writeCSV(w, rows)
		return
	}
	out := make([]exportRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, exportRowToResponse(row))
	}
	n := len(out)
	writeJSON(w, http.StatusOK, envelope{Success: true, Count: &n, Data: out})
}

// writeCSV encodes rows as CSV with a header line.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	// Writes into a bytes.Buffer cannot fail.
	_ = cw.Write(csvHeaders)
	for _, row := range rows {
		_ = cw.Write(exportRowToCSVRecord(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func exportRowToResponse(row domain.ExportRow) exportRowResponse {
	return exportRowResponse{
		BookingID:      row.BookingID,
		UserID:         row.UserID,
		CampgroundID:   row.CampgroundID,
		CampgroundName: row.CampgroundName,
		CheckInDate:    row.CheckIn,
		CheckOutDate:   row.CheckOut,
		Duration:       row.Duration,
		Breakfast:      row.Breakfast,
		PricePerNight:  money(row.PricePerNight),
		BreakfastPrice: money(row.BreakfastPrice),
		TotalPrice:     money(row.TotalPrice),
		Status:         string(row.Status),
	}
}

// exportRowToCSVRecord flattens a row; times are RFC 3339 in UTC and money
// keeps two decimal places.
func exportRowToCSVRecord(row domain.ExportRow) []string {
	return []string{
		row.BookingID.String(),
		row.UserID.String(),
		row.CampgroundID.String(),
		row.CampgroundName,
		row.CheckIn.UTC().Format(time.RFC3339),
		row.CheckOut.UTC().Format(time.RFC3339),
		row.Duration,
		strconv.FormatBool(row.Breakfast),
		row.PricePerNight.StringFixed(2),
		row.BreakfastPrice.StringFixed(2),
		row.TotalPrice.StringFixed(2),
		string(row.Status),
	}
}
