package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pkordes/wandernote/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_name", "date", "category", "description",
	"amount", "currency", "converted_amount", "budget_currency",
	"paid_by", "notes",
}

// ExportRow is the JSON representation of one exported expense. Its fields
// mirror domain.ExpenseExportRow so rows convert directly.
type ExportRow struct {
	TripName       string          `json:"trip_name"`
	Date           string          `json:"date"`
	Category       domain.Category `json:"category"`
	Description    string          `json:"description"`
	Amount         float64         `json:"amount"`
	Currency       string          `json:"currency"`
	BudgetCurrency string          `json:"budget_currency"`
	Converted      float64         `json:"converted_amount"`
	PaidBy         string          `json:"paid_by"`
	Notes          string          `json:"notes"`
}

// ExportExpenses handles GET /api/trips/{tripId}/expenses/export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) ExportExpenses(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := userAndTrip(w, r)
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		writeError(w, http.StatusBadRequest, badRequestBody("format must be json or csv"))
		return
	}

	rows, err := s.exports.Expenses(r.Context(), userID, tripID)
	if err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}

	if format == "csv" {
		writeCSV(w, tripID.String(), rows)
		return
	}
	out := make([]ExportRow, len(rows))
	for i, row := range rows {
		out[i] = ExportRow(row)
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes rows as an attachment. The body is buffered so a write
// error cannot leave a half-written 200 behind.
func writeCSV(w http.ResponseWriter, name string, rows []domain.ExpenseExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write(exportRowToCSVRecord(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="expenses-%s.csv"`, name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// exportRowToCSVRecord encodes a row as a flat string slice. Amounts use two
// fraction digits regardless of currency so the column parses uniformly.
func exportRowToCSVRecord(r domain.ExpenseExportRow) []string {
	return []string{
		r.TripName,
		r.Date,
		string(r.Category),
		r.Description,
		strconv.FormatFloat(r.Amount, 'f', 2, 64),
		r.Currency,
		strconv.FormatFloat(r.Converted, 'f', 2, 64),
		r.BudgetCurrency,
		r.PaidBy,
		r.Notes,
	}
}
