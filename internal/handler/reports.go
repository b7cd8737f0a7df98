package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brasas-pos/api/internal/database"
	"github.com/brasas-pos/api/internal/enum"
)

// ReportStore defines the database methods needed by report handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type ReportStore interface {
	ListOrdersByDay(ctx context.Context, arg database.ListOrdersByDayParams) ([]database.Order, error)
}

// ReportHandler serves the cash-close summary.
type ReportHandler struct {
	store ReportStore
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(store ReportStore) *ReportHandler {
	return &ReportHandler{store: store}
}

type dailySummaryResponse struct {
	Date      string          `json:"date"`
	Total     string          `json:"total"`
	NumOrders int             `json:"numOrders"`
	Orders    []orderResponse `json:"orders"`
}

// DailySummary handles GET /orders/today/summary.
// The optional date query (YYYY-MM-DD) defaults to today; the day runs
// midnight to midnight in the server's local timezone.
func (h *ReportHandler) DailySummary(w http.ResponseWriter, r *http.Request) {
	day := time.Now()
	if s := r.URL.Query().Get("date"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date format, use YYYY-MM-DD"})
			return
		}
		day = t
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 0, 1)

	orders, err := h.store.ListOrdersByDay(r.Context(), database.ListOrdersByDayParams{
		Start: start,
		End:   end,
	})
	if err != nil {
		log.Printf("ERROR: list orders by day: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	// Cancelled orders stay visible in the list but never count toward the
	// day's cash total.
	total := decimal.Zero
	numOrders := 0
	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o, nil)
		if o.Status == enum.OrderStatusCancelado {
			continue
		}
		numOrders++
		if d, err := decimal.NewFromString(resp[i].Total); err == nil {
			total = total.Add(d)
		}
	}

	writeJSON(w, http.StatusOK, dailySummaryResponse{
		Date:      start.Format("2006-01-02"),
		Total:     total.StringFixed(2),
		NumOrders: numOrders,
		Orders:    resp,
	})
}
