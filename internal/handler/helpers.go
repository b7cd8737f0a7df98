package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/brasas-pos/api/internal/cart"
	"github.com/brasas-pos/api/internal/database"
	"github.com/brasas-pos/api/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

func numericToString(n pgtype.Numeric) string {
	if !n.Valid {
		return "0.00"
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return "0.00"
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return "0.00"
	}
	return d.StringFixed(2)
}

// orderResponse is the wire shape for an order across every endpoint.
type orderResponse struct {
	ID          uuid.UUID   `json:"id"`
	TableNumber *int32      `json:"tableNumber"`
	ToGo        bool        `json:"toGo"`
	Status      string      `json:"status"`
	Items       []cart.Item `json:"items"`
	Total       string      `json:"total"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// toOrderResponse converts a database.Order to an orderResponse. When the
// caller already holds the decoded items (create/update paths) it passes
// them in; otherwise they are decoded from the stored JSONB document.
func toOrderResponse(o database.Order, items []cart.Item) orderResponse {
	if items == nil {
		decoded, err := service.DecodeItems(o.Items)
		if err != nil {
			log.Printf("ERROR: decode items for order %s: %v", o.ID, err)
		}
		items = decoded
	}
	if items == nil {
		items = []cart.Item{}
	}

	resp := orderResponse{
		ID:        o.ID,
		ToGo:      o.ToGo,
		Status:    o.Status,
		Items:     items,
		Total:     numericToString(o.Total),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	if o.TableNumber.Valid {
		n := o.TableNumber.Int32
		resp.TableNumber = &n
	}
	return resp
}
