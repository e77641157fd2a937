package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType tags an inventory update. The set below is what the product
// service emits; any other non-empty tag is stored as-is.
type EventType string

const (
	EventSale           EventType = "sale"
	EventRestock        EventType = "restock"
	EventNameChange     EventType = "name_change"
	EventPriceChange    EventType = "price_change"
	EventCategoryChange EventType = "category_change"
	EventReorderChange  EventType = "reorder_change"
	EventAdd            EventType = "add"
	EventDelete         EventType = "delete"

	// EventUnknown is the bucket unrecognised tags fall into when classified.
	EventUnknown EventType = "unknown"
)

var knownEventTypes = map[EventType]struct{}{
	EventSale:           {},
	EventRestock:        {},
	EventNameChange:     {},
	EventPriceChange:    {},
	EventCategoryChange: {},
	EventReorderChange:  {},
	EventAdd:            {},
	EventDelete:         {},
}

// Known reports whether t is one of the tags the product service emits.
func (t EventType) Known() bool {
	_, ok := knownEventTypes[t]
	return ok
}

// Kind returns t when it is a known tag and EventUnknown otherwise.
func (t EventType) Kind() EventType {
	if t.Known() {
		return t
	}
	return EventUnknown
}

// AffectsStock reports whether events of this type carry quantity changes.
func (t EventType) AffectsStock() bool {
	switch t {
	case EventSale, EventRestock, EventAdd, EventDelete:
		return true
	default:
		return false
	}
}

// Update is a normalized change description. Nil pointers are stored as NULL.
type Update struct {
	Type            EventType        `json:"type" db:"type" swaggertype:"string" example:"restock"`
	ProductID       *int64           `json:"product_id" db:"product_id" example:"2"`
	OldQuantity     *int             `json:"old_quantity" db:"old_quantity" example:"120"`
	NewQuantity     *int             `json:"new_quantity" db:"new_quantity" example:"128"`
	User            string           `json:"user" db:"user" example:"admin"`
	ProductName     *string          `json:"product_name" db:"product_name" example:"Smartphone Case"`
	OldName         *string          `json:"old_name" db:"old_name"`
	NewName         *string          `json:"new_name" db:"new_name"`
	OldPrice        *decimal.Decimal `json:"old_price" db:"old_price" swaggertype:"number"`
	NewPrice        *decimal.Decimal `json:"new_price" db:"new_price" swaggertype:"number"`
	OldCategory     *string          `json:"old_category" db:"old_category"`
	NewCategory     *string          `json:"new_category" db:"new_category"`
	OldReorderLevel *int             `json:"old_reorder_level" db:"old_reorder_level"`
	NewReorderLevel *int             `json:"new_reorder_level" db:"new_reorder_level"`
}

// UpdateEvent is a stored, immutable Update.
type UpdateEvent struct {
	ID int64 `json:"id" db:"id" example:"1"`
	Update
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

// EnrichedEvent adds the referenced product's name as of read time.
// CurrentProductName is nil when the product no longer exists.
type EnrichedEvent struct {
	UpdateEvent
	CurrentProductName *string `json:"current_product_name"`
}
