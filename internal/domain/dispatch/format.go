package dispatch

import (
	"encoding/json"
	"fmt"
)

// jsonIndent renders a decoded value with two-space indentation, matching
// the formatting the assistant-facing messages are written around.
func jsonIndent(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}

// asRecordList coerces a decoded JSON value into a list of objects.
// Some endpoints answer with a bare object on edge cases; callers fall
// back to dumping the raw value then.
func asRecordList(v any) ([]map[string]any, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	records := make([]map[string]any, 0, len(list))
	for _, item := range list {
		record, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		records = append(records, record)
	}
	return records, true
}

// experimentSummary is the trimmed projection shown in experiment lists.
// Field order is fixed so the rendered JSON is stable.
type experimentSummary struct {
	ID         any `json:"id"`
	Title      any `json:"title"`
	CreatedAt  any `json:"created_at"`
	ModifiedAt any `json:"modified_at"`
	Category   any `json:"category"`
	Status     any `json:"status"`
	Owner      any `json:"owner"`
	OwnerName  any `json:"owner_name"`
}

func summarizeExperiments(records []map[string]any) []experimentSummary {
	out := make([]experimentSummary, 0, len(records))
	for _, r := range records {
		out = append(out, experimentSummary{
			ID:         r["id"],
			Title:      r["title"],
			CreatedAt:  r["created_at"],
			ModifiedAt: r["modified_at"],
			Category:   r["category"],
			Status:     r["status"],
			Owner:      r["userid"],
			OwnerName:  r["fullname"],
		})
	}
	return out
}

type itemSummary struct {
	ID            any `json:"id"`
	Title         any `json:"title"`
	Category      any `json:"category"`
	CategoryTitle any `json:"category_title"`
	CreatedAt     any `json:"created_at"`
	ModifiedAt    any `json:"modified_at"`
	Rating        any `json:"rating"`
	Owner         any `json:"owner"`
	OwnerName     any `json:"owner_name"`
}

func summarizeItems(records []map[string]any) []itemSummary {
	out := make([]itemSummary, 0, len(records))
	for _, r := range records {
		out = append(out, itemSummary{
			ID:            r["id"],
			Title:         r["title"],
			Category:      r["category"],
			CategoryTitle: r["category_title"],
			CreatedAt:     r["created_at"],
			ModifiedAt:    r["modified_at"],
			Rating:        r["rating"],
			Owner:         r["userid"],
			OwnerName:     r["fullname"],
		})
	}
	return out
}

type templateSummary struct {
	ID         any `json:"id"`
	Title      any `json:"title"`
	CreatedAt  any `json:"created_at"`
	ModifiedAt any `json:"modified_at"`
}

func summarizeTemplates(records []map[string]any) []templateSummary {
	out := make([]templateSummary, 0, len(records))
	for _, r := range records {
		out = append(out, templateSummary{
			ID:         r["id"],
			Title:      r["title"],
			CreatedAt:  r["created_at"],
			ModifiedAt: r["modified_at"],
		})
	}
	return out
}

type categorySummary struct {
	ID        any `json:"id"`
	Title     any `json:"title"`
	Color     any `json:"color"`
	IsDefault any `json:"is_default"`
}

func summarizeCategories(records []map[string]any) []categorySummary {
	out := make([]categorySummary, 0, len(records))
	for _, r := range records {
		out = append(out, categorySummary{
			ID:        r["id"],
			Title:     r["title"],
			Color:     r["color"],
			IsDefault: r["is_default"],
		})
	}
	return out
}

type itemTypeSummary struct {
	ID    any `json:"id"`
	Title any `json:"title"`
	Color any `json:"color"`
	Body  any `json:"body"`
}

// summarizeItemTypes truncates the body field: item type bodies are full
// HTML templates and would drown the listing.
func summarizeItemTypes(records []map[string]any) []itemTypeSummary {
	out := make([]itemTypeSummary, 0, len(records))
	for _, r := range records {
		body, _ := r["body"].(string)
		if len(body) > 100 {
			body = body[:100] + "..."
		}
		out = append(out, itemTypeSummary{
			ID:    r["id"],
			Title: r["title"],
			Color: r["color"],
			Body:  body,
		})
	}
	return out
}

type bookingSummary struct {
	ID              any `json:"id"`
	Title           any `json:"title"`
	ItemID          any `json:"item_id"`
	ItemTitle       any `json:"item_title"`
	Start           any `json:"start"`
	End             any `json:"end"`
	User            any `json:"user"`
	UserID          any `json:"user_id"`
	DurationMinutes any `json:"duration_minutes"`
	IsCancellable   any `json:"is_cancellable"`
}

func summarizeBookings(records []map[string]any) []bookingSummary {
	out := make([]bookingSummary, 0, len(records))
	for _, r := range records {
		out = append(out, bookingSummary{
			ID:              r["id"],
			Title:           r["title"],
			ItemID:          r["items_id"],
			ItemTitle:       r["item_title"],
			Start:           r["start"],
			End:             r["end"],
			User:            r["fullname"],
			UserID:          r["userid"],
			DurationMinutes: r["event_duration_minutes"],
			IsCancellable:   r["book_is_cancellable"],
		})
	}
	return out
}

type bookableItemSummary struct {
	ID                   any  `json:"id"`
	Title                any  `json:"title"`
	Category             any  `json:"category"`
	MaxDurationMinutes   any  `json:"max_duration_minutes"`
	MaxConcurrentSlots   any  `json:"max_concurrent_slots"`
	CanOverlap           bool `json:"can_overlap"`
	IsCancellable        bool `json:"is_cancellable"`
	CancelAdvanceMinutes any  `json:"cancel_advance_minutes"`
	CanBookInPast        bool `json:"can_book_in_past"`
}

func summarizeBookableItem(r map[string]any) bookableItemSummary {
	return bookableItemSummary{
		ID:                   r["id"],
		Title:                r["title"],
		Category:             r["category_title"],
		MaxDurationMinutes:   orUnlimited(r["book_max_minutes"]),
		MaxConcurrentSlots:   orUnlimited(r["book_max_slots"]),
		CanOverlap:           truthy(r["book_can_overlap"]),
		IsCancellable:        truthy(r["book_is_cancellable"]),
		CancelAdvanceMinutes: r["book_cancel_minutes"],
		CanBookInPast:        truthy(r["book_users_can_in_past"]),
	}
}

// orUnlimited maps a zero or missing numeric limit to the string
// "unlimited", which is how the API expresses "no restriction".
func orUnlimited(v any) any {
	if truthy(v) {
		return v
	}
	return "unlimited"
}

// truthy mirrors loose JSON truthiness: nil, 0, "", and false are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
