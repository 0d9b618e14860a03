package elabftw

import (
	"context"
	"fmt"
	"strconv"
)

// ListEventsParams are the query filters for ListEvents. Start and End are
// ISO 8601 datetimes passed through verbatim.
type ListEventsParams struct {
	Limit  int
	Offset int
	Start  string
	End    string
	ItemID *int
}

// CreateBookingParams describe a new scheduler event for a bookable item.
type CreateBookingParams struct {
	ItemID int
	Start  string
	End    string
	Title  string
}

// UpdateBookingParams carry the PATCH fields; nil fields are omitted.
type UpdateBookingParams struct {
	Start *string
	End   *string
	Title *string
}

// ListEvents returns scheduler events (bookings), optionally windowed by
// start/end and filtered to one item.
func (c *Client) ListEvents(ctx context.Context, p ListEventsParams) (any, error) {
	q := paginationQuery(p.Limit, p.Offset)
	if p.Start != "" {
		q.Set("start", p.Start)
	}
	if p.End != "" {
		q.Set("end", p.End)
	}
	if p.ItemID != nil {
		q.Set("item", strconv.Itoa(*p.ItemID))
	}
	return c.GetJSON(ctx, "/events", q)
}

// GetEvent returns the full record for one scheduler event.
func (c *Client) GetEvent(ctx context.Context, eventID int) (any, error) {
	return c.GetJSON(ctx, "/events/"+strconv.Itoa(eventID), nil)
}

// CreateBooking reserves an item for a time window. When the server reports
// the new event id in the Location header the full record is fetched;
// otherwise a generic success message is returned.
func (c *Client) CreateBooking(ctx context.Context, p CreateBookingParams) (any, error) {
	payload := map[string]any{
		"item":  p.ItemID,
		"start": p.Start,
		"end":   p.End,
	}
	if p.Title != "" {
		payload["title"] = p.Title
	}

	location, err := c.post(ctx, "/events", payload)
	if err != nil {
		return nil, err
	}
	if eventID, ok := idFromLocation(location); ok {
		return c.GetEvent(ctx, eventID)
	}
	return statusMessage("Booking created successfully"), nil
}

// UpdateBooking patches the given fields and returns the updated record.
// At least one field must be set.
func (c *Client) UpdateBooking(ctx context.Context, eventID int, p UpdateBookingParams) (any, error) {
	payload := map[string]any{}
	if p.Start != nil {
		payload["start"] = *p.Start
	}
	if p.End != nil {
		payload["end"] = *p.End
	}
	if p.Title != nil {
		payload["title"] = *p.Title
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("at least one field must be provided for update")
	}

	if err := c.patch(ctx, "/events/"+strconv.Itoa(eventID), payload); err != nil {
		return nil, err
	}
	return c.GetEvent(ctx, eventID)
}

// DeleteBooking cancels a scheduler event. Cancellation policies are
// enforced upstream.
func (c *Client) DeleteBooking(ctx context.Context, eventID int) (map[string]any, error) {
	if err := c.delete(ctx, "/events/"+strconv.Itoa(eventID)); err != nil {
		return nil, err
	}
	return statusMessage(fmt.Sprintf("Booking %d has been cancelled", eventID)), nil
}
