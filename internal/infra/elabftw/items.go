package elabftw

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// ListItemsParams are the query filters for ListItems. Category filters by
// item type; Owner passes through verbatim (single id or comma-separated).
type ListItemsParams struct {
	Limit    int
	Offset   int
	Search   string
	Category *int
	Owner    string
}

// CreateItemParams describe a new database item. Only the category is
// required by the API; title and body are applied with a follow-up PATCH.
type CreateItemParams struct {
	Category int
	Title    string
	Body     string
	Tags     []string
}

// UpdateItemParams carry the PATCH fields; nil fields are omitted.
type UpdateItemParams struct {
	Title    *string
	Body     *string
	Category *int
	Rating   *int
}

// ListItems returns database items (resources), optionally filtered.
func (c *Client) ListItems(ctx context.Context, p ListItemsParams) (any, error) {
	q := paginationQuery(p.Limit, p.Offset)
	if p.Search != "" {
		q.Set("q", p.Search)
	}
	if p.Category != nil {
		q.Set("cat", strconv.Itoa(*p.Category))
	}
	if p.Owner != "" {
		q.Set("owner", p.Owner)
	}
	return c.GetJSON(ctx, "/items", q)
}

// GetItem returns the full record for one database item.
func (c *Client) GetItem(ctx context.Context, itemID int) (any, error) {
	return c.GetJSON(ctx, "/items/"+strconv.Itoa(itemID), nil)
}

// CreateItem creates a database item in the fixed two-step sequence the API
// requires: POST with the category, then PATCH title/body onto the new id.
// When the PATCH fails the item already exists upstream; the failure is
// surfaced as-is, there is no compensating delete. Tag additions are best
// effort — a status error (tag already exists) is ignored.
func (c *Client) CreateItem(ctx context.Context, p CreateItemParams) (map[string]any, error) {
	location, err := c.post(ctx, "/items", map[string]int{"category_id": p.Category})
	if err != nil {
		return nil, err
	}
	itemID, ok := idFromLocation(location)
	if !ok {
		return nil, fmt.Errorf("could not determine created item ID from location %q", location)
	}

	patch := map[string]any{}
	if p.Title != "" {
		patch["title"] = p.Title
	}
	if p.Body != "" {
		patch["body"] = p.Body
	}
	if len(patch) > 0 {
		if err := c.patch(ctx, "/items/"+strconv.Itoa(itemID), patch); err != nil {
			return nil, err
		}
	}

	for _, tag := range p.Tags {
		_, tagErr := c.post(ctx, "/items/"+strconv.Itoa(itemID)+"/tags", map[string]string{"tag": tag})
		var statusErr *StatusError
		if tagErr != nil && !errors.As(tagErr, &statusErr) {
			return nil, tagErr
		}
	}

	title := p.Title
	if title == "" {
		title = "(default from category)"
	}
	return map[string]any{
		"status":  "success",
		"item_id": itemID,
		"title":   title,
		"message": fmt.Sprintf("Item created successfully with ID %d", itemID),
	}, nil
}

// UpdateItem patches the given fields. At least one field must be set.
func (c *Client) UpdateItem(ctx context.Context, itemID int, p UpdateItemParams) (map[string]any, error) {
	payload := map[string]any{}
	if p.Title != nil {
		payload["title"] = *p.Title
	}
	if p.Body != nil {
		payload["body"] = *p.Body
	}
	if p.Category != nil {
		payload["category_id"] = *p.Category
	}
	if p.Rating != nil {
		payload["rating"] = *p.Rating
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("no fields to update: provide at least one of title, body, category, rating")
	}

	if err := c.patch(ctx, "/items/"+strconv.Itoa(itemID), payload); err != nil {
		return nil, err
	}

	updated := make([]string, 0, len(payload))
	for k := range payload {
		updated = append(updated, k)
	}
	return map[string]any{
		"status":         "success",
		"message":        fmt.Sprintf("Item %d updated successfully", itemID),
		"updated_fields": updated,
	}, nil
}

// DeleteItem soft-deletes a database item.
func (c *Client) DeleteItem(ctx context.Context, itemID int) (map[string]any, error) {
	if err := c.delete(ctx, "/items/"+strconv.Itoa(itemID)); err != nil {
		return nil, err
	}
	return statusMessage(fmt.Sprintf("Item %d has been deleted", itemID)), nil
}

// ListItemsTypes returns the item types (resource categories) of a team.
func (c *Client) ListItemsTypes(ctx context.Context, teamID int) (any, error) {
	return c.GetJSON(ctx, fmt.Sprintf("/teams/%d/items_types", teamID), nil)
}

// AddItemTag attaches a tag to a database item.
func (c *Client) AddItemTag(ctx context.Context, itemID int, tag string) (map[string]any, error) {
	if _, err := c.post(ctx, "/items/"+strconv.Itoa(itemID)+"/tags", map[string]string{"tag": tag}); err != nil {
		return nil, err
	}
	return statusMessage(fmt.Sprintf("Tag '%s' added to item %d", tag, itemID)), nil
}

// RemoveItemTag removes a tag from a database item by its id.
func (c *Client) RemoveItemTag(ctx context.Context, itemID, tagID int) (map[string]any, error) {
	if err := c.delete(ctx, fmt.Sprintf("/items/%d/tags/%d", itemID, tagID)); err != nil {
		return nil, err
	}
	return statusMessage(fmt.Sprintf("Tag %d removed from item %d", tagID, itemID)), nil
}

// UploadToItem attaches a local file to a database item.
func (c *Client) UploadToItem(ctx context.Context, itemID int, filePath, comment string) (map[string]any, error) {
	if err := c.upload(ctx, fmt.Sprintf("/items/%d/uploads", itemID), filePath, comment); err != nil {
		return nil, err
	}
	return statusMessage(fmt.Sprintf("File '%s' uploaded to item %d", baseName(filePath), itemID)), nil
}

// LinkToItem links an item or experiment to a database item. linkType must
// be "items" or "experiments".
func (c *Client) LinkToItem(ctx context.Context, itemID, linkID int, linkType string) (map[string]any, error) {
	if linkType != "experiments" && linkType != "items" {
		return nil, fmt.Errorf("link_type must be 'experiments' or 'items'")
	}
	path := fmt.Sprintf("/items/%d/%s_links/%d", itemID, linkType, linkID)
	if _, err := c.post(ctx, path, map[string]any{}); err != nil {
		return nil, err
	}
	noun := linkType[:len(linkType)-1]
	return statusMessage(fmt.Sprintf("Linked %s %d to item %d", noun, linkID, itemID)), nil
}
