package elabftw

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ListExperimentsParams are the query filters for ListExperiments.
// Owner passes through verbatim; the API accepts a single user id or a
// comma-separated list like "2,3".
type ListExperimentsParams struct {
	Limit  int
	Offset int
	Search string
	Owner  string
}

// CreateExperimentParams describe a new experiment. Template and Category
// are only sent when non-nil (-1 and 0 are meaningful template values).
type CreateExperimentParams struct {
	Title    string
	Body     string
	Template *int
	Category *int
	Tags     []string
}

// UpdateExperimentParams carry the PATCH fields; nil fields are omitted.
type UpdateExperimentParams struct {
	Title    *string
	Body     *string
	Category *int
	Status   *int
}

// ListExperiments returns experiments, optionally filtered by search query
// and owner.
func (c *Client) ListExperiments(ctx context.Context, p ListExperimentsParams) (any, error) {
	q := paginationQuery(p.Limit, p.Offset)
	if p.Search != "" {
		q.Set("q", p.Search)
	}
	if p.Owner != "" {
		q.Set("owner", p.Owner)
	}
	return c.GetJSON(ctx, "/experiments", q)
}

// GetExperiment returns the full record for one experiment.
func (c *Client) GetExperiment(ctx context.Context, experimentID int) (any, error) {
	return c.GetJSON(ctx, "/experiments/"+strconv.Itoa(experimentID), nil)
}

// CreateExperiment creates an experiment, adds any tags, and returns the
// created record. The new id comes from the Location header of the POST.
func (c *Client) CreateExperiment(ctx context.Context, p CreateExperimentParams) (any, error) {
	payload := map[string]any{
		"title": p.Title,
		"body":  p.Body,
	}
	if p.Template != nil {
		payload["template"] = *p.Template
	}
	if p.Category != nil {
		payload["category"] = *p.Category
	}

	location, err := c.post(ctx, "/experiments", payload)
	if err != nil {
		return nil, err
	}
	experimentID, ok := idFromLocation(location)
	if !ok {
		return nil, fmt.Errorf("could not determine created experiment ID from location %q", location)
	}

	for _, tag := range p.Tags {
		if _, tagErr := c.post(ctx, "/experiments/"+strconv.Itoa(experimentID)+"/tags", map[string]string{"tag": tag}); tagErr != nil {
			return nil, tagErr
		}
	}

	return c.GetExperiment(ctx, experimentID)
}

// UpdateExperiment patches the given fields and returns the updated record.
// At least one field must be set.
func (c *Client) UpdateExperiment(ctx context.Context, experimentID int, p UpdateExperimentParams) (any, error) {
	payload := map[string]any{}
	if p.Title != nil {
		payload["title"] = *p.Title
	}
	if p.Body != nil {
		payload["body"] = *p.Body
	}
	if p.Category != nil {
		payload["category"] = *p.Category
	}
	if p.Status != nil {
		payload["status"] = *p.Status
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("at least one field must be provided for update")
	}

	if err := c.patch(ctx, "/experiments/"+strconv.Itoa(experimentID), payload); err != nil {
		return nil, err
	}
	return c.GetExperiment(ctx, experimentID)
}

// DeleteExperiment soft-deletes an experiment. Recovery, if any, happens
// upstream on the eLabFTW side.
func (c *Client) DeleteExperiment(ctx context.Context, experimentID int) (map[string]any, error) {
	if err := c.delete(ctx, "/experiments/"+strconv.Itoa(experimentID)); err != nil {
		return nil, err
	}
	return statusMessage(fmt.Sprintf("Experiment %d has been deleted", experimentID)), nil
}

// SetExperimentStatus patches only the status field and returns the updated
// record.
func (c *Client) SetExperimentStatus(ctx context.Context, experimentID, statusID int) (any, error) {
	if err := c.patch(ctx, "/experiments/"+strconv.Itoa(experimentID), map[string]int{"status": statusID}); err != nil {
		return nil, err
	}
	return c.GetExperiment(ctx, experimentID)
}

// AddExperimentTag attaches a tag to an experiment.
func (c *Client) AddExperimentTag(ctx context.Context, experimentID int, tag string) (map[string]any, error) {
	if _, err := c.post(ctx, "/experiments/"+strconv.Itoa(experimentID)+"/tags", map[string]string{"tag": tag}); err != nil {
		return nil, err
	}
	return statusMessage(fmt.Sprintf("Tag '%s' added to experiment %d", tag, experimentID)), nil
}

// RemoveExperimentTag removes a tag by its id.
func (c *Client) RemoveExperimentTag(ctx context.Context, experimentID, tagID int) (map[string]any, error) {
	if err := c.delete(ctx, fmt.Sprintf("/experiments/%d/tags/%d", experimentID, tagID)); err != nil {
		return nil, err
	}
	return statusMessage(fmt.Sprintf("Tag %d removed from experiment %d", tagID, experimentID)), nil
}

// LinkToExperiment links an experiment or item to an experiment. linkType
// must be "experiments" or "items".
func (c *Client) LinkToExperiment(ctx context.Context, experimentID, linkID int, linkType string) (map[string]any, error) {
	if linkType != "experiments" && linkType != "items" {
		return nil, fmt.Errorf("link_type must be 'experiments' or 'items'")
	}
	path := fmt.Sprintf("/experiments/%d/%s_links/%d", experimentID, linkType, linkID)
	if _, err := c.post(ctx, path, map[string]any{}); err != nil {
		return nil, err
	}
	noun := linkType[:len(linkType)-1]
	return statusMessage(fmt.Sprintf("Linked %s %d to experiment %d", noun, linkID, experimentID)), nil
}

// UploadToExperiment attaches a local file to an experiment.
func (c *Client) UploadToExperiment(ctx context.Context, experimentID int, filePath, comment string) (map[string]any, error) {
	if err := c.upload(ctx, fmt.Sprintf("/experiments/%d/uploads", experimentID), filePath, comment); err != nil {
		return nil, err
	}
	return statusMessage(fmt.Sprintf("File '%s' uploaded to experiment %d", baseName(filePath), experimentID)), nil
}

// ListExperimentTemplates returns the experiment templates visible to the
// API key's user.
func (c *Client) ListExperimentTemplates(ctx context.Context, limit, offset int) (any, error) {
	return c.GetJSON(ctx, "/experiments_templates", paginationQuery(limit, offset))
}

// ListExperimentCategories returns the experiment categories of a team.
func (c *Client) ListExperimentCategories(ctx context.Context, teamID int) (any, error) {
	return c.GetJSON(ctx, fmt.Sprintf("/teams/%d/experiments_categories", teamID), nil)
}

func paginationQuery(limit, offset int) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return q
}
