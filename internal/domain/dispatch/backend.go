// Package dispatch routes MCP tool requests to eLabFTW backend operations.
// It owns argument extraction against the catalog schemas, error
// normalization, and the text rendering of results. The transport layer
// above it stays thin: it decodes arguments and forwards them here.
package dispatch

import (
	"context"

	"github.com/matiasleandrokruk/elabmcp/internal/infra/elabftw"
)

// Backend is the set of eLabFTW operations the dispatcher can invoke.
// *elabftw.Client satisfies it; tests substitute call-counting stubs.
type Backend interface {
	ListExperiments(ctx context.Context, p elabftw.ListExperimentsParams) (any, error)
	GetExperiment(ctx context.Context, experimentID int) (any, error)
	CreateExperiment(ctx context.Context, p elabftw.CreateExperimentParams) (any, error)
	UpdateExperiment(ctx context.Context, experimentID int, p elabftw.UpdateExperimentParams) (any, error)
	DeleteExperiment(ctx context.Context, experimentID int) (map[string]any, error)
	SetExperimentStatus(ctx context.Context, experimentID, statusID int) (any, error)
	AddExperimentTag(ctx context.Context, experimentID int, tag string) (map[string]any, error)
	RemoveExperimentTag(ctx context.Context, experimentID, tagID int) (map[string]any, error)
	LinkToExperiment(ctx context.Context, experimentID, linkID int, linkType string) (map[string]any, error)
	UploadToExperiment(ctx context.Context, experimentID int, filePath, comment string) (map[string]any, error)
	ListExperimentTemplates(ctx context.Context, limit, offset int) (any, error)
	ListExperimentCategories(ctx context.Context, teamID int) (any, error)

	ListItems(ctx context.Context, p elabftw.ListItemsParams) (any, error)
	GetItem(ctx context.Context, itemID int) (any, error)
	CreateItem(ctx context.Context, p elabftw.CreateItemParams) (map[string]any, error)
	UpdateItem(ctx context.Context, itemID int, p elabftw.UpdateItemParams) (map[string]any, error)
	DeleteItem(ctx context.Context, itemID int) (map[string]any, error)
	ListItemsTypes(ctx context.Context, teamID int) (any, error)
	AddItemTag(ctx context.Context, itemID int, tag string) (map[string]any, error)
	RemoveItemTag(ctx context.Context, itemID, tagID int) (map[string]any, error)
	UploadToItem(ctx context.Context, itemID int, filePath, comment string) (map[string]any, error)
	LinkToItem(ctx context.Context, itemID, linkID int, linkType string) (map[string]any, error)

	ListEvents(ctx context.Context, p elabftw.ListEventsParams) (any, error)
	GetEvent(ctx context.Context, eventID int) (any, error)
	CreateBooking(ctx context.Context, p elabftw.CreateBookingParams) (any, error)
	UpdateBooking(ctx context.Context, eventID int, p elabftw.UpdateBookingParams) (any, error)
	DeleteBooking(ctx context.Context, eventID int) (map[string]any, error)
}
