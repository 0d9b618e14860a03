package dispatch

import (
	"context"
	"fmt"

	"github.com/matiasleandrokruk/elabmcp/internal/domain/catalog"
	"github.com/matiasleandrokruk/elabmcp/internal/infra/elabftw"
)

// maxListLimit is the upstream pagination ceiling for the capped listings.
const maxListLimit = 100

func capLimit(n int) int {
	if n > maxListLimit {
		return maxListLimit
	}
	return n
}

// operation produces the text block for one tool call. Errors bubble to the
// dispatcher for normalization.
type operation func(ctx context.Context, b Backend, a args) (string, error)

// operations is the static routing table. Every catalog tool name has
// exactly one entry; dispatcher tests cross-check the two sets.
var operations = map[string]operation{
	"lab_prompt_elabftw": func(ctx context.Context, b Backend, a args) (string, error) {
		return catalog.LabPrompt, nil
	},

	"list_experiments": func(ctx context.Context, b Backend, a args) (string, error) {
		limit, err := a.IntDefault("limit")
		if err != nil {
			return "", err
		}
		offset, err := a.IntDefault("offset")
		if err != nil {
			return "", err
		}
		search, err := a.StrDefault("search")
		if err != nil {
			return "", err
		}
		owner, err := a.StrDefault("owner")
		if err != nil {
			return "", err
		}
		result, err := b.ListExperiments(ctx, elabftw.ListExperimentsParams{
			Limit:  capLimit(limit),
			Offset: offset,
			Search: search,
			Owner:  owner,
		})
		if err != nil {
			return "", err
		}
		if records, ok := asRecordList(result); ok {
			summaries := summarizeExperiments(records)
			return fmt.Sprintf("Found %d experiments:\n\n%s", len(summaries), jsonIndent(summaries)), nil
		}
		return jsonIndent(result), nil
	},

	"get_experiment": func(ctx context.Context, b Backend, a args) (string, error) {
		id, err := a.Int("experiment_id")
		if err != nil {
			return "", err
		}
		result, err := b.GetExperiment(ctx, id)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Experiment %d:\n\n%s", id, jsonIndent(result)), nil
	},

	"create_experiment": func(ctx context.Context, b Backend, a args) (string, error) {
		title, err := a.Str("title")
		if err != nil {
			return "", err
		}
		body, err := a.StrDefault("body")
		if err != nil {
			return "", err
		}
		template, err := a.OptInt("template")
		if err != nil {
			return "", err
		}
		category, err := a.OptInt("category")
		if err != nil {
			return "", err
		}
		tags, err := a.StrSlice("tags")
		if err != nil {
			return "", err
		}
		result, err := b.CreateExperiment(ctx, elabftw.CreateExperimentParams{
			Title:    title,
			Body:     body,
			Template: template,
			Category: category,
			Tags:     tags,
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Successfully created experiment:\n\n%s", jsonIndent(result)), nil
	},

	"update_experiment": func(ctx context.Context, b Backend, a args) (string, error) {
		id, err := a.Int("experiment_id")
		if err != nil {
			return "", err
		}
		title, err := a.OptStr("title")
		if err != nil {
			return "", err
		}
		body, err := a.OptStr("body")
		if err != nil {
			return "", err
		}
		category, err := a.OptInt("category")
		if err != nil {
			return "", err
		}
		status, err := a.OptInt("status")
		if err != nil {
			return "", err
		}
		result, err := b.UpdateExperiment(ctx, id, elabftw.UpdateExperimentParams{
			Title:    title,
			Body:     body,
			Category: category,
			Status:   status,
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Successfully updated experiment %d:\n\n%s", id, jsonIndent(result)), nil
	},

	"delete_experiment": func(ctx context.Context, b Backend, a args) (string, error) {
		id, err := a.Int("experiment_id")
		if err != nil {
			return "", err
		}
		result, err := b.DeleteExperiment(ctx, id)
		if err != nil {
			return "", err
		}
		return jsonIndent(result), nil
	},

	"set_experiment_status": func(ctx context.Context, b Backend, a args) (string, error) {
		id, err := a.Int("experiment_id")
		if err != nil {
			return "", err
		}
		statusID, err := a.Int("status_id")
		if err != nil {
			return "", err
		}
		result, err := b.SetExperimentStatus(ctx, id, statusID)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Successfully updated status for experiment %d:\n\n%s", id, jsonIndent(result)), nil
	},

	"add_tag": func(ctx context.Context, b Backend, a args) (string, error) {
		id, err := a.Int("experiment_id")
		if err != nil {
			return "", err
		}
		tag, err := a.Str("tag")
		if err != nil {
			return "", err
		}
		result, err := b.AddExperimentTag(ctx, id, tag)
		if err != nil {
			return "", err
		}
		return jsonIndent(result), nil
	},

	"remove_tag": func(ctx context.Context, b Backend, a args) (string, error) {
		id, err := a.Int("experiment_id")
		if err != nil {
			return "", err
		}
		tagID, err := a.Int("tag_id")
		if err != nil {
			return "", err
		}
		result, err := b.RemoveExperimentTag(ctx, id, tagID)
		if err != nil {
			return "", err
		}
		return jsonIndent(result), nil
	},

	"link_item": func(ctx context.Context, b Backend, a args) (string, error) {
		id, err := a.Int("experiment_id")
		if err != nil {
			return "", err
		}
		linkID, err := a.Int("link_id")
		if err != nil {
			return "", err
		}
		linkType, err := a.StrDefault("link_type")
		if err != nil {
			return "", err
		}
		result, err := b.LinkToExperiment(ctx, id, linkID, linkType)
		if err != nil {
			return "", err
		}
		return jsonIndent(result), nil
	},

	"upload_attachment": func(ctx context.Context, b Backend, a args) (string, error) {
		id, err := a.Int("experiment_id")
		if err != nil {
			return "", err
		}
		filePath, err := a.Str("file_path")
		if err != nil {
			return "", err
		}
		comment, err := a.StrDefault("comment")
		if err != nil {
			return "", err
		}
		result, err := b.UploadToExperiment(ctx, id, filePath, comment)
		if err != nil {
			return "", err
		}
		return jsonIndent(result), nil
	},

	"list_experiment_templates": func(ctx context.Context, b Backend, a args) (string, error) {
		limit, err := a.IntDefault("limit")
		if err != nil {
			return "", err
		}
		offset, err := a.IntDefault("offset")
		if err != nil {
			return "", err
		}
		result, err := b.ListExperimentTemplates(ctx, capLimit(limit), offset)
		if err != nil {
			return "", err
		}
		if records, ok := asRecordList(result); ok {
			summaries := summarizeTemplates(records)
			return fmt.Sprintf("Found %d experiment TEMPLATES:\n\n%s\n\nUse the 'id' as the 'template' parameter when creating a new experiment.\n\nNOTE: Templates define experiment structure. For classification categories, use list_experiment_categories instead.", len(summaries), jsonIndent(summaries)), nil
		}
		return jsonIndent(result), nil
	},

	"list_experiment_categories": func(ctx context.Context, b Backend, a args) (string, error) {
		teamID, err := a.IntDefault("team_id")
		if err != nil {
			return "", err
		}
		result, err := b.ListExperimentCategories(ctx, teamID)
		if err != nil {
			return "", err
		}
		if records, ok := asRecordList(result); ok {
			summaries := summarizeCategories(records)
			return fmt.Sprintf("Found %d experiment CATEGORIES:\n\n%s\n\nUse the 'id' as the 'category' parameter when creating or updating experiments.\n\nNOTE: Categories classify experiments. For experiment structure/templates, use list_experiment_templates instead.", len(summaries), jsonIndent(summaries)), nil
		}
		return jsonIndent(result), nil
	},

	"list_items": func(ctx context.Context, b Backend, a args) (string, error) {
		limit, err := a.IntDefault("limit")
		if err != nil {
			return "", err
		}
		offset, err := a.IntDefault("offset")
		if err != nil {
			return "", err
		}
		search, err := a.StrDefault("search")
		if err != nil {
			return "", err
		}
		category, err := a.OptInt("category")
		if err != nil {
			return "", err
		}
		owner, err := a.StrDefault("owner")
		if err != nil {
			return "", err
		}
		result, err := b.ListItems(ctx, elabftw.ListItemsParams{
			Limit:    capLimit(limit),
			Offset:   offset,
			Search:   search,
			Category: category,
			Owner:    owner,
		})
		if err != nil {
			return "", err
		}
		if records, ok := asRecordList(result); ok {
			summaries := summarizeItems(records)
			return fmt.Sprintf("Found %d items (resources):\n\n%s", len(summaries), jsonIndent(summaries)), nil
		}
		return jsonIndent(result), nil
	},

	"get_item": func(ctx context.Context, b Backend, a args) (string, error) {
		id, err := a.Int("item_id")
		if err != nil {
			return "", err
		}
		result, err := b.GetItem(ctx, id)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Item %d:\n\n%s", id, jsonIndent(result)), nil
	},

	"create_item": func(ctx context.Context, b Backend, a args) (string, error) {
		category, err := a.Int("category")
		if err != nil {
			return "", err
		}
		title, err := a.StrDefault("title")
		if err != nil {
			return "", err
		}
		body, err := a.StrDefault("body")
		if err != nil {
			return "", err
		}
		tags, err := a.StrSlice("tags")
		if err != nil {
			return "", err
		}
		result, err := b.CreateItem(ctx, elabftw.CreateItemParams{
			Category: category,
			Title:    title,
			Body:     body,
			Tags:     tags,
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Successfully created item:\n\n%s", jsonIndent(result)), nil
	},

	"update_item": func(ctx context.Context, b Backend, a args) (string, error) {
		id, err := a.Int("item_id")
		if err != nil {
			return "", err
		}
		title, err := a.OptStr("title")
		if err != nil {
			return "", err
		}
		body, err := a.OptStr("body")
		if err != nil {
			return "", err
		}
		category, err := a.OptInt("category")
		if err != nil {
			return "", err
		}
		rating, err := a.OptInt("rating")
		if err != nil {
			return "", err
		}
		result, err := b.UpdateItem(ctx, id, elabftw.UpdateItemParams{
			Title:    title,
			Body:     body,
			Category: category,
			Rating:   rating,
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Successfully updated item %d:\n\n%s", id, jsonIndent(result)), nil
	},

	"delete_item": func(ctx context.Context, b Backend, a args) (string, error) {
		id, err := a.Int("item_id")
		if err != nil {
			return "", err
		}
		result, err := b.DeleteItem(ctx, id)
		if err != nil {
			return "", err
		}
		return jsonIndent(result), nil
	},

	"list_items_types": func(ctx context.Context, b Backend, a args) (string, error) {
		teamID, err := a.IntDefault("team_id")
		if err != nil {
			return "", err
		}
		result, err := b.ListItemsTypes(ctx, teamID)
		if err != nil {
			return "", err
		}
		if records, ok := asRecordList(result); ok {
			summaries := summarizeItemTypes(records)
			return fmt.Sprintf("Found %d item types/categories:\n\n%s\n\nUse the 'id' as the 'category' parameter when creating items or filtering the item list.", len(summaries), jsonIndent(summaries)), nil
		}
		return jsonIndent(result), nil
	},

	"add_item_tag": func(ctx context.Context, b Backend, a args) (string, error) {
		id, err := a.Int("item_id")
		if err != nil {
			return "", err
		}
		tag, err := a.Str("tag")
		if err != nil {
			return "", err
		}
		result, err := b.AddItemTag(ctx, id, tag)
		if err != nil {
			return "", err
		}
		return jsonIndent(result), nil
	},

	"remove_item_tag": func(ctx context.Context, b Backend, a args) (string, error) {
		id, err := a.Int("item_id")
		if err != nil {
			return "", err
		}
		tagID, err := a.Int("tag_id")
		if err != nil {
			return "", err
		}
		result, err := b.RemoveItemTag(ctx, id, tagID)
		if err != nil {
			return "", err
		}
		return jsonIndent(result), nil
	},

	"upload_item_attachment": func(ctx context.Context, b Backend, a args) (string, error) {
		id, err := a.Int("item_id")
		if err != nil {
			return "", err
		}
		filePath, err := a.Str("file_path")
		if err != nil {
			return "", err
		}
		comment, err := a.StrDefault("comment")
		if err != nil {
			return "", err
		}
		result, err := b.UploadToItem(ctx, id, filePath, comment)
		if err != nil {
			return "", err
		}
		return jsonIndent(result), nil
	},

	"link_to_item": func(ctx context.Context, b Backend, a args) (string, error) {
		id, err := a.Int("item_id")
		if err != nil {
			return "", err
		}
		linkID, err := a.Int("link_id")
		if err != nil {
			return "", err
		}
		linkType, err := a.StrDefault("link_type")
		if err != nil {
			return "", err
		}
		result, err := b.LinkToItem(ctx, id, linkID, linkType)
		if err != nil {
			return "", err
		}
		return jsonIndent(result), nil
	},

	"list_bookings": func(ctx context.Context, b Backend, a args) (string, error) {
		limit, err := a.IntDefault("limit")
		if err != nil {
			return "", err
		}
		offset, err := a.IntDefault("offset")
		if err != nil {
			return "", err
		}
		start, err := a.StrDefault("start")
		if err != nil {
			return "", err
		}
		end, err := a.StrDefault("end")
		if err != nil {
			return "", err
		}
		itemID, err := a.OptInt("item_id")
		if err != nil {
			return "", err
		}
		result, err := b.ListEvents(ctx, elabftw.ListEventsParams{
			Limit:  limit,
			Offset: offset,
			Start:  start,
			End:    end,
			ItemID: itemID,
		})
		if err != nil {
			return "", err
		}
		if records, ok := asRecordList(result); ok {
			summaries := summarizeBookings(records)
			return fmt.Sprintf("Found %d bookings:\n\n%s", len(summaries), jsonIndent(summaries)), nil
		}
		return jsonIndent(result), nil
	},

	"get_booking": func(ctx context.Context, b Backend, a args) (string, error) {
		id, err := a.Int("event_id")
		if err != nil {
			return "", err
		}
		result, err := b.GetEvent(ctx, id)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Booking %d:\n\n%s", id, jsonIndent(result)), nil
	},

	"create_booking": func(ctx context.Context, b Backend, a args) (string, error) {
		itemID, err := a.Int("item_id")
		if err != nil {
			return "", err
		}
		start, err := a.Str("start")
		if err != nil {
			return "", err
		}
		end, err := a.Str("end")
		if err != nil {
			return "", err
		}
		title, err := a.StrDefault("title")
		if err != nil {
			return "", err
		}
		result, err := b.CreateBooking(ctx, elabftw.CreateBookingParams{
			ItemID: itemID,
			Start:  start,
			End:    end,
			Title:  title,
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Successfully created booking:\n\n%s", jsonIndent(result)), nil
	},

	"update_booking": func(ctx context.Context, b Backend, a args) (string, error) {
		id, err := a.Int("event_id")
		if err != nil {
			return "", err
		}
		start, err := a.OptStr("start")
		if err != nil {
			return "", err
		}
		end, err := a.OptStr("end")
		if err != nil {
			return "", err
		}
		title, err := a.OptStr("title")
		if err != nil {
			return "", err
		}
		result, err := b.UpdateBooking(ctx, id, elabftw.UpdateBookingParams{
			Start: start,
			End:   end,
			Title: title,
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Successfully updated booking:\n\n%s", jsonIndent(result)), nil
	},

	"cancel_booking": func(ctx context.Context, b Backend, a args) (string, error) {
		id, err := a.Int("event_id")
		if err != nil {
			return "", err
		}
		result, err := b.DeleteBooking(ctx, id)
		if err != nil {
			return "", err
		}
		return jsonIndent(result), nil
	},

	"get_bookable_items": func(ctx context.Context, b Backend, a args) (string, error) {
		limit, err := a.IntDefault("limit")
		if err != nil {
			return "", err
		}
		result, err := b.ListItems(ctx, elabftw.ListItemsParams{Limit: limit})
		if err != nil {
			return "", err
		}
		records, ok := asRecordList(result)
		if !ok {
			return jsonIndent(result), nil
		}
		bookable := []bookableItemSummary{}
		for _, record := range records {
			if !isBookable(record) {
				continue
			}
			id, ok := toInt(record["id"])
			if !ok {
				continue
			}
			full, err := b.GetItem(ctx, id)
			if err != nil {
				return "", err
			}
			fullRecord, ok := full.(map[string]any)
			if !ok {
				continue
			}
			bookable = append(bookable, summarizeBookableItem(fullRecord))
		}
		return fmt.Sprintf("Found %d bookable items:\n\n%s", len(bookable), jsonIndent(bookable)), nil
	},
}

func isBookable(record map[string]any) bool {
	n, ok := toInt(record["is_bookable"])
	return ok && n == 1
}
