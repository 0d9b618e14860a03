// Package catalog is the static description of everything the adapter
// exposes over MCP: the tool definitions with their JSON schemas, and the
// prompt set. The dispatcher reads required fields and defaults from these
// schemas, so the catalog is the single source of truth for tool contracts.
package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// Definition describes one tool: its wire name, the description shown to
// the model, and the input schema.
type Definition struct {
	Name        string
	Description string
	Schema      *jsonschema.Schema
}

// Tools returns the full tool catalog in registration order.
func Tools() []Definition {
	return tools
}

// ToolByName returns the definition for a tool name.
func ToolByName(name string) (Definition, bool) {
	for _, def := range tools {
		if def.Name == name {
			return def, true
		}
	}
	return Definition{}, false
}

// RequiredFields returns the required argument names of a tool schema.
func RequiredFields(def Definition) []string {
	if def.Schema == nil {
		return nil
	}
	return def.Schema.Required
}

// DefaultFor returns the decoded default value for an argument, if the
// schema declares one.
func DefaultFor(def Definition, field string) (any, bool) {
	if def.Schema == nil {
		return nil, false
	}
	prop, ok := def.Schema.Properties[field]
	if ok && prop.Default != nil {
		var v any
		if err := json.Unmarshal(prop.Default, &v); err == nil {
			return v, true
		}
	}
	return nil, false
}

func defRaw(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("catalog: marshal default %v: %v", v, err))
	}
	return raw
}

func objectSchema(required []string, props map[string]*jsonschema.Schema) *jsonschema.Schema {
	if required == nil {
		required = []string{}
	}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

func intProp(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "integer", Description: desc}
}

func intPropDefault(desc string, def int) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "integer", Description: desc, Default: defRaw(def)}
}

func strProp(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: desc}
}

var tools = []Definition{
	{
		Name:        "lab_prompt_elabftw",
		Description: "Return the integrated eLabFTW lab prompt content for LLM guidance. This provides the system prompt that defines how the AI assistant should behave when working with eLabFTW data.",
		Schema:      objectSchema(nil, map[string]*jsonschema.Schema{}),
	},
	{
		Name:        "list_experiment_templates",
		Description: "List available experiment TEMPLATES from elabFTW. Templates define the initial structure/content of experiments. Use the returned 'id' as the 'template' parameter when creating experiments. Note: This is DIFFERENT from categories - use list_experiment_categories for classification categories.",
		Schema: objectSchema(nil, map[string]*jsonschema.Schema{
			"limit":  intPropDefault("Maximum number of templates to return (default: 15)", 15),
			"offset": intPropDefault("Number of templates to skip for pagination (default: 0)", 0),
		}),
	},
	{
		Name:        "list_experiment_categories",
		Description: "List available experiment CATEGORIES from elabFTW. Categories are used to classify/organize experiments (e.g., 'PCR', 'Western Blot'). Use the returned 'id' as the 'category' parameter when creating or updating experiments. Note: This is DIFFERENT from templates.",
		Schema: objectSchema(nil, map[string]*jsonschema.Schema{
			"team_id": intPropDefault("Team ID to get categories for (default: 1)", 1),
		}),
	},
	{
		Name:        "delete_experiment",
		Description: "Delete an experiment (soft-delete). The experiment will be marked as deleted but may be recoverable by an administrator. Use with caution!",
		Schema: objectSchema([]string{"experiment_id"}, map[string]*jsonschema.Schema{
			"experiment_id": intProp("The unique ID of the experiment to delete"),
		}),
	},
	{
		Name:        "list_experiments",
		Description: "List experiments from elabFTW. Returns a list of experiments with their basic info (ID, title, date, etc.). Supports pagination, search, and filtering by owner.",
		Schema: objectSchema(nil, map[string]*jsonschema.Schema{
			"limit":  intPropDefault("Maximum number of experiments to return (default: 15, max: 100)", 15),
			"offset": intPropDefault("Number of experiments to skip for pagination (default: 0)", 0),
			"search": strProp("Optional search query to filter experiments by title or content"),
			"owner":  strProp("Optional user ID(s) to filter experiments by owner. Can be a single ID like '2' or multiple comma-separated IDs like '2,3'"),
		}),
	},
	{
		Name:        "get_experiment",
		Description: "Get detailed information about a specific experiment by its ID. Returns full experiment data including title, body, metadata, tags, etc.",
		Schema: objectSchema([]string{"experiment_id"}, map[string]*jsonschema.Schema{
			"experiment_id": intProp("The unique ID of the experiment to retrieve"),
		}),
	},
	{
		Name:        "create_experiment",
		Description: "Create a new experiment in elabFTW. The experiment will be created with the given title and optional body content. HTML formatting is supported in the body.",
		Schema: objectSchema([]string{"title"}, map[string]*jsonschema.Schema{
			"title": strProp("Title of the new experiment"),
			"body": {
				Type:        "string",
				Description: "Body/content of the experiment. HTML formatting is supported.",
				Default:     defRaw(""),
			},
			"template": intProp("Template ID to use for the experiment structure (-1 for empty body, 0 for team template, or specific template ID). Use list_experiment_templates to see available templates. Required by some elabFTW instances. NOTE: This is different from 'category'!"),
			"category": intProp("Category ID to classify the experiment (e.g., PCR, Western Blot). Use list_experiment_categories to find valid category IDs. NOTE: This is different from 'template'!"),
			"tags": {
				Type:        "array",
				Items:       &jsonschema.Schema{Type: "string"},
				Description: "Optional list of tags to add to the experiment",
			},
		}),
	},
	{
		Name:        "update_experiment",
		Description: "Update an existing experiment. You can update the title, body, or category. At least one field must be provided.",
		Schema: objectSchema([]string{"experiment_id"}, map[string]*jsonschema.Schema{
			"experiment_id": intProp("The unique ID of the experiment to update"),
			"title":         strProp("New title for the experiment"),
			"body":          strProp("New body/content for the experiment. HTML formatting is supported."),
			"category":      intProp("New category ID for the experiment. Use list_experiment_categories to find valid IDs."),
			"status":        intProp("New status ID for the experiment."),
		}),
	},
	{
		Name:        "add_tag",
		Description: "Add a tag to an existing experiment.",
		Schema: objectSchema([]string{"experiment_id", "tag"}, map[string]*jsonschema.Schema{
			"experiment_id": intProp("The unique ID of the experiment"),
			"tag":           strProp("The tag to add to the experiment"),
		}),
	},
	{
		Name:        "remove_tag",
		Description: "Remove a tag from an existing experiment.",
		Schema: objectSchema([]string{"experiment_id", "tag_id"}, map[string]*jsonschema.Schema{
			"experiment_id": intProp("The unique ID of the experiment"),
			"tag_id":        intProp("The ID of the tag to remove (can be found in experiment details)"),
		}),
	},
	{
		Name:        "set_experiment_status",
		Description: "Set the status of an experiment (e.g., Running, Success, Need to be redone). Status IDs depend on your elabFTW configuration.",
		Schema: objectSchema([]string{"experiment_id", "status_id"}, map[string]*jsonschema.Schema{
			"experiment_id": intProp("The unique ID of the experiment"),
			"status_id":     intProp("The status ID to set (depends on your elabFTW configuration)"),
		}),
	},
	{
		Name:        "link_item",
		Description: "Link another experiment or database item to an experiment. Useful for creating relationships between entries.",
		Schema: objectSchema([]string{"experiment_id", "link_id"}, map[string]*jsonschema.Schema{
			"experiment_id": intProp("The unique ID of the experiment to add the link to"),
			"link_id":       intProp("The ID of the experiment or item to link"),
			"link_type": {
				Type:        "string",
				Enum:        []any{"experiments", "items"},
				Description: "Type of link: 'experiments' to link another experiment, 'items' to link a database item",
				Default:     defRaw("experiments"),
			},
		}),
	},
	{
		Name:        "upload_attachment",
		Description: "Upload a file attachment to an experiment. The file must exist on the local filesystem.",
		Schema: objectSchema([]string{"experiment_id", "file_path"}, map[string]*jsonschema.Schema{
			"experiment_id": intProp("The unique ID of the experiment"),
			"file_path":     strProp("The full path to the file to upload"),
			"comment":       strProp("Optional comment to attach to the uploaded file"),
		}),
	},
	{
		Name:        "list_items",
		Description: "List database items (resources) from elabFTW. Items can be equipment, chemicals, cell lines, etc. Returns list with basic info. Supports filtering by owner.",
		Schema: objectSchema(nil, map[string]*jsonschema.Schema{
			"limit":    intPropDefault("Maximum number of items to return (default: 15, max: 100)", 15),
			"offset":   intPropDefault("Number of items to skip for pagination (default: 0)", 0),
			"search":   strProp("Optional search query to filter items by title or content"),
			"category": intProp("Optional category ID to filter items by type/category"),
			"owner":    strProp("Optional user ID(s) to filter items by owner. Can be a single ID like '2' or multiple comma-separated IDs like '2,3'"),
		}),
	},
	{
		Name:        "get_item",
		Description: "Get detailed information about a specific database item (resource) by its ID. Returns full item data including title, body, metadata, tags, linked items, etc.",
		Schema: objectSchema([]string{"item_id"}, map[string]*jsonschema.Schema{
			"item_id": intProp("The unique ID of the item to retrieve"),
		}),
	},
	{
		Name:        "create_item",
		Description: "Create a new database item (resource) in elabFTW. Use this to add chemicals, equipment, setups, reagents, etc. to your lab inventory.",
		Schema: objectSchema([]string{"category"}, map[string]*jsonschema.Schema{
			"category": intProp("Category/type ID for the item (REQUIRED). Use list_items_types to find valid IDs (e.g., Chemicals, Equipment, Setups)."),
			"title":    strProp("Title of the new item (e.g., chemical name, equipment name)"),
			"body": {
				Type:        "string",
				Description: "Body/content of the item. HTML formatting is supported. Can include specifications, notes, safety info, etc.",
				Default:     defRaw(""),
			},
			"tags": {
				Type:        "array",
				Items:       &jsonschema.Schema{Type: "string"},
				Description: "Optional list of tags to add to the item",
			},
		}),
	},
	{
		Name:        "update_item",
		Description: "Update an existing database item (resource). You can update the title, body, category, or rating.",
		Schema: objectSchema([]string{"item_id"}, map[string]*jsonschema.Schema{
			"item_id":  intProp("The unique ID of the item to update"),
			"title":    strProp("New title for the item"),
			"body":     strProp("New body/content for the item. HTML formatting is supported."),
			"category": intProp("New category/type ID for the item. Use list_items_types to find valid IDs."),
			"rating":   intProp("Rating for the item (0-5). Useful for rating reagent quality, equipment reliability, etc."),
		}),
	},
	{
		Name:        "delete_item",
		Description: "Delete a database item (soft-delete). The item will be marked as deleted but may be recoverable by an administrator. Use with caution!",
		Schema: objectSchema([]string{"item_id"}, map[string]*jsonschema.Schema{
			"item_id": intProp("The unique ID of the item to delete"),
		}),
	},
	{
		Name:        "list_items_types",
		Description: "List available item types/categories for database items. Item types define what kinds of resources you can store (e.g., Chemicals, Equipment, Plasmids, Cell Lines, Setups). Use the returned 'id' as the 'category' parameter when creating or filtering items.",
		Schema: objectSchema(nil, map[string]*jsonschema.Schema{
			"team_id": intPropDefault("Team ID to get item types for (default: 1)", 1),
		}),
	},
	{
		Name:        "add_item_tag",
		Description: "Add a tag to an existing database item.",
		Schema: objectSchema([]string{"item_id", "tag"}, map[string]*jsonschema.Schema{
			"item_id": intProp("The unique ID of the item"),
			"tag":     strProp("The tag to add to the item"),
		}),
	},
	{
		Name:        "remove_item_tag",
		Description: "Remove a tag from an existing database item.",
		Schema: objectSchema([]string{"item_id", "tag_id"}, map[string]*jsonschema.Schema{
			"item_id": intProp("The unique ID of the item"),
			"tag_id":  intProp("The ID of the tag to remove (can be found in item details)"),
		}),
	},
	{
		Name:        "upload_item_attachment",
		Description: "Upload a file attachment to a database item. Useful for attaching datasheets, manuals, certificates, etc.",
		Schema: objectSchema([]string{"item_id", "file_path"}, map[string]*jsonschema.Schema{
			"item_id":   intProp("The unique ID of the item"),
			"file_path": strProp("The full path to the file to upload"),
			"comment":   strProp("Optional comment to attach to the uploaded file"),
		}),
	},
	{
		Name:        "link_to_item",
		Description: "Link another item or experiment to a database item. Useful for connecting related resources (e.g., linking a chemical to the equipment it's used with).",
		Schema: objectSchema([]string{"item_id", "link_id"}, map[string]*jsonschema.Schema{
			"item_id": intProp("The unique ID of the item to add the link to"),
			"link_id": intProp("The ID of the item or experiment to link"),
			"link_type": {
				Type:        "string",
				Enum:        []any{"items", "experiments"},
				Description: "Type of link: 'items' to link another database item, 'experiments' to link an experiment",
				Default:     defRaw("items"),
			},
		}),
	},
	{
		Name:        "list_bookings",
		Description: "List booking events/reservations for equipment and setups. Shows scheduled use of bookable items. Returns event details including item, user, time, and duration.",
		Schema: objectSchema(nil, map[string]*jsonschema.Schema{
			"limit":   intPropDefault("Maximum number of bookings to return (default: 50)", 50),
			"offset":  intPropDefault("Number of bookings to skip for pagination (default: 0)", 0),
			"start":   strProp("Filter bookings starting after this datetime (ISO format: 2024-01-15T09:00:00)"),
			"end":     strProp("Filter bookings ending before this datetime (ISO format: 2024-01-15T17:00:00)"),
			"item_id": intProp("Filter bookings for a specific item/equipment"),
		}),
	},
	{
		Name:        "get_booking",
		Description: "Get detailed information about a specific booking by its ID.",
		Schema: objectSchema([]string{"event_id"}, map[string]*jsonschema.Schema{
			"event_id": intProp("The unique ID of the booking/event"),
		}),
	},
	{
		Name:        "create_booking",
		Description: "Book/reserve an item (equipment, setup, etc.) for a specific time period. The item must have is_bookable=1. Use list_items to find bookable items.",
		Schema: objectSchema([]string{"item_id", "start", "end"}, map[string]*jsonschema.Schema{
			"item_id": intProp("The ID of the item to book (must be bookable)"),
			"start":   strProp("Start datetime in ISO 8601 format (e.g., '2024-01-15T09:00:00' or '2024-01-15T09:00:00+01:00')"),
			"end":     strProp("End datetime in ISO 8601 format (e.g., '2024-01-15T17:00:00' or '2024-01-15T17:00:00+01:00')"),
			"title":   strProp("Optional title/description for the booking (e.g., 'Sample preparation experiment')"),
		}),
	},
	{
		Name:        "update_booking",
		Description: "Update an existing booking (change time or title). Only the booking creator or admins can modify bookings. Subject to cancellation policies.",
		Schema: objectSchema([]string{"event_id"}, map[string]*jsonschema.Schema{
			"event_id": intProp("The ID of the booking to update"),
			"start":    strProp("New start datetime in ISO 8601 format"),
			"end":      strProp("New end datetime in ISO 8601 format"),
			"title":    strProp("New title for the booking"),
		}),
	},
	{
		Name:        "cancel_booking",
		Description: "Cancel/delete a booking. Permissions and cancellation policies (book_is_cancellable, book_cancel_minutes) may apply. Only the booking creator or admins can cancel.",
		Schema: objectSchema([]string{"event_id"}, map[string]*jsonschema.Schema{
			"event_id": intProp("The ID of the booking to cancel"),
		}),
	},
	{
		Name:        "get_bookable_items",
		Description: "List all items that can be booked (is_bookable=1) with their booking settings like max duration, overlap rules, and cancellation policies. Use this to find what equipment/setups are available for booking.",
		Schema: objectSchema(nil, map[string]*jsonschema.Schema{
			"limit": intPropDefault("Maximum number of items to return (default: 50)", 50),
		}),
	},
}
