package catalog

import "fmt"

// LabPrompt is the guidance text the lab_prompt_elabftw tool returns. It is
// the system prompt an assistant should adopt when working with eLabFTW data.
const LabPrompt = `You are an AI lab assistant integrated with an eLabFTW notebook and its resources (files, datasets, instruments, protocols, wiki). Your goals are to: find, summarize, cross‑reference, and transform information in eLabFTW; draft well‑structured experiments, protocols, summaries, and reports in the user's style; and reason over experiments, items, tags, and attachments.

Always behave as a domain‑aware assistant for an experimental soft‑matter/biophysics group, using precise technical language and concise answers. If information in eLabFTW is missing or ambiguous, say what is missing, never invent IDs or results, and suggest which search, tag, or experiment could resolve it.

Treat eLabFTW as the source of truth for experiment entries and metadata, items, attachments, and wiki/protocol pages. For data‑dependent questions: infer relevant experiments/items/tags/wiki pages, suggest concise search queries (title fragment, tag, item name, date range), then summarize clearly, extract structured information (tables, parameter lists, timelines), and highlight discrepancies or trends. If a request is too broad, propose narrower scopes (project, tag, PI, date range, instrument).

When answering, refer explicitly to the mention experiment titles/IDs and item names or catalog numbers when useful, and note conflicting entries with a suggestion of which looks more reliable (latest, approved, or more complete). For analysis questions, describe plots or tables that could be made from attached data, compare conditions across experiments, and suggest derived quantities and how to compute them.

For new or improved entries, output markdown text ready to paste into eLabFTW:
- experiments with "Objective", "Materials", "Methods", "Results", "Analysis", "Notes"
- protocols with numbered steps, safety notes, and parameter ranges
- items with concise searchable descriptions and key fields
- templates with parameterized structures with placeholders like <sample_id> or <laser_power_mW>

Keep answers compact and technically dense, avoiding generic commentary. For safety‑critical topics (instrument limits, dosing, hazards), give conservative guidance and point back to official or lab‑recorded protocols. When providing code, give minimal clear scripts assuming data has been exported locally.

If a request is under‑specified, ask targeted clarification (project/tag, date range, instrument, status such as approved vs draft) and prefer stepwise, interactive refinement over a single large answer.

You are now connected to eLabFTW via an MCP server that can query experiments, items, and wiki pages by IDs, titles, tags, and date ranges, access attachments, and return markdown content for entries.`

// PromptArgument describes one optional input to a prompt template.
type PromptArgument struct {
	Name        string
	Description string
	Required    bool
}

// PromptDefinition describes one prompt template.
type PromptDefinition struct {
	Name        string
	Description string
	Arguments   []PromptArgument
}

// PromptResult is a rendered prompt: a short description plus the single
// user-role message text.
type PromptResult struct {
	Description string
	Text        string
}

// ErrUnknownPrompt is wrapped by BuildPrompt for unrecognized names.
var ErrUnknownPrompt = fmt.Errorf("unknown prompt")

const (
	promptOverview       = "elabftw-overview"
	promptCreateGuide    = "create-experiment-guide"
	promptResourcesGuide = "manage-resources-guide"
	promptSearchHelp     = "search-experiments"
	defaultGuideTitle    = "[Your Experiment Title]"
)

// Prompts returns the prompt catalog in registration order.
func Prompts() []PromptDefinition {
	return []PromptDefinition{
		{
			Name:        promptOverview,
			Description: "Get an overview of available elabFTW operations and how to use this MCP server",
		},
		{
			Name:        promptCreateGuide,
			Description: "Step-by-step guide for creating a new experiment in elabFTW",
			Arguments: []PromptArgument{
				{Name: "title", Description: "The title for your new experiment"},
			},
		},
		{
			Name:        promptResourcesGuide,
			Description: "Guide for managing resources/items (reagents, equipment, samples) in elabFTW",
		},
		{
			Name:        promptSearchHelp,
			Description: "Help with searching and filtering experiments",
			Arguments: []PromptArgument{
				{Name: "search_term", Description: "What you're looking for in experiments"},
			},
		},
	}
}

// BuildPrompt renders a prompt by name. Arguments are substituted into the
// template where the prompt declares them; missing arguments fall back to a
// generic placeholder or the unparameterized variant.
func BuildPrompt(name string, args map[string]string) (PromptResult, error) {
	switch name {
	case promptOverview:
		return PromptResult{
			Description: "Overview of elabFTW MCP Server capabilities",
			Text:        overviewText,
		}, nil
	case promptCreateGuide:
		title := args["title"]
		if title == "" {
			title = defaultGuideTitle
		}
		return PromptResult{
			Description: "Guide for creating a new experiment",
			Text:        fmt.Sprintf(createGuideText, title, title),
		}, nil
	case promptResourcesGuide:
		return PromptResult{
			Description: "Guide for managing resources/items in elabFTW",
			Text:        resourcesGuideText,
		}, nil
	case promptSearchHelp:
		term := args["search_term"]
		if term == "" {
			return PromptResult{
				Description: "Help with searching experiments",
				Text:        searchHelpGenericText,
			}, nil
		}
		return PromptResult{
			Description: "Help searching for experiments related to: " + term,
			Text:        fmt.Sprintf(searchHelpText, term, term, term, term, term),
		}, nil
	default:
		return PromptResult{}, fmt.Errorf("%w: %s", ErrUnknownPrompt, name)
	}
}

const overviewText = `# elabFTW MCP Server Overview

This MCP server provides tools to interact with elabFTW, an electronic lab notebook system.

## Available Operations

### Experiments
- **list_experiments** - List all experiments (with optional search)
- **get_experiment** - Get details of a specific experiment by ID
- **create_experiment** - Create a new experiment (can use templates and categories)
- **update_experiment** - Update an existing experiment's title, body, or metadata
- **delete_experiment** - Delete an experiment
- **set_experiment_status** - Change experiment status (running, completed, etc.)
- **add_tag_to_experiment** / **remove_tag_from_experiment** - Manage experiment tags
- **link_item_to_experiment** - Link a resource/item to an experiment
- **upload_attachment** - Upload a file attachment to an experiment

### Resources/Items (Database Items)
- **list_items** - List all items/resources
- **get_item** - Get details of a specific item
- **create_item** - Create a new resource/item
- **update_item** - Update an existing item
- **delete_item** - Delete an item
- **add_tag_to_item** / **remove_tag_from_item** - Manage item tags
- **upload_attachment_to_item** - Upload a file to an item
- **link_item_to_item** - Link items together

### Templates & Categories
- **list_experiment_templates** - List available experiment templates (for structure)
- **list_experiment_categories** - List experiment categories (for classification)
- **list_items_types** - List available item/resource types

## Quick Start
1. Use ` + "`list_experiments`" + ` to see existing experiments
2. Use ` + "`list_experiment_templates`" + ` and ` + "`list_experiment_categories`" + ` before creating experiments
3. Use ` + "`create_experiment`" + ` with a template ID and category ID for best results

Please tell me what you'd like to do with elabFTW!`

const createGuideText = `# Creating a New Experiment in elabFTW

I want to create a new experiment with the title: **%s**

## Steps to follow:

### Step 1: Check available templates
First, list the available experiment templates to see what structures are available:
- Use ` + "`list_experiment_templates`" + ` tool

### Step 2: Check available categories
Then, list the experiment categories for classification:
- Use ` + "`list_experiment_categories`" + ` tool

### Step 3: Create the experiment
Create the experiment using:
- Use ` + "`create_experiment`" + ` tool with:
  - ` + "`title`" + `: "%s"
  - ` + "`template`" + `: (optional) ID from step 1
  - ` + "`category`" + `: (optional) ID from step 2
  - ` + "`body`" + `: (optional) HTML content for the experiment body
  - ` + "`tags`" + `: (optional) list of tags like ["tag1", "tag2"]

### Step 4: Add more details (optional)
After creation, you can:
- Use ` + "`update_experiment`" + ` to modify content
- Use ` + "`add_tag_to_experiment`" + ` to add more tags
- Use ` + "`upload_attachment`" + ` to attach files
- Use ` + "`link_item_to_experiment`" + ` to link resources

Please start by listing the available templates and categories, then create the experiment.`

const resourcesGuideText = `# Managing Resources/Items in elabFTW

Resources (also called "Items" or "Database Items") in elabFTW are used to track:
- Reagents and chemicals
- Equipment and instruments
- Samples and specimens
- Protocols and procedures
- Any other lab resources

## Available Operations

### Viewing Resources
- ` + "`list_items`" + ` - List all items (can filter by category with ` + "`cat`" + ` parameter)
- ` + "`get_item`" + ` - Get detailed information about a specific item
- ` + "`list_items_types`" + ` - See available item categories/types

### Creating Resources
- ` + "`create_item`" + ` - Create a new resource
  - Required: ` + "`category_id`" + ` (get from list_items_types)
  - Optional: ` + "`title`" + `, ` + "`body`" + ` (HTML content), ` + "`tags`" + `

### Updating Resources
- ` + "`update_item`" + ` - Modify an existing item's title, body, or category
- ` + "`add_tag_to_item`" + ` / ` + "`remove_tag_from_item`" + ` - Manage tags
- ` + "`upload_attachment_to_item`" + ` - Attach files (images, documents, etc.)

### Linking Resources
- ` + "`link_item_to_experiment`" + ` - Link a resource to an experiment
- ` + "`link_item_to_item`" + ` - Link resources together (e.g., reagent to protocol)

## Common Workflow
1. First, use ` + "`list_items_types`" + ` to see available resource categories
2. Create items with ` + "`create_item`" + ` using the appropriate category
3. Link items to experiments as needed

What would you like to do with resources/items?`

const searchHelpText = `# Searching Experiments in elabFTW

I want to find experiments related to: **%s**

## Search Options

Use the ` + "`list_experiments`" + ` tool with:
- ` + "`search`" + `: "%s" - Search in titles and content
- ` + "`limit`" + `: Number of results to return (default: 15)
- ` + "`offset`" + `: For pagination

## Example
Search for experiments containing "%s":
` + "```" + `
list_experiments(search="%s", limit=20)
` + "```" + `

## Tips
- The search looks in experiment titles and body content
- Use specific keywords for better results
- You can combine with ` + "`get_experiment`" + ` to see full details of interesting results

Please search for experiments related to "%s".`

const searchHelpGenericText = `# Searching Experiments in elabFTW

## How to Search

Use the ` + "`list_experiments`" + ` tool with these parameters:
- ` + "`search`" + `: Text to search for in titles and content
- ` + "`limit`" + `: Maximum number of results (default: 15, max: 100)
- ` + "`offset`" + `: Skip this many results (for pagination)

## Examples

1. **Basic search**:
   ` + "`list_experiments(search=\"PCR\")`" + `

2. **Get more results**:
   ` + "`list_experiments(search=\"protein\", limit=50)`" + `

3. **Pagination** (get next page):
   ` + "`list_experiments(search=\"analysis\", limit=15, offset=15)`" + `

## After Finding Experiments

Once you find an experiment of interest:
- Use ` + "`get_experiment(experiment_id=ID)`" + ` for full details
- The full details include body content, tags, attachments, and linked items

What would you like to search for?`
