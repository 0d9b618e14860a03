// Command elabprobe checks which eLabFTW API endpoints an instance exposes.
// Useful when pointing the MCP server at a new or older installation to
// confirm the scheduler endpoints are present before enabling bookings.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"sort"

	"github.com/matiasleandrokruk/elabmcp/internal/infra/config"
	"github.com/matiasleandrokruk/elabmcp/internal/infra/elabftw"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("elabprobe", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "", "Path to optional YAML config file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err) //nolint:errcheck
		return 1
	}

	fmt.Fprintf(out, "Probing eLabFTW API at: %s\n", cfg.BaseURL) //nolint:errcheck
	fmt.Fprintf(out, "TLS verification: %v\n\n", cfg.VerifyTLS)   //nolint:errcheck
	client := elabftw.NewClient(cfg)

	endpoints := []string{
		"/info",
		"/experiments",
		"/items",
		"/experiments_templates",
		"/teams/1/experiments_categories",
		"/teams/1/items_types",
		"/events",
	}
	ctx := context.Background()
	one := url.Values{}
	one.Set("limit", "1")

	for _, endpoint := range endpoints {
		probe(ctx, out, client, endpoint, one)
	}
	return 0
}

func probe(ctx context.Context, out io.Writer, client *elabftw.Client, endpoint string, query url.Values) {
	result, err := client.GetJSON(ctx, endpoint, query)
	if err != nil {
		var statusErr *elabftw.StatusError
		switch {
		case errors.As(err, &statusErr) && statusErr.StatusCode == 404:
			fmt.Fprintf(out, "MISSING  GET %s (404)\n", endpoint) //nolint:errcheck
		case errors.As(err, &statusErr) && statusErr.StatusCode == 403:
			fmt.Fprintf(out, "DENIED   GET %s (403, may need permissions)\n", endpoint) //nolint:errcheck
		default:
			fmt.Fprintf(out, "ERROR    GET %s: %v\n", endpoint, err) //nolint:errcheck
		}
		return
	}

	switch v := result.(type) {
	case []any:
		fmt.Fprintf(out, "OK       GET %s (list, %d items)\n", endpoint, len(v)) //nolint:errcheck
		if len(v) > 0 {
			if record, ok := v[0].(map[string]any); ok {
				fmt.Fprintf(out, "         first item keys: %v\n", sortedKeys(record)) //nolint:errcheck
			}
		}
	case map[string]any:
		fmt.Fprintf(out, "OK       GET %s (object, keys: %v)\n", endpoint, sortedKeys(v)) //nolint:errcheck
	default:
		fmt.Fprintf(out, "OK       GET %s\n", endpoint) //nolint:errcheck
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
