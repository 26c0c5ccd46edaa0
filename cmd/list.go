package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rubiojr/sieve/pkg/controller"
	"github.com/rubiojr/sieve/pkg/core"
	"github.com/urfave/cli/v3"
)

// ListCommand creates the list command
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "List the filtered and sorted items of a page",
		ArgsUsage: "<page>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "Case-insensitive search across the page search fields",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Sort key (defaults to the page default sort)",
			},
			&cli.StringSliceFlag{
				Name:  "filter",
				Usage: "Filter as key=value. Can be used multiple times",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of items to show (0 for no limit)",
				Value: 20,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print items as JSON",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return listItems(os.Stdout, c.String("config"), listOptions{
				page:    c.Args().First(),
				query:   c.String("query"),
				sort:    c.String("sort"),
				filters: c.StringSlice("filter"),
				limit:   c.Int("limit"),
				json:    c.Bool("json"),
			})
		},
	}
}

type listOptions struct {
	page    string
	query   string
	sort    string
	filters []string
	limit   int
	json    bool
}

// listItems prints one view of a page
func listItems(w io.Writer, configPath string, opts listOptions) error {
	page, err := pageArg(opts.page)
	if err != nil {
		return err
	}

	filters, err := parseFilterFlags(page, opts.filters)
	if err != nil {
		return err
	}

	cfg, data, err := loadWorkspace(configPath)
	if err != nil {
		return err
	}

	ctrl, err := pageController(page, cfg, data, controller.Config[core.Record]{
		InitialFilters: filters,
		InitialSort:    opts.sort,
		InitialSearch:  opts.query,
	})
	if err != nil {
		return fmt.Errorf("building %s view: %w", page, err)
	}
	defer ctrl.Close()

	items := ctrl.Result()
	if opts.limit > 0 && len(items) > opts.limit {
		items = items[:opts.limit]
	}

	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	title := fmt.Sprintf("%s (%d/%d items, sort: %s)", pageTitle(page), ctrl.FilteredCount(), ctrl.TotalCount(), ctrl.Sort())
	fmt.Fprintln(w, titleStyle.Render(title))

	if ctrl.HasActiveFilters() {
		var active []string
		for _, f := range ctrl.Profile().Filters {
			if v := ctrl.Filters().Get(f.Key); !v.Unconstrained() {
				active = append(active, f.Key+"="+v.String())
			}
		}
		if q := strings.TrimSpace(ctrl.Search()); q != "" {
			active = append(active, "query="+q)
		}
		if len(active) > 0 {
			fmt.Fprintln(w, metaStyle.Render("filters: "+strings.Join(active, " ")))
		}
	}

	if len(items) == 0 {
		fmt.Fprintln(w, noDataStyle.Render(fmt.Sprintf("No items match on page '%s'", page)))
		return nil
	}

	for _, item := range items {
		fmt.Fprintln(w, renderItem(page, item))
	}
	return nil
}
