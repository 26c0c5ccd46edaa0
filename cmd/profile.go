package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rubiojr/sieve/pkg/core"
	"github.com/rubiojr/sieve/pkg/discovery"
	"github.com/rubiojr/sieve/pkg/predicates"
	"github.com/rubiojr/sieve/pkg/profiles"
	"github.com/urfave/cli/v3"
)

// ProfileCommand creates the profile command
func ProfileCommand() *cli.Command {
	return &cli.Command{
		Name:      "profile",
		Usage:     "Show the filter, sort and search profile of a page",
		ArgsUsage: "<page>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dynamic",
				Usage: "Discover the posts categories from the dataset",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the profile as JSON",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return showProfile(os.Stdout, c.String("config"), c.Args().First(), c.Bool("dynamic"), c.Bool("json"))
		},
	}
}

func showProfile(w io.Writer, configPath, pageName string, dynamic, asJSON bool) error {
	page, err := pageArg(pageName)
	if err != nil {
		return err
	}

	cfg, data, err := loadWorkspace(configPath)
	if err != nil {
		return err
	}

	mode := cfg.ProfileMode()
	if dynamic {
		mode = profiles.Dynamic
	}
	items, err := data.Items(page)
	if err != nil {
		return err
	}
	profile, err := profiles.ForItems(page, items, mode, cfg.CategoryLabels())
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(profile)
	}

	fmt.Fprintln(w, titleStyle.Render(pageTitle(page)+" profile"))
	for _, f := range profile.Filters {
		header := fmt.Sprintf("%s [%s]", f.Key, f.Type)
		if f.Multi() {
			header += " multi"
		}
		if f.Title != "" {
			header += " " + f.Title
		}
		fmt.Fprintln(w, headerStyle.Render(header))
		for _, opt := range f.Options {
			fmt.Fprintln(w, renderOption(opt, opt.Key == core.AllKey))
		}
	}

	fmt.Fprintln(w, headerStyle.Render("sort"))
	for _, opt := range profile.Sort.Options {
		line := fmt.Sprintf("%s (%s, %s)", opt.Label, opt.Key, opt.Direction)
		if opt.Key == profile.Sort.DefaultSort {
			fmt.Fprintln(w, activeStyle.Render("* "+line))
		} else {
			fmt.Fprintln(w, "  "+line)
		}
	}

	fmt.Fprintln(w, headerStyle.Render("search"))
	fmt.Fprintln(w, metaStyle.Render(fmt.Sprintf("%s: %v", profile.Search.Placeholder, profile.Search.SearchFields)))
	return nil
}

// CategoriesCommand creates the categories command
func CategoriesCommand() *cli.Command {
	return &cli.Command{
		Name:      "categories",
		Usage:     "Discover the values of a field across the items of a page",
		ArgsUsage: "<page>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "field",
				Usage: "Field to tally",
				Value: predicates.KeyCategory,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return showCategories(os.Stdout, c.String("config"), c.Args().First(), c.String("field"))
		},
	}
}

func showCategories(w io.Writer, configPath, pageName, field string) error {
	page, err := pageArg(pageName)
	if err != nil {
		return err
	}

	cfg, data, err := loadWorkspace(configPath)
	if err != nil {
		return err
	}
	items, err := data.Items(page)
	if err != nil {
		return err
	}

	options := discovery.Discover(items, field, cfg.CategoryLabels())
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s by %s", pageTitle(page), field)))
	for _, opt := range options {
		fmt.Fprintln(w, renderOption(opt, false))
	}
	return nil
}
