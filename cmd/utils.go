package cmd

import (
	"fmt"
	"strings"

	"github.com/rubiojr/sieve/pkg/config"
	"github.com/rubiojr/sieve/pkg/controller"
	"github.com/rubiojr/sieve/pkg/core"
	"github.com/rubiojr/sieve/pkg/dataset"
	"github.com/rubiojr/sieve/pkg/profiles"
)

// loadWorkspace loads the configuration and the dataset it points to.
func loadWorkspace(configPath string) (*config.Config, *dataset.Dataset, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	data, err := dataset.Load(cfg.DataFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading dataset: %w", err)
	}
	return cfg, data, nil
}

// pageArg parses the page positional argument.
func pageArg(arg string) (core.PageKey, error) {
	if arg == "" {
		return "", fmt.Errorf("missing page argument, one of: %s", pageList())
	}
	return core.ParsePageKey(arg)
}

func pageList() string {
	names := make([]string, len(core.AllPages))
	for i, p := range core.AllPages {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// pageController builds a controller over the page items of data.
func pageController(page core.PageKey, cfg *config.Config, data *dataset.Dataset, ccfg controller.Config[core.Record]) (*controller.Controller[core.Record], error) {
	items, err := data.Items(page)
	if err != nil {
		return nil, err
	}
	ccfg.Items = items
	return controller.ForPage(page, controller.PageOptions{
		Mode:   cfg.ProfileMode(),
		Labels: cfg.CategoryLabels(),
		Locale: cfg.Locale,
	}, ccfg)
}

// parseFilterFlags turns repeated key=value flags into active filters.
// Multi-select dimensions collect every value given for their key.
func parseFilterFlags(page core.PageKey, flags []string) (core.ActiveFilters, error) {
	profile, err := profiles.For(page)
	if err != nil {
		return nil, err
	}

	values := map[string][]string{}
	var order []string
	for _, flag := range flags {
		key, value, ok := strings.Cut(flag, "=")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q, expected key=value", flag)
		}
		if _, ok := profile.Filter(key); !ok {
			return nil, fmt.Errorf("filter %q: %w", key, controller.ErrUnknownFilter)
		}
		if _, seen := values[key]; !seen {
			order = append(order, key)
		}
		values[key] = append(values[key], value)
	}

	active := core.ActiveFilters{}
	for _, key := range order {
		f, _ := profile.Filter(key)
		if f.Multi() {
			active[key] = core.Multi(values[key]...)
			continue
		}
		if len(values[key]) > 1 {
			return nil, fmt.Errorf("filter %q accepts a single value", key)
		}
		active[key] = core.Single(values[key][0])
	}
	return active, nil
}
