package controller

import (
	"fmt"

	"github.com/rubiojr/sieve/pkg/core"
	"github.com/rubiojr/sieve/pkg/discovery"
	"github.com/rubiojr/sieve/pkg/profiles"
	"github.com/rubiojr/sieve/pkg/sorting"
)

// PageOptions selects how a page controller is assembled.
type PageOptions struct {
	// Mode picks static or discovered categories for the posts page.
	Mode profiles.Mode

	// Labels overrides category labels of discovered options.
	Labels discovery.Labels

	// Locale drives string collation when cfg.Sorter is nil.
	Locale string
}

// ForPage builds a controller for page, filling the profile, predicate and
// page-specific sort of cfg from the registry. Hooks already set on cfg
// are kept.
func ForPage[T core.Record](page core.PageKey, opts PageOptions, cfg Config[T]) (*Controller[T], error) {
	profile, err := profiles.ForItems(page, cfg.Items, opts.Mode, opts.Labels)
	if err != nil {
		return nil, err
	}
	cfg.Profile = profile

	if page == core.PagePosts && opts.Mode == profiles.Dynamic && cfg.ProfileFunc == nil {
		labels := opts.Labels
		cfg.ProfileFunc = func(items []T) core.Profile {
			return profiles.DynamicPosts(items, labels)
		}
	}

	if cfg.Predicate == nil {
		if cfg.Predicate, err = profiles.Predicate(page); err != nil {
			return nil, err
		}
	}

	if cfg.Sorter == nil {
		locale := opts.Locale
		if locale == "" {
			locale = "zh"
		}
		cfg.Sorter = sorting.New(locale)
	}
	if cfg.SortFunc == nil {
		if cfg.SortFunc, err = profiles.SortFunc[T](page, cfg.Sorter); err != nil {
			return nil, fmt.Errorf("building %s controller: %w", page, err)
		}
	}

	return New(cfg), nil
}
