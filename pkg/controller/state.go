package controller

import (
	"slices"

	"github.com/rubiojr/sieve/pkg/core"
)

// NextSingle is the click transition of a single-select dimension.
//
// Clicking "all" or the option that is already active clears the
// constraint; clicking any other option selects it.
func NextSingle(current core.FilterValue, option string) core.FilterValue {
	if option == core.AllKey || option == "" || current.Key() == option {
		return core.Single("")
	}
	return core.Single(option)
}

// NextMulti is the click transition of a multi-select dimension.
//
// Clicking "all" toggles between {} and {"all"}. Clicking a concrete option
// while "all" is selected first drops "all"; the option's membership is then
// toggled. Selection order is preserved.
func NextMulti(current core.FilterValue, option string) core.FilterValue {
	selected := current.Values()

	if option == core.AllKey {
		if slices.Contains(selected, core.AllKey) {
			return core.Multi()
		}
		return core.Multi(core.AllKey)
	}
	if option == "" {
		return core.Multi(selected...)
	}

	selected = slices.DeleteFunc(selected, func(k string) bool { return k == core.AllKey })
	if i := slices.Index(selected, option); i >= 0 {
		selected = slices.Delete(selected, i, i+1)
	} else {
		selected = append(selected, option)
	}
	return core.Multi(selected...)
}
