package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rubiojr/sieve/pkg/core"
	"github.com/rubiojr/sieve/pkg/records"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Define styles using lipgloss
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			Margin(1, 0, 0, 0)

	itemStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Margin(0, 0, 0, 2)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	activeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("32"))

	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Margin(1, 0)
)

// metaFields are the fields printed under an item's title, per page.
var metaFields = map[core.PageKey][]string{
	core.PageFavorites:  {"type", "author.name", "favoriteTime"},
	core.PagePosts:      {"category", "author.name", "createTime", "stats.likes"},
	core.PageTrades:     {"price", "status", "category", "seller.name", "publishTime"},
	core.PageActivities: {"status", "category", "location", "startTime", "stats.participants"},
	core.PageDrafts:     {"type", "updateTime"},
}

func pageTitle(page core.PageKey) string {
	return cases.Title(language.English).String(string(page))
}

func renderItem(page core.PageKey, item core.Record) string {
	var content strings.Builder
	content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")).Render(records.Title(item)))

	var meta []string
	for _, field := range metaFields[page] {
		v, ok := core.Lookup(item, field)
		if !ok || v.String() == "" {
			continue
		}
		meta = append(meta, field+"="+v.String())
	}
	meta = append([]string{"#" + records.ID(item)}, meta...)
	content.WriteString("\n" + metaStyle.Render(strings.Join(meta, "  ")))

	return itemStyle.Render(content.String())
}

func renderOption(opt core.FilterOption, active bool) string {
	line := fmt.Sprintf("%s (%s)", opt.Label, opt.Key)
	if opt.Count != nil {
		line += fmt.Sprintf(" %d", *opt.Count)
	}
	if active {
		return activeStyle.Render("* " + line)
	}
	return "  " + line
}
