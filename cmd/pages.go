package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rubiojr/sieve/pkg/core"
	"github.com/urfave/cli/v3"
)

// PagesCommand creates the pages command
func PagesCommand() *cli.Command {
	return &cli.Command{
		Name:  "pages",
		Usage: "List the pages of the dataset and their item counts",
		Action: func(ctx context.Context, c *cli.Command) error {
			return listPages(os.Stdout, c.String("config"))
		},
	}
}

func listPages(w io.Writer, configPath string) error {
	cfg, data, err := loadWorkspace(configPath)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, titleStyle.Render(cfg.DataFile))
	for _, page := range core.AllPages {
		fmt.Fprintf(w, "  %-12s %d\n", page, data.Count(page))
	}
	return nil
}
