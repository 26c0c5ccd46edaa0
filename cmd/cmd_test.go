package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rubiojr/sieve/pkg/controller"
	"github.com/rubiojr/sieve/pkg/core"
	"github.com/rubiojr/sieve/pkg/dataset"
	"github.com/rubiojr/sieve/pkg/records"
)

func setupWorkspace(t *testing.T, extraConfig string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	data := &dataset.Dataset{
		Posts: []records.Post{
			{ID: "p1", Title: "Jam session", Category: core.String("music"), CreateTime: "1小时前"},
			{ID: "p2", Title: "Study group", Category: core.String("learning"), CreateTime: "2小时前"},
			{ID: "p3", Title: "Chess club", Category: core.String("chess"), CreateTime: "3小时前"},
			{ID: "p4", Title: "Concert", Category: core.String("music"), CreateTime: "4小时前"},
		},
		Trades: []records.Trade{
			{ID: "t1", Title: "Camera", Price: core.Int(300), Status: "available"},
			{ID: "t2", Title: "Novel", Price: core.Int(15), Status: "sold"},
			{ID: "t3", Title: "Lamp", Price: core.Int(40), Status: "available"},
		},
	}
	dataPath := filepath.Join(dir, "data.json.zst")
	if err := data.Save(dataPath); err != nil {
		t.Fatalf("saving dataset: %v", err)
	}

	configPath := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf("data_file = %q\n%s", dataPath, extraConfig)
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return configPath
}

func TestListItemsJSON(t *testing.T) {
	configPath := setupWorkspace(t, "")

	var buf bytes.Buffer
	err := listItems(&buf, configPath, listOptions{
		page:    "trades",
		sort:    "price_desc",
		filters: []string{"status=available"},
		json:    true,
	})
	if err != nil {
		t.Fatalf("listItems: %v", err)
	}

	var items []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &items); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, buf.String())
	}
	if len(items) != 2 || items[0]["id"] != "t1" || items[1]["id"] != "t3" {
		t.Fatalf("unexpected items: %v", items)
	}
}

func TestListItemsRendered(t *testing.T) {
	configPath := setupWorkspace(t, "")

	var buf bytes.Buffer
	err := listItems(&buf, configPath, listOptions{
		page:    "posts",
		filters: []string{"category=music"},
		limit:   1,
	})
	if err != nil {
		t.Fatalf("listItems: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Posts (2/4 items") {
		t.Errorf("missing header: %s", out)
	}
	if !strings.Contains(out, "Jam session") || strings.Contains(out, "Concert") {
		t.Errorf("limit not applied: %s", out)
	}
	if !strings.Contains(out, "category=[music]") {
		t.Errorf("active filters not shown: %s", out)
	}
}

func TestListItemsNoMatches(t *testing.T) {
	configPath := setupWorkspace(t, "")

	var buf bytes.Buffer
	if err := listItems(&buf, configPath, listOptions{page: "posts", query: "zzz"}); err != nil {
		t.Fatalf("listItems: %v", err)
	}
	if !strings.Contains(buf.String(), "No items match") {
		t.Errorf("expected empty message: %s", buf.String())
	}
}

func TestListItemsErrors(t *testing.T) {
	configPath := setupWorkspace(t, "")

	err := listItems(&bytes.Buffer{}, configPath, listOptions{page: "settings"})
	if !errors.Is(err, core.ErrUnknownPage) {
		t.Errorf("expected ErrUnknownPage, got %v", err)
	}

	err = listItems(&bytes.Buffer{}, configPath, listOptions{page: "posts", filters: []string{"color=red"}})
	if !errors.Is(err, controller.ErrUnknownFilter) {
		t.Errorf("expected ErrUnknownFilter, got %v", err)
	}

	if err := listItems(&bytes.Buffer{}, configPath, listOptions{}); err == nil {
		t.Errorf("expected an error without a page")
	}
}

func TestParseFilterFlags(t *testing.T) {
	active, err := parseFilterFlags(core.PagePosts, []string{"category=music", "category=food"})
	if err != nil {
		t.Fatal(err)
	}
	if got := active.Get("category"); !got.Equal(core.Multi("music", "food")) {
		t.Errorf("multi filter = %v", got)
	}

	if _, err := parseFilterFlags(core.PageFavorites, []string{"type=post", "type=activity"}); err == nil {
		t.Errorf("single-select dimension should reject two values")
	}
	if _, err := parseFilterFlags(core.PageFavorites, []string{"type"}); err == nil {
		t.Errorf("expected an error for a flag without a value")
	}
}

func TestShowCategories(t *testing.T) {
	configPath := setupWorkspace(t, "[labels]\nchess = \"棋类\"\n")

	var buf bytes.Buffer
	if err := showCategories(&buf, configPath, "posts", "category"); err != nil {
		t.Fatalf("showCategories: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"全部 (all) 4", "音乐 (music) 2", "棋类 (chess) 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Index(out, "(music)") > strings.Index(out, "(learning)") {
		t.Errorf("options should be ordered by count:\n%s", out)
	}
}

func TestShowProfileDynamic(t *testing.T) {
	configPath := setupWorkspace(t, "")

	var buf bytes.Buffer
	if err := showProfile(&buf, configPath, "posts", false, true); err != nil {
		t.Fatalf("showProfile: %v", err)
	}
	var static core.Profile
	if err := json.Unmarshal(buf.Bytes(), &static); err != nil {
		t.Fatal(err)
	}
	if f, _ := static.Filter("category"); f.HasOption("chess") {
		t.Errorf("static profile should not discover chess")
	}

	buf.Reset()
	if err := showProfile(&buf, configPath, "posts", true, true); err != nil {
		t.Fatalf("showProfile: %v", err)
	}
	var dynamic core.Profile
	if err := json.Unmarshal(buf.Bytes(), &dynamic); err != nil {
		t.Fatal(err)
	}
	if f, _ := dynamic.Filter("category"); !f.HasOption("chess") {
		t.Errorf("dynamic profile should discover chess")
	}
}

func TestShowProfileRendered(t *testing.T) {
	configPath := setupWorkspace(t, "")

	var buf bytes.Buffer
	if err := showProfile(&buf, configPath, "trades", false, false); err != nil {
		t.Fatalf("showProfile: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"status [tabs]", "price_desc", "publishTime", "* 全部 (all)"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "* 可交换") {
		t.Errorf("only the default option should be marked:\n%s", out)
	}
}

func TestListPages(t *testing.T) {
	configPath := setupWorkspace(t, "")

	var buf bytes.Buffer
	if err := listPages(&buf, configPath); err != nil {
		t.Fatalf("listPages: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "posts") || !strings.Contains(out, "drafts") {
		t.Errorf("pages missing:\n%s", out)
	}
}

func TestLoadWorkspaceMissingDataset(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf("data_file = %q\n", filepath.Join(dir, "missing.json"))
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := loadWorkspace(configPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
