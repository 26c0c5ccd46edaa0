// Package dataset loads the page datasets served by sieve.
//
// A dataset file is a JSON object with one array per page:
//
//	{"favorites": [...], "posts": [...], "trades": [...], "activities": [...], "drafts": [...]}
//
// Files ending in ".json.zst" are zstd-compressed JSON. Missing arrays load
// as empty pages.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/rubiojr/sieve/pkg/core"
	"github.com/rubiojr/sieve/pkg/records"
)

// ErrUnsupportedFormat is returned for files that are neither JSON nor
// zstd-compressed JSON.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Dataset holds the items of every page.
type Dataset struct {
	Favorites  []records.Favorite `json:"favorites"`
	Posts      []records.Post     `json:"posts"`
	Trades     []records.Trade    `json:"trades"`
	Activities []records.Activity `json:"activities"`
	Drafts     []records.Draft    `json:"drafts"`
}

// Items returns the items of page as generic records.
func (d *Dataset) Items(page core.PageKey) ([]core.Record, error) {
	switch page {
	case core.PageFavorites:
		return toRecords(d.Favorites), nil
	case core.PagePosts:
		return toRecords(d.Posts), nil
	case core.PageTrades:
		return toRecords(d.Trades), nil
	case core.PageActivities:
		return toRecords(d.Activities), nil
	case core.PageDrafts:
		return toRecords(d.Drafts), nil
	}
	return nil, fmt.Errorf("items of %q: %w", page, core.ErrUnknownPage)
}

// Count returns the number of items of page, zero for unknown pages.
func (d *Dataset) Count(page core.PageKey) int {
	items, err := d.Items(page)
	if err != nil {
		return 0
	}
	return len(items)
}

func toRecords[T core.Record](items []T) []core.Record {
	out := make([]core.Record, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// Load reads the dataset at path, picking the decoder from its extension.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	switch {
	case strings.HasSuffix(path, ".json.zst"), strings.HasSuffix(path, ".zst"):
		return DecodeZstd(f)
	case strings.HasSuffix(path, ".json"):
		return Decode(f)
	}
	return nil, fmt.Errorf("loading %s: %w", path, ErrUnsupportedFormat)
}

// Decode parses a JSON dataset.
func Decode(r io.Reader) (*Dataset, error) {
	var d Dataset
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}
	return &d, nil
}

// DecodeZstd parses a zstd-compressed JSON dataset.
func DecodeZstd(r io.Reader) (*Dataset, error) {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer decoder.Close()
	return Decode(decoder)
}

// Save writes d to path, compressing it when path ends in ".zst".
func (d *Dataset) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling dataset: %w", err)
	}

	switch {
	case strings.HasSuffix(path, ".zst"):
		encoder, err := zstd.NewWriter(nil)
		if err != nil {
			return fmt.Errorf("creating zstd encoder: %w", err)
		}
		data = encoder.EncodeAll(data, nil)
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("closing zstd encoder: %w", err)
		}
	case strings.HasSuffix(path, ".json"):
	default:
		return fmt.Errorf("saving %s: %w", path, ErrUnsupportedFormat)
	}

	return os.WriteFile(path, data, 0644)
}

// Parse decodes raw bytes, detecting zstd frames by their magic number.
func Parse(data []byte) (*Dataset, error) {
	if bytes.HasPrefix(data, zstdMagic) {
		return DecodeZstd(bytes.NewReader(data))
	}
	return Decode(bytes.NewReader(data))
}

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
