// Package profiles is the fixed table of per-page filter profiles.
//
// Every core.PageKey has exactly one profile. The posts page can also be
// built dynamically from the current dataset, in which case its category
// options come from category discovery instead of the static list.
package profiles

import (
	"fmt"
	"slices"

	"github.com/rubiojr/sieve/pkg/core"
	"github.com/rubiojr/sieve/pkg/discovery"
	"github.com/rubiojr/sieve/pkg/predicates"
	"github.com/rubiojr/sieve/pkg/sorting"
)

// Mode selects how the posts profile acquires its category options.
type Mode int

const (
	Static Mode = iota
	Dynamic
)

func opt(key, label string) core.FilterOption {
	return core.FilterOption{Key: key, Label: label}
}

func sortOpt(key, label string, dir core.SortDirection) core.SortOption {
	return core.SortOption{Key: key, Label: label, Direction: dir}
}

var contentTypes = []core.FilterOption{
	opt(core.AllKey, "全部"),
	opt("activity", "活动"),
	opt("post", "帖子"),
	opt("exchange", "交换"),
}

// Favorites is the profile of the saved items page.
func Favorites() core.Profile {
	return core.Profile{
		Filters: []core.FilterConfig{{
			Type:    core.FilterTabs,
			Key:     predicates.KeyType,
			Options: slices.Clone(contentTypes),
		}},
		Sort: core.SortConfig{
			Title: "排序",
			Options: []core.SortOption{
				sortOpt("favoriteTime", "最近收藏", core.Desc),
				sortOpt("title", "标题", core.Asc),
			},
			DefaultSort: "favoriteTime",
		},
		Search: core.SearchConfig{
			Placeholder:  "搜索收藏",
			SearchFields: []string{"title", "description", "author.name"},
		},
	}
}

var postCategories = []core.FilterOption{
	opt(core.AllKey, "全部"),
	opt("music", "音乐"),
	opt("food", "美食"),
	opt("learning", "学习"),
	opt("sports", "运动"),
	opt("travel", "旅行"),
	opt("tech", "科技"),
	opt(discovery.OtherKey, "其他"),
}

func postsProfile(categories []core.FilterOption) core.Profile {
	return core.Profile{
		Filters: []core.FilterConfig{{
			Type:          core.FilterChips,
			Key:           predicates.KeyCategory,
			Title:         "分类",
			Options:       categories,
			AllowMultiple: true,
			ShowCount:     true,
		}},
		Sort: core.SortConfig{
			Title: "排序",
			Options: []core.SortOption{
				sortOpt("createTime", "最新发布", core.Desc),
				sortOpt("stats.likes", "最多点赞", core.Desc),
				sortOpt("stats.comments", "最多评论", core.Desc),
			},
			DefaultSort: "createTime",
		},
		Search: core.SearchConfig{
			Placeholder:  "搜索帖子",
			SearchFields: []string{"title", "content", "author.name"},
		},
	}
}

// Posts is the posts profile with the fixed category list.
func Posts() core.Profile {
	return postsProfile(slices.Clone(postCategories))
}

// DynamicPosts is the posts profile with categories discovered from items.
// It must be rebuilt whenever items change.
func DynamicPosts[T core.Record](items []T, labels discovery.Labels) core.Profile {
	return postsProfile(discovery.Discover(items, predicates.KeyCategory, labels))
}

// Trades is the profile of the exchange listings page. Its sort keys use
// the "_desc" suffix convention, see SortFunc.
func Trades() core.Profile {
	return core.Profile{
		Filters: []core.FilterConfig{
			{
				Type: core.FilterTabs,
				Key:  predicates.KeyStatus,
				Options: []core.FilterOption{
					opt(core.AllKey, "全部"),
					opt("available", "可交换"),
					opt("reserved", "已预订"),
					opt("sold", "已完成"),
				},
			},
			{
				Type:  core.FilterChips,
				Key:   predicates.KeyCategory,
				Title: "分类",
				Options: []core.FilterOption{
					opt(core.AllKey, "全部"),
					opt("electronics", "数码"),
					opt("books", "图书"),
					opt("clothing", "服饰"),
					opt("furniture", "家具"),
					opt("sports", "运动"),
					opt(discovery.OtherKey, "其他"),
				},
			},
		},
		Sort: core.SortConfig{
			Title: "排序",
			Options: []core.SortOption{
				sortOpt("publishTime", "最新发布", core.Desc),
				sortOpt("price", "价格从低到高", core.Asc),
				sortOpt("price"+sorting.DescSuffix, "价格从高到低", core.Desc),
			},
			DefaultSort: "publishTime",
		},
		Search: core.SearchConfig{
			Placeholder:  "搜索物品",
			SearchFields: []string{"title", "description", "seller.name"},
		},
	}
}

// Activities is the profile of the activities page.
func Activities() core.Profile {
	return core.Profile{
		Filters: []core.FilterConfig{
			{
				Type: core.FilterTabs,
				Key:  predicates.KeyStatus,
				Options: []core.FilterOption{
					opt(core.AllKey, "全部"),
					opt("upcoming", "即将开始"),
					opt("ongoing", "进行中"),
					opt("ended", "已结束"),
				},
			},
			{
				Type:  core.FilterDropdown,
				Key:   predicates.KeyCategory,
				Title: "类型",
				Options: []core.FilterOption{
					opt(core.AllKey, "全部"),
					opt("music", "音乐"),
					opt("sports", "运动"),
					opt("learning", "学习"),
					opt("social", "社交"),
					opt("outdoor", "户外"),
					opt(discovery.OtherKey, "其他"),
				},
			},
		},
		Sort: core.SortConfig{
			Title: "排序",
			Options: []core.SortOption{
				sortOpt("startTime", "开始时间", core.Asc),
				sortOpt("stats.participants", "参与人数", core.Desc),
			},
			DefaultSort: "startTime",
		},
		Search: core.SearchConfig{
			Placeholder:  "搜索活动",
			SearchFields: []string{"title", "location", "organizer.name"},
		},
	}
}

// Drafts is the profile of the drafts page.
func Drafts() core.Profile {
	return core.Profile{
		Filters: []core.FilterConfig{{
			Type:    core.FilterTabs,
			Key:     predicates.KeyType,
			Options: slices.Clone(contentTypes),
		}},
		Sort: core.SortConfig{
			Title: "排序",
			Options: []core.SortOption{
				sortOpt("updateTime", "最近编辑", core.Desc),
				sortOpt("title", "标题", core.Asc),
			},
			DefaultSort: "updateTime",
		},
		Search: core.SearchConfig{
			Placeholder:  "搜索草稿",
			SearchFields: []string{"title", "content"},
		},
	}
}

// For returns the static profile of page.
func For(page core.PageKey) (core.Profile, error) {
	switch page {
	case core.PageFavorites:
		return Favorites(), nil
	case core.PagePosts:
		return Posts(), nil
	case core.PageTrades:
		return Trades(), nil
	case core.PageActivities:
		return Activities(), nil
	case core.PageDrafts:
		return Drafts(), nil
	}
	return core.Profile{}, fmt.Errorf("profile for %q: %w", page, core.ErrUnknownPage)
}

// ForItems returns the profile of page for the given dataset. Only the
// posts page differs between modes.
func ForItems[T core.Record](page core.PageKey, items []T, mode Mode, labels discovery.Labels) (core.Profile, error) {
	if page == core.PagePosts && mode == Dynamic {
		return DynamicPosts(items, labels), nil
	}
	return For(page)
}

// Predicate returns the filter predicate of page.
func Predicate(page core.PageKey) (core.Predicate, error) {
	return predicates.For(page)
}

// SortFunc returns the page-specific sort of page, or nil when the page
// uses the generic comparator.
func SortFunc[T core.Record](page core.PageKey, s *sorting.Sorter) (sorting.Func[T], error) {
	switch page {
	case core.PageTrades:
		return sorting.SuffixDesc[T](s), nil
	case core.PageFavorites, core.PagePosts, core.PageActivities, core.PageDrafts:
		return nil, nil
	}
	return nil, fmt.Errorf("sort for %q: %w", page, core.ErrUnknownPage)
}
