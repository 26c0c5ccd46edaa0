package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rubiojr/sieve/pkg/controller"
	"github.com/rubiojr/sieve/pkg/core"
	"github.com/rubiojr/sieve/pkg/discovery"
	"github.com/rubiojr/sieve/pkg/predicates"
	"github.com/rubiojr/sieve/pkg/profiles"
	"github.com/rubiojr/sieve/pkg/version"
)

const filterParamPrefix = "filter."

var errBadFilter = errors.New("bad filter")

func (s *Server) HandleListPages(w http.ResponseWriter, r *http.Request) {
	data := s.Dataset()

	pages := make([]PageInfo, 0, len(core.AllPages))
	for _, page := range core.AllPages {
		pages = append(pages, PageInfo{Key: page, Count: data.Count(page)})
	}

	s.writeJSON(w, http.StatusOK, ListPagesResponse{Pages: pages, Count: len(pages)})
}

func (s *Server) HandleProfile(w http.ResponseWriter, r *http.Request) {
	page, ok := s.pageParam(w, r)
	if !ok {
		return
	}

	mode := s.opts.Mode
	if raw := r.URL.Query().Get("dynamic"); raw != "" {
		dynamic, err := strconv.ParseBool(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "Invalid parameter", fmt.Sprintf("dynamic: %v", err))
			return
		}
		mode = profiles.Static
		if dynamic {
			mode = profiles.Dynamic
		}
	}

	items, err := s.Dataset().Items(page)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to load items", err.Error())
		return
	}
	profile, err := profiles.ForItems(page, items, mode, s.opts.Labels)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "Page not found", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, ProfileResponse{
		Page:    page,
		Dynamic: mode == profiles.Dynamic && page == core.PagePosts,
		Profile: profile,
	})
}

func (s *Server) HandleCategories(w http.ResponseWriter, r *http.Request) {
	page, ok := s.pageParam(w, r)
	if !ok {
		return
	}

	field := r.URL.Query().Get("field")
	if field == "" {
		field = predicates.KeyCategory
	}

	items, err := s.Dataset().Items(page)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to load items", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, CategoriesResponse{
		Page:    page,
		Field:   field,
		Options: discovery.Discover(items, field, s.opts.Labels),
	})
}

// HandleItems runs one stateless pass of the page controller configured
// from the query string: q, sort, limit and filter.<key> (repeatable for
// multi-select dimensions, or comma separated).
func (s *Server) HandleItems(w http.ResponseWriter, r *http.Request) {
	page, ok := s.pageParam(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filters, err := parseFilters(page, query)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			s.writeError(w, http.StatusBadRequest, "Invalid parameter", "limit must be a non-negative integer")
			return
		}
	}

	ctrl, err := s.newController(page, controller.Config[core.Record]{
		InitialFilters: filters,
		InitialSort:    query.Get("sort"),
		InitialSearch:  query.Get("q"),
	})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to build view", err.Error())
		return
	}
	defer ctrl.Close()

	resp := itemsResponse(page, ctrl)
	if limit > 0 && len(resp.Items) > limit {
		resp.Items = resp.Items[:limit]
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   version.APIVersion(),
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) pageParam(w http.ResponseWriter, r *http.Request) (core.PageKey, bool) {
	page, err := core.ParsePageKey(r.PathValue("page"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, "Page not found", err.Error())
		return "", false
	}
	return page, true
}

func (s *Server) newController(page core.PageKey, cfg controller.Config[core.Record]) (*controller.Controller[core.Record], error) {
	items, err := s.Dataset().Items(page)
	if err != nil {
		return nil, err
	}
	cfg.Items = items
	return controller.ForPage(page, controller.PageOptions{
		Mode:   s.opts.Mode,
		Labels: s.opts.Labels,
		Locale: s.opts.Locale,
	}, cfg)
}

func itemsResponse(page core.PageKey, ctrl *controller.Controller[core.Record]) *ItemsResponse {
	items := ctrl.Result()
	return &ItemsResponse{
		Page:             page,
		Items:            items,
		Total:            ctrl.TotalCount(),
		Count:            len(items),
		Filters:          ctrl.Filters(),
		Sort:             ctrl.Sort(),
		Query:            ctrl.Search(),
		HasActiveFilters: ctrl.HasActiveFilters(),
	}
}

// parseFilters reads filter.<key> parameters. Keys must be declared by the
// page profile; multi-select dimensions accept several values.
func parseFilters(page core.PageKey, query url.Values) (core.ActiveFilters, error) {
	profile, err := profiles.For(page)
	if err != nil {
		return nil, err
	}

	active := core.ActiveFilters{}
	for param, raw := range query {
		key, ok := strings.CutPrefix(param, filterParamPrefix)
		if !ok {
			continue
		}
		f, ok := profile.Filter(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a filter of %s", errBadFilter, key, page)
		}

		var values []string
		for _, v := range raw {
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					values = append(values, part)
				}
			}
		}

		if f.Multi() {
			active[key] = core.Multi(values...)
			continue
		}
		if len(values) > 1 {
			return nil, fmt.Errorf("%w: %q accepts a single value", errBadFilter, key)
		}
		if len(values) == 1 {
			active[key] = core.Single(values[0])
		}
	}
	return active, nil
}
