package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/clientview/internal/core"
	"github.com/JonMunkholm/clientview/internal/export"
	"github.com/JonMunkholm/clientview/internal/logging"
)

// sheetStatus describes one failed sheet in a health or reload response.
type sheetStatus struct {
	Sheet   core.Sheet `json:"sheet"`
	Message string     `json:"message"`
	Code    string     `json:"code"`
}

// snapshotResponse summarizes the current snapshot.
type snapshotResponse struct {
	Status     string        `json:"status"`
	SnapshotID string        `json:"snapshotId"`
	LoadedAt   time.Time     `json:"loadedAt"`
	Branches   int           `json:"branches"`
	Clients    int           `json:"clients"`
	Accounts   int           `json:"accounts"`
	Errors     []sheetStatus `json:"errors"`
}

func summarize(snap *core.Snapshot) snapshotResponse {
	resp := snapshotResponse{
		Status:     "ok",
		SnapshotID: snap.ID.String(),
		LoadedAt:   snap.LoadedAt,
		Branches:   len(snap.Branches),
		Clients:    len(snap.Clients),
		Accounts:   len(snap.Accounts),
		Errors:     []sheetStatus{},
	}
	for _, e := range snap.Errors {
		msg := core.MapError(e.Err)
		resp.Errors = append(resp.Errors, sheetStatus{Sheet: e.Sheet, Message: msg.Message, Code: msg.Code})
	}
	if len(resp.Errors) > 0 {
		resp.Status = "degraded"
	}
	return resp
}

// clientView adds the derived fields a list row shows.
type clientView struct {
	core.Client
	Age          *int   `json:"age"`
	TaxIDDisplay string `json:"taxIdDisplay"`
}

type clientsResponse struct {
	Items      []clientView `json:"items"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalItems int          `json:"totalItems"`
	TotalPages int          `json:"totalPages"`
	PageSizes  []int        `json:"pageSizes"`
}

// handleHealth reports the loaded snapshot. A failed sheet degrades the
// status but never fails the probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, summarize(s.service.Snapshot()))
}

func (s *Server) handleBranches(w http.ResponseWriter, r *http.Request) {
	branches := s.service.Branches()
	if branches == nil {
		branches = []core.Branch{}
	}
	writeJSON(w, branches)
}

// handleClients serves one page of the filtered, sorted client list.
//
// Query parameters: search, branch (bool), min_age, max_age, sort, dir, page, size.
func (s *Server) handleClients(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	page, err := s.service.Clients(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}

	now := s.service.Now()
	resp := clientsResponse{
		Items:      make([]clientView, 0, len(page.Items)),
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
		PageSizes:  s.service.PageSizes(),
	}
	for _, c := range page.Items {
		v := clientView{Client: c, TaxIDDisplay: core.FormatTaxID(c.TaxID)}
		if age, ok := core.Age(c.BirthDate, now); ok {
			v.Age = &age
		}
		resp.Items = append(resp.Items, v)
	}
	writeJSON(w, resp)
}

func (s *Server) parseQuery(r *http.Request) (core.Query, error) {
	values := r.URL.Query()
	q := s.service.NewQuery()

	if search := strings.TrimSpace(values.Get("search")); search != "" {
		q = q.WithSearch(search)
	}

	if raw := values.Get("branch"); raw != "" {
		on, err := strconv.ParseBool(raw)
		if err != nil {
			return q, fmt.Errorf("branch %q: %w", raw, core.ErrInvalidParameter)
		}
		q = q.WithBranchMatch(on)
	}

	minAge, err := optionalInt(values.Get("min_age"), "min_age")
	if err != nil {
		return q, err
	}
	maxAge, err := optionalInt(values.Get("max_age"), "max_age")
	if err != nil {
		return q, err
	}
	q = q.WithAgeRange(minAge, maxAge)

	key, order := q.SortBy, q.Order
	if raw := values.Get("sort"); raw != "" {
		if key, err = core.ParseSortKey(raw); err != nil {
			return q, err
		}
	}
	if raw := values.Get("dir"); raw != "" {
		if order, err = core.ParseSortOrder(raw); err != nil {
			return q, err
		}
	}
	q = q.WithSort(key, order)

	if raw := values.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return q, fmt.Errorf("size %q: %w", raw, core.ErrInvalidParameter)
		}
		if q, err = q.WithPageSize(size, s.service.PageSizes()); err != nil {
			return q, err
		}
	}

	// Out-of-range pages are clamped by pagination, so only the syntax is
	// checked here.
	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return q, fmt.Errorf("page %q: %w", raw, core.ErrInvalidParameter)
		}
		q.Page = page
	}

	return q, nil
}

func optionalInt(raw, name string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("%s %q: %w", name, raw, core.ErrInvalidParameter)
	}
	return &v, nil
}

func (s *Server) handleClientDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.service.ClientDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, detail)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.Report(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, report)
}

// handleReportExport streams the report as a download. The document is
// rendered to memory first so a rendering failure still gets a JSON error.
func (s *Server) handleReportExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	report, err := s.service.Report(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.exports.Acquire(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	var buf bytes.Buffer
	err = export.WriteReport(&buf, format, report)
	s.exports.Release()
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename(report)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Warn("export write failed", "format", format, "error", err)
	}
}

// handleReload fetches the sheets again. The response describes the new
// snapshot; sheet failures are reported in it, not as an error status.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	snap := s.service.Reload(reloadContext(r.Context(), r))
	writeJSON(w, summarize(snap))
}
