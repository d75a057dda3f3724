package web

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"rally_timecomp/internal/feed"
	"rally_timecomp/internal/log"
	"rally_timecomp/internal/rally"
	"rally_timecomp/internal/report"
	"rally_timecomp/internal/xlsx"
)

type competitor struct {
	Number int
	Name   string
}

type indexPage struct {
	Events      []feed.Event
	Competitors []competitor
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap := s.src.Current()
	if snap == nil {
		http.Error(w, feed.ErrNotLoaded.Error(), http.StatusServiceUnavailable)
		return
	}
	page := indexPage{Events: snap.Events(), Competitors: competitors(snap)}

	var buf bytes.Buffer
	if err := s.index.Execute(&buf, page); err != nil {
		log.Error("render index", log.ErrorField(err))
		http.Error(w, "could not render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// competitors lists every number seen in the snapshot with the driver of
// its most recent appearance.
func competitors(snap *feed.Snapshot) []competitor {
	names := map[int]string{}
	for _, ev := range snap.Events() {
		r, _ := snap.Rally(ev.Season, ev.Slug)
		for _, e := range r.Entries {
			if id, ok := snap.Identities.Identity(e.DriverUID); ok {
				names[e.Number] = id.FullName()
			} else if _, seen := names[e.Number]; !seen {
				names[e.Number] = ""
			}
		}
	}
	out := make([]competitor, 0, len(names))
	for n, name := range names {
		out = append(out, competitor{Number: n, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	season, slug, err := feed.ParseEventKey(q.Get("event"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	driver, err := strconv.Atoi(q.Get("driver"))
	if err != nil {
		http.Error(w, fmt.Sprintf("driver %q is not a number", q.Get("driver")), http.StatusBadRequest)
		return
	}
	benchmarks, err := parseNumbers(q["benchmarks"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap := s.src.Current()
	if snap == nil {
		http.Error(w, feed.ErrNotLoaded.Error(), http.StatusServiceUnavailable)
		return
	}
	active, ok := snap.Rally(season, slug)
	if !ok {
		http.Error(w, fmt.Sprintf("no event %s in season %s", slug, season), http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := renderWorkbook(&buf, active, snap.Identities, driver, benchmarks); err != nil {
		log.Warn("report failed",
			log.String("event", slug), log.Int("driver", driver), log.ErrorField(err))
		http.Error(w, fmt.Sprintf("Failed to build spreadsheet: %v", err), errStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment",
		map[string]string{"filename": fmt.Sprintf("%s_%d.xlsx", slug, driver)}))
	w.Header().Set("Content-Transfer-Encoding", "binary")
	w.Write(buf.Bytes())
}

func renderWorkbook(buf *bytes.Buffer, r *rally.Rally, ids rally.IdentityLookup, driver int, benchmarks []int) error {
	wb, err := report.BuildSpreadsheet(r, ids, driver, benchmarks)
	if err != nil {
		return err
	}
	return xlsx.Write(buf, wb)
}

// parseNumbers accepts repeated values and comma separated lists.
func parseNumbers(values []string) ([]int, error) {
	var out []int
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("benchmark %q is not a number", part)
			}
			out = append(out, n)
		}
	}
	return out, nil
}

func errStatus(err error) int {
	var unknown *report.UnknownDriverError
	if errors.As(err, &unknown) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
