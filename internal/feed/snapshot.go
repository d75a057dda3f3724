package feed

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"rally_timecomp/internal/rally"
)

// Season names a group of rallies published in one file.
type Season struct {
	Name string
	File string
}

// ParseSeasons parses "name=file" pairs.
func ParseSeasons(pairs []string) ([]Season, error) {
	seasons := make([]Season, 0, len(pairs))
	seen := map[string]bool{}
	for _, pair := range pairs {
		name, file, ok := strings.Cut(pair, "=")
		name, file = strings.TrimSpace(name), strings.TrimSpace(file)
		if !ok || name == "" || file == "" {
			return nil, fmt.Errorf("season %q: want name=file", pair)
		}
		if seen[name] {
			return nil, fmt.Errorf("season %q listed twice", name)
		}
		seen[name] = true
		seasons = append(seasons, Season{Name: name, File: file})
	}
	return seasons, nil
}

// Snapshot is everything loaded at one point in time. It is never modified
// after LoadSnapshot returns.
type Snapshot struct {
	Seasons    []string
	Rallies    map[string]map[string]*rally.Rally
	Identities rally.Identities
	LoadedAt   time.Time
}

// Event identifies one rally inside a snapshot.
type Event struct {
	Season string
	Slug   string
	Title  string
}

// Key renders the "season|slug" form used by the web form.
func (e Event) Key() string {
	return e.Season + "|" + e.Slug
}

// ParseEventKey splits a "season|slug" key.
func ParseEventKey(key string) (season, slug string, err error) {
	season, slug, ok := strings.Cut(key, "|")
	if !ok || season == "" || slug == "" {
		return "", "", fmt.Errorf("event %q: want season|slug", key)
	}
	return season, slug, nil
}

func (s *Snapshot) Rally(season, slug string) (*rally.Rally, bool) {
	r, ok := s.Rallies[season][slug]
	return r, ok
}

// Events lists the rallies by season order, then by start date and title.
func (s *Snapshot) Events() []Event {
	var out []Event
	for _, season := range s.Seasons {
		rallies := make([]*rally.Rally, 0, len(s.Rallies[season]))
		for _, r := range s.Rallies[season] {
			rallies = append(rallies, r)
		}
		sort.Slice(rallies, func(i, j int) bool {
			if rallies[i].StartDate != rallies[j].StartDate {
				return rallies[i].StartDate < rallies[j].StartDate
			}
			return rallies[i].Title < rallies[j].Title
		})
		for _, r := range rallies {
			out = append(out, Event{Season: season, Slug: r.Slug, Title: r.Title})
		}
	}
	return out
}

// LoadSnapshot reads all season files and the identity file from dir
// concurrently. The first failure cancels the remaining loads.
func LoadSnapshot(ctx context.Context, dir string, seasons []Season, uidFile string) (*Snapshot, error) {
	results := make([][]*rally.Rally, len(seasons))
	var ids rally.Identities

	g, gctx := errgroup.WithContext(ctx)
	for i, season := range seasons {
		i, season := i, season
		g.Go(func() error {
			rallies, err := loadFile(gctx, filepath.Join(dir, season.File), DecodeRallies)
			if err != nil {
				return fmt.Errorf("season %s: %w", season.Name, err)
			}
			results[i] = rallies
			return nil
		})
	}
	g.Go(func() error {
		var err error
		ids, err = loadFile(gctx, filepath.Join(dir, uidFile), DecodeIdentities)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Seasons:    make([]string, 0, len(seasons)),
		Rallies:    make(map[string]map[string]*rally.Rally, len(seasons)),
		Identities: ids,
		LoadedAt:   time.Now(),
	}
	for i, season := range seasons {
		bySlug := make(map[string]*rally.Rally, len(results[i]))
		for _, r := range results[i] {
			bySlug[r.Slug] = r
		}
		snap.Seasons = append(snap.Seasons, season.Name)
		snap.Rallies[season.Name] = bySlug
	}
	return snap, nil
}

func loadFile[T any](ctx context.Context, path string, decode func(io.Reader) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()
	v, err := decode(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return v, nil
}
