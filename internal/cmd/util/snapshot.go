// Package util holds helpers shared by the subcommands.
package util

import (
	"context"
	"path/filepath"

	"rally_timecomp/internal/config"
	"rally_timecomp/internal/feed"
)

// Seasons parses the configured season list.
func Seasons() ([]feed.Season, error) {
	return feed.ParseSeasons(config.Seasons)
}

// Loader returns a feed.LoadFunc reading the configured data files.
func Loader() (feed.LoadFunc, error) {
	seasons, err := Seasons()
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) (*feed.Snapshot, error) {
		return feed.LoadSnapshot(ctx, config.DataDir, seasons, config.UIDFile)
	}, nil
}

// DataFiles lists every file the configuration expects in the data dir.
func DataFiles() ([]string, error) {
	seasons, err := Seasons()
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(seasons)+1)
	for _, s := range seasons {
		files = append(files, filepath.ToSlash(s.File))
	}
	return append(files, filepath.ToSlash(config.UIDFile)), nil
}
