package util

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rally_timecomp/internal/config"
)

func withConfig(t *testing.T, dir string, seasons []string, uids string) {
	t.Helper()
	oldDir, oldSeasons, oldUIDs := config.DataDir, config.Seasons, config.UIDFile
	t.Cleanup(func() {
		config.DataDir, config.Seasons, config.UIDFile = oldDir, oldSeasons, oldUIDs
	})
	config.DataDir, config.Seasons, config.UIDFile = dir, seasons, uids
}

func TestLoader(t *testing.T) {
	withConfig(t, "../../feed/testdata",
		[]string{"2024=2024rallies.json", "nonARA=nonARArallies.json"}, "uidsSmall.json")

	load, err := Loader()
	require.NoError(t, err)
	snap, err := load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2024", "nonARA"}, snap.Seasons)
	_, ok := snap.Rally("nonARA", "mountain_sprint_2024")
	assert.True(t, ok)
}

func TestLoader_badSeason(t *testing.T) {
	withConfig(t, "data", []string{"2024"}, "uidsSmall.json")
	_, err := Loader()
	assert.Error(t, err)
}

func TestDataFiles(t *testing.T) {
	withConfig(t, "data", config.DefaultSeasons, config.DefaultUIDFile)
	files, err := DataFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2025rallies.json", "2024rallies.json", "nonARArallies.json", "uidsSmall.json",
	}, files)
}
