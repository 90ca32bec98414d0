package timetable

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"facultyroom/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveType(t *testing.T) {
	tests := []struct {
		course string
		want   string
	}{
		{"free", models.SlotTypeFree},
		{"Free", models.SlotTypeFree},
		{"  FREE  ", models.SlotTypeFree},
		{"lunch break", models.SlotTypeBreak},
		{"Lunch Break", models.SlotTypeBreak},
		{"Data Structures", models.SlotTypeOccupied},
		{"", models.SlotTypeOccupied},
	}

	for _, tt := range tests {
		t.Run(tt.course, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveType(tt.course))
		})
	}
}

func TestStoreRoundTrip(t *testing.T) {
	logger := zerolog.New(io.Discard)
	path := filepath.Join(t.TempDir(), "timetable.json")
	store := NewStore(path, &logger)

	timetable := &models.Timetable{
		Days:    []string{"Monday"},
		Periods: []string{"P1", "P2", "P3"},
		Schedule: map[string]map[string]models.Slot{
			"Monday": {
				// Caller-supplied types are lies; Save must re-derive them.
				"P1": {Course: "Free", Type: models.SlotTypeOccupied},
				"P2": {Course: "Operating Systems", Type: models.SlotTypeFree},
				"P3": {Course: "Lunch Break", Type: models.SlotTypeFree},
			},
		},
	}

	require.NoError(t, store.Save(timetable))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, models.SlotTypeFree, loaded.Schedule["Monday"]["P1"].Type)
	assert.Equal(t, models.SlotTypeOccupied, loaded.Schedule["Monday"]["P2"].Type)
	assert.Equal(t, models.SlotTypeBreak, loaded.Schedule["Monday"]["P3"].Type)
	assert.Equal(t, "Operating Systems", loaded.Schedule["Monday"]["P2"].Course)
	assert.Equal(t, []string{"Monday"}, loaded.Days)
}

func TestStoreLoadMissingFile(t *testing.T) {
	logger := zerolog.New(io.Discard)
	store := NewStore(filepath.Join(t.TempDir(), "missing.json"), &logger)

	_, err := store.Load()
	assert.Error(t, err)
}

func TestStoreLoadInvalidJSON(t *testing.T) {
	logger := zerolog.New(io.Discard)
	path := filepath.Join(t.TempDir(), "timetable.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewStore(path, &logger)
	_, err := store.Load()
	assert.Error(t, err)
}
