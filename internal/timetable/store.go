package timetable

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"facultyroom/internal/models"

	"github.com/rs/zerolog"
)

// Store holds the weekly template in a single JSON document, read and
// written wholesale. Slot types are derived from the course name on
// every write and never trusted from caller input.
type Store struct {
	path   string
	mu     sync.RWMutex
	logger zerolog.Logger
}

func NewStore(path string, logger *zerolog.Logger) *Store {
	var componentLogger zerolog.Logger
	if logger != nil {
		componentLogger = logger.With().Str("component", "timetable").Logger()
	}
	return &Store{path: path, logger: componentLogger}
}

func (s *Store) Load() (*models.Timetable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timetable: %w", err)
	}

	var timetable models.Timetable
	if err := json.Unmarshal(data, &timetable); err != nil {
		return nil, fmt.Errorf("failed to parse timetable: %w", err)
	}
	return &timetable, nil
}

func (s *Store) Save(timetable *models.Timetable) error {
	Normalize(timetable)

	data, err := json.MarshalIndent(timetable, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal timetable: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Write-then-rename so readers never see a half-written document.
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create timetable directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write timetable: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace timetable: %w", err)
	}

	s.logger.Info().Str("path", s.path).Msg("timetable saved")
	return nil
}

// Normalize re-derives every slot's type from its course name.
func Normalize(timetable *models.Timetable) {
	for day, periods := range timetable.Schedule {
		for period, slot := range periods {
			slot.Type = DeriveType(slot.Course)
			timetable.Schedule[day][period] = slot
		}
	}
}

// DeriveType maps a course name to the slot type: "free" stays free,
// "lunch break" is a break, anything else occupies the slot.
func DeriveType(course string) string {
	switch strings.ToLower(strings.TrimSpace(course)) {
	case "free":
		return models.SlotTypeFree
	case "lunch break":
		return models.SlotTypeBreak
	default:
		return models.SlotTypeOccupied
	}
}
