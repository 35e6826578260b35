package repo

import (
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"magazyn/internal/model"
	"magazyn/internal/storage"
)

// History przechowuje dziennik zdarzeń w data/history.json — jeden rekord
// na sprzęt, zdarzenia tylko dopisywane.
type History struct {
	mu   sync.Mutex
	path string
	log  *zap.SugaredLogger
}

func NewHistory(dataDir string, log *zap.SugaredLogger) *History {
	return &History{path: filepath.Join(dataDir, "history.json"), log: log}
}

func (r *History) read() ([]model.HistoryRecord, error) {
	history := []model.HistoryRecord{}
	if err := storage.ReadCollection(r.path, &history); err != nil {
		r.log.Errorw("reading history file", "error", err)
		return nil, err
	}
	return history, nil
}

// List returns all history records.
func (r *History) List() ([]model.HistoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

// Append stamps the event with the current time and appends it to the
// equipment's record, creating the record on first use.
func (r *History) Append(equipmentID int, action string, userID *int, note string) (model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	history, err := r.read()
	if err != nil {
		return model.Event{}, err
	}

	event := model.Event{
		EquipmentID: equipmentID,
		Action:      action,
		UserID:      userID,
		Note:        note,
		Date:        time.Now().UTC(),
	}

	idx := -1
	for i, h := range history {
		if h.EquipmentID == equipmentID {
			idx = i
			break
		}
	}
	if idx == -1 {
		history = append(history, model.HistoryRecord{EquipmentID: equipmentID, Events: []model.Event{}})
		idx = len(history) - 1
	}
	history[idx].Events = append(history[idx].Events, event)

	if err := storage.WriteCollection(r.path, history); err != nil {
		r.log.Errorw("writing history file", "error", err)
		return model.Event{}, err
	}
	return event, nil
}

// DeleteAll wipes the whole log. Individual events are never removed.
func (r *History) DeleteAll() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	history, err := r.read()
	if err != nil {
		return 0, err
	}
	if err := storage.WriteCollection(r.path, []model.HistoryRecord{}); err != nil {
		r.log.Errorw("writing history file", "error", err)
		return 0, err
	}
	return len(history), nil
}
