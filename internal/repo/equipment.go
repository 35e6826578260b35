package repo

import (
	"encoding/json"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"magazyn/internal/model"
	"magazyn/internal/storage"
)

// Equipment przechowuje sprzęt w data/equipment.json.
type Equipment struct {
	mu   sync.Mutex
	path string
	log  *zap.SugaredLogger
}

func NewEquipment(dataDir string, log *zap.SugaredLogger) *Equipment {
	return &Equipment{path: filepath.Join(dataDir, "equipment.json"), log: log}
}

func (r *Equipment) read() ([]model.Equipment, error) {
	equipment := []model.Equipment{}
	if err := storage.ReadCollection(r.path, &equipment); err != nil {
		r.log.Errorw("reading equipment file", "error", err)
		return nil, err
	}
	return equipment, nil
}

// List returns all equipment.
func (r *Equipment) List() ([]model.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

// HasAssigned reports whether any item is currently assigned to userID.
// Used before deleting a user.
func (r *Equipment) HasAssigned(userID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	equipment, err := r.read()
	if err != nil {
		return false, err
	}
	for _, e := range equipment {
		if e.AssignedTo != nil && *e.AssignedTo == userID {
			return true, nil
		}
	}
	return false, nil
}

// HasAnyAssigned reports whether any item at all is assigned.
func (r *Equipment) HasAnyAssigned() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	equipment, err := r.read()
	if err != nil {
		return false, err
	}
	for _, e := range equipment {
		if e.AssignedTo != nil {
			return true, nil
		}
	}
	return false, nil
}

// Create assigns the next id, stamps lastModified and appends the item.
func (r *Equipment) Create(e model.Equipment) (model.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	equipment, err := r.read()
	if err != nil {
		return model.Equipment{}, err
	}
	ids := make([]int, len(equipment))
	for i, existing := range equipment {
		ids[i] = existing.ID
	}
	e.ID = nextID(ids)
	e.LastModified = time.Now().UTC()
	equipment = append(equipment, e)
	if err := storage.WriteCollection(r.path, equipment); err != nil {
		r.log.Errorw("writing equipment file", "error", err)
		return model.Equipment{}, err
	}
	r.log.Infow("equipment added", "name", e.Name, "id", e.ID)
	return e, nil
}

// Update merges a partial update and restamps lastModified.
func (r *Equipment) Update(upd model.EquipmentUpdate) (model.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	equipment, err := r.read()
	if err != nil {
		return model.Equipment{}, err
	}
	idx := -1
	for i, e := range equipment {
		if e.ID == upd.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return model.Equipment{}, ErrNotFound
	}

	item := &equipment[idx]
	if upd.Name != nil {
		item.Name = *upd.Name
	}
	if upd.Type != nil {
		item.Type = *upd.Type
	}
	if upd.SerialNumber != nil {
		item.SerialNumber = *upd.SerialNumber
	}
	if upd.CLNNumber != nil {
		item.CLNNumber = *upd.CLNNumber
	}
	if upd.InventoryNumber != nil {
		item.InventoryNumber = *upd.InventoryNumber
	}
	if upd.RoomLocation != nil {
		item.RoomLocation = *upd.RoomLocation
	}
	if upd.Notes != nil {
		item.Notes = *upd.Notes
	}
	if upd.Damaged != nil {
		item.Damaged = *upd.Damaged
	}
	if len(upd.AssignedTo) > 0 {
		// An explicit null clears the assignment.
		var userID *int
		if err := json.Unmarshal(upd.AssignedTo, &userID); err != nil {
			return model.Equipment{}, err
		}
		item.AssignedTo = userID
		if userID != nil {
			now := time.Now().UTC()
			item.AssignedDate = &now
		} else {
			item.AssignedDate = nil
		}
	}
	item.LastModified = time.Now().UTC()

	if err := storage.WriteCollection(r.path, equipment); err != nil {
		r.log.Errorw("writing equipment file", "error", err)
		return model.Equipment{}, err
	}
	return *item, nil
}

// Delete removes an item. Assigned equipment cannot be deleted.
func (r *Equipment) Delete(id int) (model.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	equipment, err := r.read()
	if err != nil {
		return model.Equipment{}, err
	}
	for i, e := range equipment {
		if e.ID == id {
			if e.AssignedTo != nil {
				return model.Equipment{}, ErrAssigned
			}
			equipment = append(equipment[:i], equipment[i+1:]...)
			if err := storage.WriteCollection(r.path, equipment); err != nil {
				r.log.Errorw("writing equipment file", "error", err)
				return model.Equipment{}, err
			}
			return e, nil
		}
	}
	return model.Equipment{}, ErrNotFound
}

// DeleteAll wipes the collection; refused while any item is assigned.
func (r *Equipment) DeleteAll() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	equipment, err := r.read()
	if err != nil {
		return 0, err
	}
	for _, e := range equipment {
		if e.AssignedTo != nil {
			return 0, ErrAssigned
		}
	}
	if err := storage.WriteCollection(r.path, []model.Equipment{}); err != nil {
		r.log.Errorw("writing equipment file", "error", err)
		return 0, err
	}
	return len(equipment), nil
}

// BulkItem is one row of a bulk import request.
type BulkItem struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	SerialNumber    string `json:"serialNumber"`
	CLNNumber       string `json:"clnNumber,omitempty"`
	InventoryNumber string `json:"inventoryNumber,omitempty"`
	RoomLocation    string `json:"roomLocation,omitempty"`
	Damaged         bool   `json:"damaged,omitempty"`
}

// BulkSkipped describes a row skipped during bulk import.
type BulkSkipped struct {
	Item   BulkItem `json:"item"`
	Reason string   `json:"reason"`
}

// BulkError describes a row that failed validation.
type BulkError struct {
	Item  BulkItem `json:"item"`
	Error string   `json:"error"`
}

// BulkResults groups the outcome of a bulk import, in input order.
type BulkResults struct {
	Added   []model.Equipment `json:"added"`
	Skipped []BulkSkipped     `json:"skipped"`
	Errors  []BulkError       `json:"errors"`
}

// BulkAdd imports many items with a single file write. Rows with a serial
// number already in storage (or duplicated within the batch) are skipped,
// rows missing required fields are reported as errors; neither aborts the
// batch.
func (r *Equipment) BulkAdd(items []BulkItem) (BulkResults, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	results := BulkResults{
		Added:   []model.Equipment{},
		Skipped: []BulkSkipped{},
		Errors:  []BulkError{},
	}

	equipment, err := r.read()
	if err != nil {
		return results, err
	}
	existingSerials := make(map[string]bool, len(equipment))
	maxID := 0
	for _, e := range equipment {
		existingSerials[e.SerialNumber] = true
		if e.ID > maxID {
			maxID = e.ID
		}
	}

	for _, item := range items {
		if item.Name == "" || item.Type == "" || item.SerialNumber == "" {
			results.Errors = append(results.Errors, BulkError{
				Item:  item,
				Error: "Missing required fields (name, type, serialNumber)",
			})
			continue
		}
		if existingSerials[item.SerialNumber] {
			results.Skipped = append(results.Skipped, BulkSkipped{
				Item:   item,
				Reason: "Duplicate serial number",
			})
			continue
		}

		maxID++
		e := model.Equipment{
			ID:              maxID,
			Name:            item.Name,
			Type:            item.Type,
			SerialNumber:    item.SerialNumber,
			CLNNumber:       item.CLNNumber,
			InventoryNumber: item.InventoryNumber,
			RoomLocation:    item.RoomLocation,
			Status:          "available",
			Damaged:         item.Damaged,
			AssignedTo:      nil,
			LastModified:    time.Now().UTC(),
		}
		equipment = append(equipment, e)
		existingSerials[item.SerialNumber] = true
		results.Added = append(results.Added, e)
		r.log.Infow("bulk import row added", "name", e.Name, "id", e.ID)
	}

	if err := storage.WriteCollection(r.path, equipment); err != nil {
		r.log.Errorw("writing equipment file", "error", err)
		return results, err
	}
	return results, nil
}
