package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"magazyn/internal/client/api"
	"magazyn/internal/model"
)

// Polskie notatki zapisywane do historii.
const (
	noteAddedManually  = "Dodano do magazynu (Ręcznie)"
	noteAddedDamaged   = "Dodano jako uszkodzone"
	noteAddedCSV       = "Dodano do magazynu (import CSV)"
	noteDamagedCSV     = "Dodano jako uszkodzone (import CSV)"
	noteDeleted        = "Usunięto z magazynu"
	noteMarkedDamaged  = "Oznaczono jako uszkodzone"
	noteMarkedRepaired = "Oznaczono jako naprawione"
)

// historyEntry is the POST /history request body; the server stamps date.
type historyEntry struct {
	EquipmentID int    `json:"equipmentId"`
	Action      string `json:"action"`
	UserID      *int   `json:"userId"`
	Note        string `json:"note"`
}

// updateAssignment patches assignedTo, appends one history event and
// invalidates the equipment and history slots. Reports success as a bool;
// errors stop at this boundary.
func (s *Inventory) updateAssignment(ctx context.Context, equipmentID int, userID *int, action, note string) bool {
	payload := map[string]any{"id": equipmentID, "assignedTo": userID}
	if err := s.api.Put(ctx, api.EndpointEquipment, payload, nil); err != nil {
		s.log.Errorw("error updating equipment assignment", "action", action, "error", err)
		return false
	}
	entry := historyEntry{EquipmentID: equipmentID, Action: action, UserID: userID, Note: note}
	if err := s.api.Post(ctx, api.EndpointHistory, entry, nil); err != nil {
		s.log.Errorw("error updating equipment assignment", "action", action, "error", err)
		return false
	}

	s.cache.ClearEquipment()
	s.cache.ClearHistory()
	return true
}

// AssignEquipment hands the item to the user.
func (s *Inventory) AssignEquipment(ctx context.Context, equipmentID, userID int, note string) bool {
	return s.updateAssignment(ctx, equipmentID, &userID, model.ActionAssigned, note)
}

// UnassignEquipment returns the item to the pool. The event's userId is
// written as null; the previous holder stays recoverable only from the
// preceding "assigned" event.
func (s *Inventory) UnassignEquipment(ctx context.Context, equipmentID int, note string) bool {
	found := false
	for _, item := range s.Equipment(ctx) {
		if item.ID == equipmentID {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	return s.updateAssignment(ctx, equipmentID, nil, model.ActionUnassigned, note)
}

// AddUser creates a user and invalidates only the users slot.
func (s *Inventory) AddUser(ctx context.Context, name, email string) bool {
	payload := map[string]string{
		"name":  strings.TrimSpace(name),
		"email": strings.TrimSpace(email),
	}
	if err := s.api.Post(ctx, api.EndpointUsers, payload, nil); err != nil {
		s.log.Errorw("error adding user", "error", err)
		return false
	}
	s.cache.ClearUsers()
	return true
}

// DeleteUser removes a user; the collaborator rejects it while the user
// still holds equipment.
func (s *Inventory) DeleteUser(ctx context.Context, userID int) error {
	if err := s.api.Delete(ctx, api.EndpointUsers, map[string]int{"id": userID}, nil); err != nil {
		s.log.Errorw("error deleting user", "error", err)
		return err
	}
	s.cache.ClearUsers()
	return nil
}

// AddEquipment creates one item and records it in the history. Equipment
// created damaged gets two events: "added" then "damaged".
func (s *Inventory) AddEquipment(ctx context.Context, name, equipmentType, serialNumber, clnNumber, inventoryNumber, roomLocation string, damaged bool) bool {
	payload := map[string]any{
		"name":         strings.TrimSpace(name),
		"type":         equipmentType,
		"serialNumber": strings.TrimSpace(serialNumber),
	}
	if equipmentType == model.TypeComputer && clnNumber != "" {
		payload["clnNumber"] = strings.TrimSpace(clnNumber)
	}
	if strings.TrimSpace(inventoryNumber) != "" {
		payload["inventoryNumber"] = strings.TrimSpace(inventoryNumber)
	}
	if (equipmentType == model.TypeMonitor || equipmentType == model.TypePrinter) &&
		strings.TrimSpace(roomLocation) != "" {
		payload["roomLocation"] = strings.TrimSpace(roomLocation)
	}
	if damaged {
		payload["damaged"] = true
	}

	var created model.Equipment
	if err := s.api.Post(ctx, api.EndpointEquipment, payload, &created); err != nil {
		s.log.Errorw("error adding equipment", "error", err)
		return false
	}

	entry := historyEntry{EquipmentID: created.ID, Action: model.ActionAdded, Note: noteAddedManually}
	if err := s.api.Post(ctx, api.EndpointHistory, entry, nil); err != nil {
		s.log.Errorw("error adding equipment", "error", err)
		return false
	}
	if damaged {
		entry := historyEntry{EquipmentID: created.ID, Action: model.ActionDamaged, Note: noteAddedDamaged}
		if err := s.api.Post(ctx, api.EndpointHistory, entry, nil); err != nil {
			s.log.Errorw("error adding equipment", "error", err)
			return false
		}
	}

	s.cache.ClearEquipment()
	s.cache.ClearHistory()
	return true
}

// BulkItem is one row of a bulk import.
type BulkItem struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	SerialNumber    string `json:"serialNumber"`
	CLNNumber       string `json:"clnNumber,omitempty"`
	InventoryNumber string `json:"inventoryNumber,omitempty"`
	RoomLocation    string `json:"roomLocation,omitempty"`
	Damaged         bool   `json:"damaged,omitempty"`
}

// BulkSkipped is one row the collaborator skipped during a bulk import.
type BulkSkipped struct {
	Item   BulkItem `json:"item"`
	Reason string   `json:"reason"`
}

// BulkError is one row that failed the collaborator's validation.
type BulkError struct {
	Item  BulkItem `json:"item"`
	Error string   `json:"error"`
}

// BulkResults groups the per-row outcome of a bulk import, in input order.
type BulkResults struct {
	Added   []model.Equipment `json:"added"`
	Skipped []BulkSkipped     `json:"skipped"`
	Errors  []BulkError       `json:"errors"`
}

// BulkSummary counts the rows of a bulk import by outcome.
type BulkSummary struct {
	Total   int `json:"total"`
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// BulkResponse is the collaborator's bulk import outcome.
type BulkResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Results BulkResults `json:"results"`
	Summary BulkSummary `json:"summary"`
}

// BulkAddEquipment delegates the whole batch to the collaborator in one
// call, then appends history events per created item. History failures for
// single items are logged and skipped, never aborting the batch.
func (s *Inventory) BulkAddEquipment(ctx context.Context, items []BulkItem) (*BulkResponse, error) {
	s.log.Infow("bulk import: wysyłanie pozycji do API", "items", len(items))

	var resp BulkResponse
	if err := s.api.Post(ctx, api.EndpointEquipmentBulk, map[string]any{"items": items}, &resp); err != nil {
		s.log.Errorw("error in bulk add equipment", "error", err)
		return nil, err
	}

	// Zakładamy, że kolejność odpowiedzi odpowiada kolejności wejścia.
	for i, added := range resp.Results.Added {
		entry := historyEntry{EquipmentID: added.ID, Action: model.ActionAdded, Note: noteAddedCSV}
		if err := s.api.Post(ctx, api.EndpointHistory, entry, nil); err != nil {
			s.log.Errorw("błąd dodawania do historii dla sprzętu", "equipmentId", added.ID, "error", err)
			continue
		}
		if i < len(items) && items[i].Damaged {
			entry := historyEntry{EquipmentID: added.ID, Action: model.ActionDamaged, Note: noteDamagedCSV}
			if err := s.api.Post(ctx, api.EndpointHistory, entry, nil); err != nil {
				s.log.Errorw("błąd dodawania do historii dla sprzętu", "equipmentId", added.ID, "error", err)
			}
		}
	}

	s.cache.ClearEquipment()
	s.cache.ClearHistory()

	s.log.Infow("bulk import: zakończono pomyślnie", "summary", resp.Summary)
	return &resp, nil
}

// DeleteEquipment removes an item; the collaborator rejects assigned
// equipment, no pre-check happens here.
func (s *Inventory) DeleteEquipment(ctx context.Context, equipmentID int) error {
	if err := s.api.Delete(ctx, api.EndpointEquipment, map[string]int{"id": equipmentID}, nil); err != nil {
		s.log.Errorw("error deleting equipment", "error", err)
		return err
	}
	entry := historyEntry{EquipmentID: equipmentID, Action: model.ActionDeleted, Note: noteDeleted}
	if err := s.api.Post(ctx, api.EndpointHistory, entry, nil); err != nil {
		s.log.Errorw("error deleting equipment", "error", err)
		return err
	}

	s.cache.ClearEquipment()
	s.cache.ClearHistory()
	return nil
}

// UpdateEquipmentDamageStatus flips the damaged flag and records a
// "damaged" or "repaired" event with the supplied or default note.
func (s *Inventory) UpdateEquipmentDamageStatus(ctx context.Context, equipmentID int, damaged bool, userID *int, note string) bool {
	payload := map[string]any{"id": equipmentID, "damaged": damaged}
	if err := s.api.Put(ctx, api.EndpointEquipment, payload, nil); err != nil {
		s.log.Errorw("error updating equipment damage status", "error", err)
		return false
	}

	action := model.ActionRepaired
	defaultNote := noteMarkedRepaired
	if damaged {
		action = model.ActionDamaged
		defaultNote = noteMarkedDamaged
	}
	if note == "" {
		note = defaultNote
	}
	entry := historyEntry{EquipmentID: equipmentID, Action: action, UserID: userID, Note: note}
	if err := s.api.Post(ctx, api.EndpointHistory, entry, nil); err != nil {
		s.log.Errorw("error updating equipment damage status", "error", err)
		return false
	}

	s.cache.ClearEquipment()
	s.cache.ClearHistory()
	return true
}

// GenerateNextCLNNumber proposes the next computer inventory tag: the
// highest numeric CLN suffix among computers plus one, 6-digit padded.
// Malformed tags are ignored; with no valid tag at all it starts over.
func (s *Inventory) GenerateNextCLNNumber(ctx context.Context) string {
	const first = "CLN000001"

	maxNumber := -1
	for _, item := range s.Equipment(ctx) {
		if item.Type != model.TypeComputer || item.CLNNumber == "" {
			continue
		}
		if !strings.HasPrefix(item.CLNNumber, "CLN") {
			continue
		}
		n, err := strconv.Atoi(item.CLNNumber[3:])
		if err != nil {
			continue
		}
		if n > maxNumber {
			maxNumber = n
		}
	}
	if maxNumber < 0 {
		return first
	}
	return fmt.Sprintf("CLN%06d", maxNumber+1)
}
