package model

import (
	"encoding/json"
	"time"
)

// Nazwy typów sprzętu używane w całej aplikacji (wartości pola "type").
const (
	TypeComputer       = "Komputer"
	TypePrinter        = "Drukarka"
	TypeMonitor        = "Monitor"
	TypeMouse          = "Myszka"
	TypePowerSupply    = "Zasilacz"
	TypeDockingStation = "Stacja dokująca"
	TypeYubiKey        = "YubiKey"
)

// History event actions. Events are append-only and never edited.
const (
	ActionAdded      = "added"
	ActionAssigned   = "assigned"
	ActionUnassigned = "unassigned"
	ActionDamaged    = "damaged"
	ActionRepaired   = "repaired"
	ActionDeleted    = "deleted"
)

// User — osoba, której można przypisać sprzęt.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Equipment — pojedyncza pozycja magazynowa.
type Equipment struct {
	ID              int        `json:"id"`
	Name            string     `json:"name"`
	Type            string     `json:"type"`
	SerialNumber    string     `json:"serialNumber"`
	CLNNumber       string     `json:"clnNumber,omitempty"`
	InventoryNumber string     `json:"inventoryNumber,omitempty"`
	RoomLocation    string     `json:"roomLocation,omitempty"`
	Status          string     `json:"status,omitempty"`
	Damaged         bool       `json:"damaged,omitempty"`
	AssignedTo      *int       `json:"assignedTo"`
	AssignedDate    *time.Time `json:"assignedDate,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	LastModified    time.Time  `json:"lastModified"`
}

// EquipmentUpdate is a partial update sent via PUT /api/equipment.
// Pointer fields distinguish "absent" from "set"; AssignedTo is raw JSON so
// an explicit null (unassign) can be told apart from a missing key.
type EquipmentUpdate struct {
	ID              int             `json:"id"`
	Name            *string         `json:"name"`
	Type            *string         `json:"type"`
	SerialNumber    *string         `json:"serialNumber"`
	CLNNumber       *string         `json:"clnNumber"`
	InventoryNumber *string         `json:"inventoryNumber"`
	RoomLocation    *string         `json:"roomLocation"`
	Notes           *string         `json:"notes"`
	Damaged         *bool           `json:"damaged"`
	AssignedTo      json.RawMessage `json:"assignedTo,omitempty"`
}

// Event — jedno zdarzenie w historii sprzętu. Date stempluje serwer.
type Event struct {
	EquipmentID int       `json:"equipmentId"`
	Action      string    `json:"action"`
	UserID      *int      `json:"userId"`
	Note        string    `json:"note"`
	Date        time.Time `json:"date"`
}

// HistoryRecord groups the ordered events of a single equipment item.
// Insertion order is chronological order.
type HistoryRecord struct {
	EquipmentID int     `json:"equipmentId"`
	Events      []Event `json:"events"`
}

// Category — kategoria dokumentów.
type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedDate time.Time `json:"createdDate"`
}

// Document — metadane wgranego pliku; sam plik leży na dysku pod Filename.
type Document struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Filename    string    `json:"filename"`
	Size        string    `json:"size"`
	Type        string    `json:"type"`
	CategoryID  int       `json:"categoryId"`
	UploadDate  time.Time `json:"uploadDate"`
	Description string    `json:"description"`
}
