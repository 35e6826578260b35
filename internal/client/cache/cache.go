// Package cache holds the three in-memory snapshots of the client core.
// The cache is an explicit object owned by the service, never package
// state; each slot is either absent (must refetch) or a materialized
// snapshot, and an empty snapshot is a valid, present value.
package cache

import "magazyn/internal/model"

// Cache ma trzy niezależne sloty: users, equipment, history.
type Cache struct {
	users    []model.User
	usersSet bool

	equipment    []model.Equipment
	equipmentSet bool

	history    []model.HistoryRecord
	historySet bool
}

func New() *Cache { return &Cache{} }

// Users returns the snapshot and whether the slot is populated.
func (c *Cache) Users() ([]model.User, bool) { return c.users, c.usersSet }

// SetUsers replaces the snapshot. A nil slice is normalized to empty so
// "present" never reads back as nil.
func (c *Cache) SetUsers(users []model.User) {
	if users == nil {
		users = []model.User{}
	}
	c.users, c.usersSet = users, true
}

// ClearUsers resets the slot to absent.
func (c *Cache) ClearUsers() { c.users, c.usersSet = nil, false }

// Equipment returns the snapshot and whether the slot is populated.
func (c *Cache) Equipment() ([]model.Equipment, bool) { return c.equipment, c.equipmentSet }

func (c *Cache) SetEquipment(equipment []model.Equipment) {
	if equipment == nil {
		equipment = []model.Equipment{}
	}
	c.equipment, c.equipmentSet = equipment, true
}

func (c *Cache) ClearEquipment() { c.equipment, c.equipmentSet = nil, false }

// History returns the snapshot and whether the slot is populated.
func (c *Cache) History() ([]model.HistoryRecord, bool) { return c.history, c.historySet }

func (c *Cache) SetHistory(history []model.HistoryRecord) {
	if history == nil {
		history = []model.HistoryRecord{}
	}
	c.history, c.historySet = history, true
}

func (c *Cache) ClearHistory() { c.history, c.historySet = nil, false }

// ClearAll resets all three slots.
func (c *Cache) ClearAll() {
	c.ClearUsers()
	c.ClearEquipment()
	c.ClearHistory()
}
