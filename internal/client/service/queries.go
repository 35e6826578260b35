package service

import (
	"context"
	"sort"

	"magazyn/internal/model"
)

// EquipmentWithUser is the denormalized equipment view: the record plus
// the resolved holder (nil when unassigned or unresolvable).
type EquipmentWithUser struct {
	model.Equipment
	AssignedUser *model.User `json:"assignedUser"`
}

// EventWithUser is one history event with its user resolved.
type EventWithUser struct {
	model.Event
	User *model.User `json:"user"`
}

// EquipmentRef describes the equipment an event belongs to. For history of
// equipment that was deleted the placeholder descriptor is used.
type EquipmentRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// UserEvent is one entry of a user's cross-equipment timeline.
type UserEvent struct {
	model.Event
	Equipment EquipmentRef `json:"equipment"`
}

// findUser resolves a user id in the snapshot. Returns a copy so callers
// can never mutate the cached array through the pointer.
func findUser(users []model.User, id int) *model.User {
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u
		}
	}
	return nil
}

func resolveAssigned(item model.Equipment, users []model.User) *model.User {
	if item.AssignedTo == nil {
		return nil
	}
	return findUser(users, *item.AssignedTo)
}

// AllEquipment returns every item with its assigned user attached.
func (s *Inventory) AllEquipment(ctx context.Context) []EquipmentWithUser {
	equipment := s.Equipment(ctx)
	users := s.Users(ctx)

	out := make([]EquipmentWithUser, 0, len(equipment))
	for _, item := range equipment {
		out = append(out, EquipmentWithUser{
			Equipment:    item,
			AssignedUser: resolveAssigned(item, users),
		})
	}
	return out
}

// EquipmentByUser returns the items currently assigned to userID.
func (s *Inventory) EquipmentByUser(ctx context.Context, userID int) []EquipmentWithUser {
	equipment := s.Equipment(ctx)
	users := s.Users(ctx)

	out := []EquipmentWithUser{}
	for _, item := range equipment {
		if item.AssignedTo == nil || *item.AssignedTo != userID {
			continue
		}
		out = append(out, EquipmentWithUser{
			Equipment:    item,
			AssignedUser: resolveAssigned(item, users),
		})
	}
	return out
}

// AvailableEquipment returns the items not assigned to anyone.
func (s *Inventory) AvailableEquipment(ctx context.Context) []model.Equipment {
	equipment := s.Equipment(ctx)

	out := []model.Equipment{}
	for _, item := range equipment {
		if item.AssignedTo == nil || *item.AssignedTo == 0 {
			out = append(out, item)
		}
	}
	return out
}

// EquipmentHistory returns the event log of one item, users resolved,
// newest first. Unknown equipment yields an empty sequence.
func (s *Inventory) EquipmentHistory(ctx context.Context, equipmentID int) []EventWithUser {
	history := s.History(ctx)
	users := s.Users(ctx)

	var record *model.HistoryRecord
	for i := range history {
		if history[i].EquipmentID == equipmentID {
			record = &history[i]
			break
		}
	}
	if record == nil {
		return []EventWithUser{}
	}

	out := make([]EventWithUser, 0, len(record.Events))
	for _, event := range record.Events {
		var user *model.User
		if event.UserID != nil {
			user = findUser(users, *event.UserID)
		}
		out = append(out, EventWithUser{Event: event, User: user})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// UserHistory reconstructs a user's timeline by replaying every
// equipment's event log. An event belongs to the user when it is an
// "assigned" event naming them, or an "unassigned" event whose nearest
// preceding "assigned" event in the same record names them. The backward
// scan is quadratic in the worst case, which is fine at these volumes.
func (s *Inventory) UserHistory(ctx context.Context, userID int) []UserEvent {
	history := s.History(ctx)
	equipment := s.Equipment(ctx)

	userEvents := []UserEvent{}
	for _, record := range history {
		ref := EquipmentRef{ID: record.EquipmentID, Name: "Nieznany sprzęt", Type: "Nieznany"}
		for _, item := range equipment {
			if item.ID == record.EquipmentID {
				ref = EquipmentRef{ID: item.ID, Name: item.Name, Type: item.Type}
				break
			}
		}

		for i, event := range record.Events {
			include := false
			switch {
			case event.Action == model.ActionAssigned && event.UserID != nil && *event.UserID == userID:
				include = true
			case event.Action == model.ActionUnassigned:
				// The nearest preceding "assigned" event tells who held
				// the item when it was returned.
				for j := i - 1; j >= 0; j-- {
					if record.Events[j].Action == model.ActionAssigned {
						if record.Events[j].UserID != nil && *record.Events[j].UserID == userID {
							include = true
						}
						break
					}
				}
			}
			if include {
				userEvents = append(userEvents, UserEvent{Event: event, Equipment: ref})
			}
		}
	}

	sort.SliceStable(userEvents, func(i, j int) bool {
		return userEvents[i].Date.After(userEvents[j].Date)
	})
	return userEvents
}
