// Package service is the data-access core of the client: it joins the
// collections fetched from the persistence collaborator into denormalized
// views, keeps one cached snapshot per collection, and performs mutations
// followed by cache invalidation.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"magazyn/internal/client/api"
	"magazyn/internal/client/cache"
	"magazyn/internal/model"
)

// Inventory is the client core. All read paths absorb collaborator
// failures into empty snapshots; mutation paths report failure as a value
// and never panic across this boundary.
type Inventory struct {
	api   *api.Client
	cache *cache.Cache
	log   *zap.SugaredLogger
}

func NewInventory(client *api.Client, c *cache.Cache, logger *zap.SugaredLogger) *Inventory {
	return &Inventory{api: client, cache: c, log: logger}
}

// loadUsers fetches the collection and populates the slot. On failure the
// slot is set to the empty snapshot, not left absent: repeated reads during
// an outage must not storm the collaborator. Only an explicit clear or
// refresh retries.
func (s *Inventory) loadUsers(ctx context.Context) []model.User {
	users := []model.User{}
	if err := s.api.Get(ctx, api.EndpointUsers, &users); err != nil {
		s.log.Errorw("błąd podczas ładowania użytkowników", "error", err)
		s.cache.SetUsers([]model.User{})
		return []model.User{}
	}
	s.cache.SetUsers(users)
	return users
}

func (s *Inventory) loadEquipment(ctx context.Context) []model.Equipment {
	equipment := []model.Equipment{}
	if err := s.api.Get(ctx, api.EndpointEquipment, &equipment); err != nil {
		s.log.Errorw("błąd podczas ładowania sprzętu", "error", err)
		s.cache.SetEquipment([]model.Equipment{})
		return []model.Equipment{}
	}
	s.cache.SetEquipment(equipment)
	return equipment
}

func (s *Inventory) loadHistory(ctx context.Context) []model.HistoryRecord {
	history := []model.HistoryRecord{}
	if err := s.api.Get(ctx, api.EndpointHistory, &history); err != nil {
		s.log.Errorw("błąd podczas ładowania historii", "error", err)
		s.cache.SetHistory([]model.HistoryRecord{})
		return []model.HistoryRecord{}
	}
	s.cache.SetHistory(history)
	return history
}

// Users returns the cached snapshot, fetching it on first use.
func (s *Inventory) Users(ctx context.Context) []model.User {
	if users, ok := s.cache.Users(); ok {
		return users
	}
	return s.loadUsers(ctx)
}

// Equipment returns the cached snapshot, fetching it on first use.
func (s *Inventory) Equipment(ctx context.Context) []model.Equipment {
	if equipment, ok := s.cache.Equipment(); ok {
		return equipment
	}
	return s.loadEquipment(ctx)
}

// History returns the cached snapshot, fetching it on first use.
func (s *Inventory) History(ctx context.Context) []model.HistoryRecord {
	if history, ok := s.cache.History(); ok {
		return history
	}
	return s.loadHistory(ctx)
}

// ClearEquipmentCache invalidates only the equipment slot.
func (s *Inventory) ClearEquipmentCache() {
	s.cache.ClearEquipment()
}

// ForceRefreshAllData clears all three slots and reloads them in parallel.
func (s *Inventory) ForceRefreshAllData(ctx context.Context) {
	s.log.Infow("wymuszanie odświeżenia wszystkich cache'ów")
	s.cache.ClearAll()

	// Each loader writes only its own slot; Wait orders the writes before
	// any subsequent read.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { s.loadUsers(gctx); return nil })
	g.Go(func() error { s.loadEquipment(gctx); return nil })
	g.Go(func() error { s.loadHistory(gctx); return nil })
	_ = g.Wait() // loaders absorb their own errors
}

// Polskie nazwy miesięcy w dopełniaczu, do dat w UI.
var polishMonths = [...]string{
	"stycznia", "lutego", "marca", "kwietnia", "maja", "czerwca",
	"lipca", "sierpnia", "września", "października", "listopada", "grudnia",
}

// FormatDate renders a timestamp the way the UI shows it, e.g. "7 maja 2024".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), polishMonths[t.Month()-1], t.Year())
}
