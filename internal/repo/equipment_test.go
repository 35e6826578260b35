package repo

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"magazyn/internal/model"
)

func newEquipmentRepo(t *testing.T) *Equipment {
	t.Helper()
	return NewEquipment(t.TempDir(), zap.NewNop().Sugar())
}

func TestEquipment_CreateStampsIDAndLastModified(t *testing.T) {
	r := newEquipmentRepo(t)

	before := time.Now().UTC()
	created, err := r.Create(model.Equipment{Name: "Dell XPS", Type: model.TypeComputer, SerialNumber: "SN-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.False(t, created.LastModified.Before(before))

	second, err := r.Create(model.Equipment{Name: "LG 27", Type: model.TypeMonitor, SerialNumber: "SN-2"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
}

func TestEquipment_UpdateMergesPartialFields(t *testing.T) {
	r := newEquipmentRepo(t)

	created, err := r.Create(model.Equipment{Name: "Dell", Type: model.TypeComputer, SerialNumber: "SN-1", Notes: "stare"})
	require.NoError(t, err)

	updated, err := r.Update(model.EquipmentUpdate{ID: created.ID, Name: strPtr("Dell XPS 13")})
	require.NoError(t, err)
	assert.Equal(t, "Dell XPS 13", updated.Name)
	assert.Equal(t, "SN-1", updated.SerialNumber, "untouched fields survive")
	assert.Equal(t, "stare", updated.Notes)
}

func TestEquipment_UpdateAssignmentSetsAndClearsDate(t *testing.T) {
	r := newEquipmentRepo(t)

	created, err := r.Create(model.Equipment{Name: "Dell", Type: model.TypeComputer, SerialNumber: "SN-1"})
	require.NoError(t, err)

	assigned, err := r.Update(model.EquipmentUpdate{ID: created.ID, AssignedTo: json.RawMessage(`7`)})
	require.NoError(t, err)
	require.NotNil(t, assigned.AssignedTo)
	assert.Equal(t, 7, *assigned.AssignedTo)
	require.NotNil(t, assigned.AssignedDate)

	// explicit null clears both assignment and date
	cleared, err := r.Update(model.EquipmentUpdate{ID: created.ID, AssignedTo: json.RawMessage(`null`)})
	require.NoError(t, err)
	assert.Nil(t, cleared.AssignedTo)
	assert.Nil(t, cleared.AssignedDate)
}

func TestEquipment_UpdateWithoutAssignedToKeepsAssignment(t *testing.T) {
	r := newEquipmentRepo(t)

	created, err := r.Create(model.Equipment{Name: "Dell", Type: model.TypeComputer, SerialNumber: "SN-1"})
	require.NoError(t, err)
	_, err = r.Update(model.EquipmentUpdate{ID: created.ID, AssignedTo: json.RawMessage(`7`)})
	require.NoError(t, err)

	updated, err := r.Update(model.EquipmentUpdate{ID: created.ID, Notes: strPtr("wymiana baterii")})
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedTo)
	assert.Equal(t, 7, *updated.AssignedTo)
}

func TestEquipment_DeleteRefusedWhileAssigned(t *testing.T) {
	r := newEquipmentRepo(t)

	created, err := r.Create(model.Equipment{Name: "Dell", Type: model.TypeComputer, SerialNumber: "SN-1", AssignedTo: intPtr(7)})
	require.NoError(t, err)

	_, err = r.Delete(created.ID)
	assert.ErrorIs(t, err, ErrAssigned)

	_, err = r.Update(model.EquipmentUpdate{ID: created.ID, AssignedTo: json.RawMessage(`null`)})
	require.NoError(t, err)

	removed, err := r.Delete(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)
}

func TestEquipment_DeleteAllRefusedWhileAnyAssigned(t *testing.T) {
	r := newEquipmentRepo(t)

	_, err := r.Create(model.Equipment{Name: "A", Type: model.TypeMouse, SerialNumber: "SN-A"})
	require.NoError(t, err)
	_, err = r.Create(model.Equipment{Name: "B", Type: model.TypeMouse, SerialNumber: "SN-B", AssignedTo: intPtr(3)})
	require.NoError(t, err)

	_, err = r.DeleteAll()
	assert.ErrorIs(t, err, ErrAssigned)
}

func TestEquipment_HasAssigned(t *testing.T) {
	r := newEquipmentRepo(t)

	_, err := r.Create(model.Equipment{Name: "A", Type: model.TypeMouse, SerialNumber: "SN-A", AssignedTo: intPtr(3)})
	require.NoError(t, err)

	has, err := r.HasAssigned(3)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = r.HasAssigned(4)
	require.NoError(t, err)
	assert.False(t, has)

	any, err := r.HasAnyAssigned()
	require.NoError(t, err)
	assert.True(t, any)
}

func TestEquipment_BulkAdd(t *testing.T) {
	r := newEquipmentRepo(t)

	_, err := r.Create(model.Equipment{Name: "Old", Type: model.TypeComputer, SerialNumber: "DUP"})
	require.NoError(t, err)

	results, err := r.BulkAdd([]BulkItem{
		{Name: "A", Type: model.TypeComputer, SerialNumber: "SN-A", Damaged: true},
		{Name: "B", Type: model.TypeMouse, SerialNumber: "DUP"},
		{Name: "", Type: model.TypeMouse, SerialNumber: "SN-C"},
		{Name: "D", Type: model.TypeMonitor, SerialNumber: "SN-D"},
		{Name: "E", Type: model.TypeMonitor, SerialNumber: "SN-D"}, // duplikat w obrębie partii
	})
	require.NoError(t, err)

	require.Len(t, results.Added, 2)
	assert.Equal(t, "A", results.Added[0].Name)
	assert.Equal(t, "available", results.Added[0].Status)
	assert.True(t, results.Added[0].Damaged)
	assert.Equal(t, "D", results.Added[1].Name)

	require.Len(t, results.Skipped, 2)
	assert.Equal(t, "DUP", results.Skipped[0].Item.SerialNumber)
	assert.Equal(t, "Duplicate serial number", results.Skipped[0].Reason)
	assert.Equal(t, "E", results.Skipped[1].Item.Name)

	require.Len(t, results.Errors, 1)
	assert.Equal(t, "SN-C", results.Errors[0].Item.SerialNumber)

	all, err := r.List()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
