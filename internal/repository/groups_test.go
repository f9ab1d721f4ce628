package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thand-io/directory/internal/models"
	"github.com/thand-io/directory/internal/store"
)

func TestGroupsAssignReplaces(t *testing.T) {
	groups := NewGroups(store.NewAdapter(store.NewMemoryBackend()))
	index := groups.Create(models.NewGroup("ops"))

	require.NoError(t, groups.Assign(index, []string{"user1"}))
	require.NoError(t, groups.Assign(index, []string{"user2"}))

	members, err := groups.Members(index)
	require.NoError(t, err)
	assert.Equal(t, []string{"user2"}, members)
}

func TestGroupsAssignCopiesInput(t *testing.T) {
	groups := NewGroups(store.NewAdapter(store.NewMemoryBackend()))
	index := groups.Create(models.NewGroup("ops"))

	selected := []string{"user1", "user2"}
	require.NoError(t, groups.Assign(index, selected))
	selected[0] = "changed"

	members, _ := groups.Members(index)
	assert.Equal(t, []string{"user1", "user2"}, members)
}

func TestGroupsAssignNilClearsMembers(t *testing.T) {
	groups := NewGroups(store.NewAdapter(store.NewMemoryBackend()))
	index := groups.Create(models.Group{Name: "ops", Users: []string{"a"}})

	require.NoError(t, groups.Assign(index, nil))

	group, _ := groups.Get(index)
	assert.NotNil(t, group.Users)
	assert.Empty(t, group.Users)
}

func TestGroupsRemoveMembers(t *testing.T) {
	groups := NewGroups(store.NewAdapter(store.NewMemoryBackend()))
	index := groups.Create(models.Group{Name: "ops", Users: []string{"user1", "user2", "user3"}})

	require.NoError(t, groups.RemoveMembers(index, []string{"user1", "user3"}))
	members, _ := groups.Members(index)
	assert.Equal(t, []string{"user2"}, members)

	require.NoError(t, groups.RemoveMembers(index, nil))
	members, _ = groups.Members(index)
	assert.Equal(t, []string{"user2"}, members)
}

func TestGroupsOutOfRange(t *testing.T) {
	groups := NewGroups(store.NewAdapter(store.NewMemoryBackend()))

	assert.True(t, errors.Is(groups.Assign(0, []string{"a"}), ErrIndexOutOfRange))
	assert.True(t, errors.Is(groups.RemoveMembers(3, []string{"a"}), ErrIndexOutOfRange))

	_, err := groups.Members(1)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
}

func TestGroupsPersistRoundTrip(t *testing.T) {
	adapter := store.NewAdapter(store.NewMemoryBackend())
	groups := NewGroups(adapter)
	groups.Create(models.NewGroup("empty"))
	index := groups.Create(models.NewGroup("ops"))
	require.NoError(t, groups.Assign(index, []string{"user1"}))
	require.NoError(t, groups.Persist())

	reloaded := NewGroups(adapter)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, groups.List(), reloaded.List())
	assert.Equal(t, store.KeyGroups, reloaded.Key())
}

func TestGroupsListCopiesMembers(t *testing.T) {
	groups := NewGroups(store.NewAdapter(store.NewMemoryBackend()))
	index := groups.Create(models.Group{Name: "ops", Users: []string{"user1", "user2"}})

	listed := groups.List()
	listed[0].Users[0] = "changed"

	got, err := groups.Get(index)
	require.NoError(t, err)
	got.Users[1] = "changed"

	members, _ := groups.Members(index)
	assert.Equal(t, []string{"user1", "user2"}, members)
	assert.NotNil(t, groups.List()[0].Users)
}
