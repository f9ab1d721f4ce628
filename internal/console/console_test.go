package console

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thand-io/directory/internal/common"
	"github.com/thand-io/directory/internal/modal"
	"github.com/thand-io/directory/internal/models"
	"github.com/thand-io/directory/internal/notify"
	"github.com/thand-io/directory/internal/repository"
	"github.com/thand-io/directory/internal/store"
	"github.com/thand-io/directory/internal/testing/mocks"
)

type fixture struct {
	console *Console
	adapter *store.Adapter
	backend *mocks.FlakyBackend
	clock   *mocks.ManualScheduler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	backend := mocks.NewFlakyBackend()
	adapter := store.NewAdapter(backend)
	clock := mocks.NewManualScheduler()

	c := New(adapter,
		WithToaster(notify.NewToaster(notify.WithToastScheduler(clock))),
		WithMessages(notify.NewMessages(notify.WithMessageScheduler(clock))),
	)
	require.NoError(t, c.Load())

	return &fixture{console: c, adapter: adapter, backend: backend, clock: clock}
}

func (f *fixture) toasts() []string {
	messages := []string{}
	for _, toast := range f.console.Toaster().Active() {
		messages = append(messages, toast.Message)
	}
	return messages
}

func (f *fixture) storedUsers(t *testing.T) []models.User {
	t.Helper()
	users, err := store.LoadCollection[models.User](f.adapter, store.KeyUsers)
	require.NoError(t, err)
	return users
}

func (f *fixture) storedGroups(t *testing.T) []models.Group {
	t.Helper()
	groups, err := store.LoadCollection[models.Group](f.adapter, store.KeyGroups)
	require.NoError(t, err)
	return groups
}

func (f *fixture) addUser(t *testing.T, user models.User) {
	t.Helper()
	require.NoError(t, f.console.Add(SectionUsers))
	for _, field := range user.Fields() {
		require.NoError(t, f.console.SetField(SectionUsers, field.Name, field.Value))
	}
	_, err := f.console.Submit(SectionUsers)
	require.NoError(t, err)
}

func (f *fixture) addGroup(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, f.console.Add(SectionGroups))
	require.NoError(t, f.console.SetField(SectionGroups, models.GroupFieldName, name))
	_, err := f.console.Submit(SectionGroups)
	require.NoError(t, err)
}

func testUser(name string) models.User {
	return models.User{Username: name, Email: name + "@example.com", FirstName: "Test", LastName: "User"}
}

func yes(string) (bool, error) { return true, nil }
func no(string) (bool, error)  { return false, nil }

func TestParseSection(t *testing.T) {
	tests := []struct {
		input   string
		want    Section
		wantErr bool
	}{
		{"users", SectionUsers, false},
		{" Groups ", SectionGroups, false},
		{"ROLES", SectionRoles, false},
		{"teams", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSection(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownSection))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateUserFlow(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, testUser("existing"))

	f.addUser(t, models.User{Username: "testuser", Email: "test@example.com", FirstName: "Test", LastName: "User"})

	stored := f.storedUsers(t)
	require.Len(t, stored, 2)
	assert.Equal(t, "testuser", stored[1].Username)

	tbl, err := f.console.Open(SectionUsers)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "testuser", tbl.Rows[1].Cells[0])

	assert.Contains(t, f.toasts(), "User added successfully!")
	assert.Nil(t, f.console.View().Modal)
}

func TestEditUserFlow(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, testUser("first"))
	f.addUser(t, testUser("second"))

	require.NoError(t, f.console.Edit(SectionUsers, 0))

	view := f.console.View()
	require.NotNil(t, view.Modal)
	assert.True(t, view.Modal.ShowUpdate)
	assert.False(t, view.Modal.ShowSave)
	assert.Equal(t, "Update User", view.Modal.Title)
	assert.Equal(t, "first", common.FieldValue(view.Modal.Fields, models.UserFieldUsername))

	require.NoError(t, f.console.SetField(SectionUsers, models.UserFieldUsername, "update"))
	outcome, err := f.console.Submit(SectionUsers)
	require.NoError(t, err)
	assert.Equal(t, modal.OpUpdated, outcome.Op)

	stored := f.storedUsers(t)
	require.Len(t, stored, 2)
	assert.Equal(t, "update", stored[0].Username)
	assert.Contains(t, f.toasts(), "User updated successfully!")
}

func TestValidationShowsMessageAndWritesNothing(t *testing.T) {
	f := newFixture(t)
	writes := f.backend.WriteCount()

	require.NoError(t, f.console.Add(SectionUsers))
	require.NoError(t, f.console.SetField(SectionUsers, models.UserFieldUsername, "   "))

	_, err := f.console.Submit(SectionUsers)
	var validationErr *common.ValidationError
	require.True(t, errors.As(err, &validationErr))

	view := f.console.View()
	require.NotNil(t, view.Modal)
	assert.Equal(t, "username is required and cannot be empty or contain only spaces.", view.Message)
	assert.Equal(t, writes, f.backend.WriteCount())
	assert.Empty(t, f.toasts())

	f.clock.Advance(3 * time.Second)
	assert.Empty(t, f.console.View().Message)
}

func TestValidationLeadingSpace(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.console.Add(SectionUsers))
	user := testUser("x")
	user.Email = " x@example.com"
	for _, field := range user.Fields() {
		require.NoError(t, f.console.SetField(SectionUsers, field.Name, field.Value))
	}

	_, err := f.console.Submit(SectionUsers)
	require.Error(t, err)
	assert.Equal(t, "email should not start with a space.", f.console.View().Message)
}

func TestRoleValidationAllowsLeadingSpaceAndTrims(t *testing.T) {
	f := newFixture(t)
	_, err := f.console.Open(SectionRoles)
	require.NoError(t, err)

	require.NoError(t, f.console.Add(SectionRoles))
	require.NoError(t, f.console.SetField(SectionRoles, models.RoleFieldName, " admin "))
	_, err = f.console.Submit(SectionRoles)
	require.Error(t, err)
	assert.Equal(t, "role-description is required and cannot be empty or contain only spaces.", f.console.View().Message)

	require.NoError(t, f.console.SetField(SectionRoles, models.RoleFieldDescription, "Full access"))
	_, err = f.console.Submit(SectionRoles)
	require.NoError(t, err)

	roles := f.console.Roles()
	require.Len(t, roles, 1)
	assert.Equal(t, "admin", roles[0].Name)
	assert.Contains(t, f.toasts(), "Role added successfully!")
}

func TestNewerMessageSurvivesEarlierClear(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.console.Add(SectionUsers))

	_, err := f.console.Submit(SectionUsers)
	require.Error(t, err)

	f.clock.Advance(2 * time.Second)
	require.NoError(t, f.console.SetField(SectionUsers, models.UserFieldUsername, "ok"))
	_, err = f.console.Submit(SectionUsers)
	require.Error(t, err)

	f.clock.Advance(time.Second)
	assert.Equal(t, "email is required and cannot be empty or contain only spaces.", f.console.View().Message)
}

func TestUpdateWithoutEditSessionCreatesNothing(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, testUser("a"))

	_, err := f.console.Update(SectionUsers)
	assert.True(t, errors.Is(err, modal.ErrNoEditSession))
	assert.Len(t, f.console.Users(), 1)
}

func TestDeleteGating(t *testing.T) {
	t.Run("decline is a no-op", func(t *testing.T) {
		f := newFixture(t)
		f.addUser(t, testUser("a"))
		writes := f.backend.WriteCount()

		deleted, err := f.console.Delete(SectionUsers, 0, ConfirmFunc(no))
		require.NoError(t, err)
		assert.False(t, deleted)
		assert.Len(t, f.console.Users(), 1)
		assert.Equal(t, writes, f.backend.WriteCount())
	})

	t.Run("confirm removes and shifts", func(t *testing.T) {
		f := newFixture(t)
		f.addUser(t, testUser("a"))
		f.addUser(t, testUser("b"))
		f.addUser(t, testUser("c"))

		var prompt string
		deleted, err := f.console.Delete(SectionUsers, 1, ConfirmFunc(func(p string) (bool, error) {
			prompt = p
			return true, nil
		}))
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Equal(t, "Are you sure you want to delete this user?", prompt)

		assert.Equal(t, []string{"a", "c"}, models.Usernames(f.storedUsers(t)))
		assert.Contains(t, f.toasts(), "User deleted successfully!")
	})

	t.Run("stale index is reported", func(t *testing.T) {
		f := newFixture(t)
		f.addUser(t, testUser("a"))
		f.addUser(t, testUser("b"))

		pending, err := f.console.RequestDelete(SectionUsers, 1)
		require.NoError(t, err)

		_, err = f.console.Delete(SectionUsers, 0, ConfirmFunc(yes))
		require.NoError(t, err)

		err = pending.Confirm()
		assert.True(t, errors.Is(err, repository.ErrIndexOutOfRange))
		assert.Equal(t, []string{"b"}, models.Usernames(f.console.Users()))
		assert.Contains(t, f.toasts(), "The selected user no longer exists.")
	})

	t.Run("request out of range", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.console.RequestDelete(SectionRoles, 0)
		assert.True(t, errors.Is(err, repository.ErrIndexOutOfRange))
	})

	t.Run("confirmer error declines", func(t *testing.T) {
		f := newFixture(t)
		f.addUser(t, testUser("a"))

		boom := errors.New("interrupted")
		deleted, err := f.console.Delete(SectionUsers, 0, ConfirmFunc(func(string) (bool, error) {
			return false, boom
		}))
		assert.ErrorIs(t, err, boom)
		assert.False(t, deleted)
		assert.Len(t, f.console.Users(), 1)
	})
}

func TestDeleteClosesEditSession(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, testUser("a"))
	f.addUser(t, testUser("b"))

	require.NoError(t, f.console.Edit(SectionUsers, 1))
	_, err := f.console.Delete(SectionUsers, 0, ConfirmFunc(yes))
	require.NoError(t, err)

	assert.Nil(t, f.console.View().Modal)
}

func TestGroupPrompts(t *testing.T) {
	f := newFixture(t)
	f.addGroup(t, "ops")

	pending, err := f.console.RequestDelete(SectionGroups, 0)
	require.NoError(t, err)
	assert.Equal(t, "Are you sure you want to delete this group?", pending.Prompt())
	pending.Decline()
	assert.NoError(t, pending.Confirm())
	assert.Len(t, f.console.Groups(), 1)
}

func TestGroupCreateTrimsAndStartsEmpty(t *testing.T) {
	f := newFixture(t)
	f.addGroup(t, "  ops  ")

	groups := f.storedGroups(t)
	require.Len(t, groups, 1)
	assert.Equal(t, "ops", groups[0].Name)
	assert.NotNil(t, groups[0].Users)
	assert.Empty(t, groups[0].Users)

	tbl, err := f.console.Table(SectionGroups)
	require.NoError(t, err)
	assert.Equal(t, "No users assigned", tbl.Rows[0].Cells[1])
	assert.Contains(t, f.toasts(), "Group created successfully!")
}

func TestGroupRenameKeepsMembers(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, testUser("user1"))
	f.addGroup(t, "ops")

	picker, err := f.console.OpenAssign(0)
	require.NoError(t, err)
	picker.Select("user1")
	require.NoError(t, picker.Save())

	require.NoError(t, f.console.Edit(SectionGroups, 0))
	require.NoError(t, f.console.SetField(SectionGroups, models.GroupFieldName, "platform"))
	_, err = f.console.Submit(SectionGroups)
	require.NoError(t, err)

	groups := f.storedGroups(t)
	assert.Equal(t, "platform", groups[0].Name)
	assert.Equal(t, []string{"user1"}, groups[0].Users)
}

func TestAssignReplacesMembers(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, testUser("user1"))
	f.addUser(t, testUser("user2"))
	f.addGroup(t, "ops")

	picker, err := f.console.OpenAssign(0)
	require.NoError(t, err)
	assert.Equal(t, []PickerOption{{Value: "user1"}, {Value: "user2"}}, picker.Options())
	require.True(t, picker.Toggle(0))
	require.NoError(t, picker.Save())

	picker, err = f.console.OpenAssign(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"user1"}, picker.Selected())
	picker.Select("user2")
	require.NoError(t, picker.Save())

	assert.Equal(t, []string{"user2"}, f.storedGroups(t)[0].Users)
	assert.Contains(t, f.toasts(), "Users assigned successfully!")
}

func TestRemoveMembers(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"user1", "user2", "user3"} {
		f.addUser(t, testUser(name))
	}
	f.addGroup(t, "ops")

	picker, err := f.console.OpenAssign(0)
	require.NoError(t, err)
	picker.Select("user1", "user2", "user3")
	require.NoError(t, picker.Save())

	picker, err = f.console.OpenRemoveMembers(0)
	require.NoError(t, err)
	assert.Equal(t, "Remove Users from ops", picker.Title())
	assert.Empty(t, picker.Selected())
	picker.Select("user1", "user3")
	require.NoError(t, picker.Save())

	assert.Equal(t, []string{"user2"}, f.storedGroups(t)[0].Users)
	assert.Contains(t, f.toasts(), "Users removed successfully!")
}

func TestRemoveMembersWithNothingSelectedRepersists(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, testUser("user1"))
	f.addGroup(t, "ops")

	picker, err := f.console.OpenAssign(0)
	require.NoError(t, err)
	picker.Select("user1")
	require.NoError(t, picker.Save())

	before := f.storedGroups(t)
	writes := f.backend.WriteCount()

	picker, err = f.console.OpenRemoveMembers(0)
	require.NoError(t, err)
	require.NoError(t, picker.Save())

	assert.Equal(t, writes+1, f.backend.WriteCount())
	assert.Equal(t, before, f.storedGroups(t))
}

func TestPickerCancel(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, testUser("user1"))
	f.addGroup(t, "ops")
	_, err := f.console.Open(SectionGroups)
	require.NoError(t, err)

	picker, err := f.console.OpenAssign(0)
	require.NoError(t, err)
	require.NotNil(t, f.console.View().Picker)

	picker.Select("user1")
	picker.Cancel()

	assert.Nil(t, f.console.View().Picker)
	assert.Empty(t, f.console.Groups()[0].Users)
	assert.NoError(t, picker.Save())
	assert.Empty(t, f.console.Groups()[0].Users)
}

func TestDeletedUserStaysInGroup(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, testUser("user1"))
	f.addGroup(t, "ops")

	picker, err := f.console.OpenAssign(0)
	require.NoError(t, err)
	picker.Select("user1")
	require.NoError(t, picker.Save())

	_, err = f.console.Delete(SectionUsers, 0, ConfirmFunc(yes))
	require.NoError(t, err)

	assert.Equal(t, []string{"user1"}, f.console.Groups()[0].Users)
}

func TestStoreFailureIsToasted(t *testing.T) {
	f := newFixture(t)
	f.backend.FailWrites(true)

	require.NoError(t, f.console.Add(SectionUsers))
	for _, field := range testUser("a").Fields() {
		require.NoError(t, f.console.SetField(SectionUsers, field.Name, field.Value))
	}

	outcome, err := f.console.Submit(SectionUsers)
	assert.True(t, errors.Is(err, store.ErrStoreUnavailable))
	assert.Equal(t, modal.OpCreated, outcome.Op)

	// Memory stays usable.
	assert.Len(t, f.console.Users(), 1)
	assert.Nil(t, f.console.View().Modal)

	toasts := f.console.Toaster().Active()
	require.Len(t, toasts, 1)
	assert.Equal(t, notify.LevelError, toasts[0].Level)
	assert.Contains(t, toasts[0].Message, "Failed to save users:")
}

func TestLoadFailureIsToasted(t *testing.T) {
	backend := mocks.NewFlakyBackend()
	backend.FailReads(true)
	clock := mocks.NewManualScheduler()

	c := New(store.NewAdapter(backend), WithToaster(notify.NewToaster(notify.WithToastScheduler(clock))))
	err := c.Load()
	assert.True(t, errors.Is(err, store.ErrStoreUnavailable))
	assert.Len(t, c.Toaster().Active(), 3)
	assert.Empty(t, c.Users())
}

func TestReloadSeesPersistedState(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, testUser("a"))
	f.addGroup(t, "ops")

	reloaded := New(f.adapter)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, f.console.Users(), reloaded.Users())
	assert.Equal(t, f.console.Groups(), reloaded.Groups())
}

func TestOpenClosesModals(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.console.Add(SectionUsers))

	_, err := f.console.Open(SectionRoles)
	require.NoError(t, err)
	_, err = f.console.Open(SectionUsers)
	require.NoError(t, err)

	view := f.console.View()
	assert.Nil(t, view.Modal)
	assert.Equal(t, "User Management", view.Title)
	assert.Equal(t, "Add User", view.AddLabel)

	_, err = f.console.Open("teams")
	assert.True(t, errors.Is(err, ErrUnknownSection))
}

func TestExportImportClear(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, testUser("a"))
	f.addGroup(t, "ops")

	snapshot := f.console.Export()
	assert.Len(t, snapshot.Users, 1)
	assert.Len(t, snapshot.Groups, 1)
	assert.Empty(t, snapshot.Roles)

	require.NoError(t, f.console.Clear())
	assert.Empty(t, f.console.Users())
	stored, err := f.adapter.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, stored.Users)
	assert.Empty(t, stored.Groups)

	require.NoError(t, f.console.Import(snapshot))
	assert.Equal(t, snapshot.Users, f.storedUsers(t))
	assert.Equal(t, snapshot.Groups, f.storedGroups(t))
	assert.Contains(t, f.toasts(), "Data imported successfully!")
}

func TestImportRejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		name     string
		snapshot *store.Snapshot
		field    string
		contains string
	}{
		{
			name:     "user leading space",
			snapshot: &store.Snapshot{Users: []models.User{testUser("a"), {Username: " x", Email: "e", FirstName: "f", LastName: "l"}}},
			field:    "username",
			contains: "user 2",
		},
		{
			name:     "user blank email",
			snapshot: &store.Snapshot{Users: []models.User{{Username: "x", FirstName: "f", LastName: "l"}}},
			field:    "email",
			contains: "user 1",
		},
		{
			name:     "group blank name",
			snapshot: &store.Snapshot{Groups: []models.Group{{Name: "  "}}},
			field:    models.GroupFieldName,
			contains: "group 1",
		},
		{
			name:     "role blank name",
			snapshot: &store.Snapshot{Roles: []models.Role{{Name: "", Description: "d"}}},
			field:    models.RoleFieldName,
			contains: "role 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.addUser(t, testUser("kept"))

			err := f.console.Import(tt.snapshot)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidImport))
			assert.Contains(t, err.Error(), tt.contains)

			var validationErr *common.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.field, validationErr.Field)

			// Nothing was replaced.
			assert.Equal(t, []string{"kept"}, models.Usernames(f.console.Users()))
			assert.Equal(t, []string{"kept"}, models.Usernames(f.storedUsers(t)))
			assert.Empty(t, f.storedGroups(t))

			toasts := f.console.Toaster().Active()
			require.NotEmpty(t, toasts)
			last := toasts[len(toasts)-1]
			assert.Equal(t, notify.LevelError, last.Level)
			assert.Contains(t, last.Message, "Failed to import data:")
		})
	}
}

func TestImportNormalizesRecords(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.console.Import(&store.Snapshot{
		Groups: []models.Group{{Name: " ops "}, {Name: "dev", Users: []string{"a"}}},
		Roles:  []models.Role{{Name: " admin ", Description: " all "}},
	}))

	groups := f.storedGroups(t)
	require.Len(t, groups, 2)
	assert.Equal(t, "ops", groups[0].Name)
	assert.NotNil(t, groups[0].Users)
	assert.Empty(t, groups[0].Users)
	assert.Equal(t, []string{"a"}, groups[1].Users)

	raw, ok, err := f.backend.Get(store.KeyGroups)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, raw, "null")

	assert.Equal(t, []models.Role{{Name: "admin", Description: "all"}}, f.console.Roles())
}

func TestLoadCorruptFileIsToasted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directory.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries:\n\t- ["), 0600))

	backend, err := store.NewFileBackend(path)
	require.NoError(t, err)

	c := New(store.NewAdapter(backend),
		WithToaster(notify.NewToaster(notify.WithToastScheduler(mocks.NewManualScheduler()))),
	)
	err = c.Load()
	assert.True(t, errors.Is(err, store.ErrCorruptStore))
	require.Len(t, c.Toaster().Active(), 3)
	assert.Contains(t, c.Toaster().Active()[0].Message, "Failed to load users:")
}
