package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thand-io/directory/internal/models"
	"github.com/thand-io/directory/internal/store"
	"github.com/thand-io/directory/internal/table"
	"gopkg.in/yaml.v3"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{"1", 0, false},
		{" 12 ", 11, false},
		{"0", -1, true},
		{"-3", -1, true},
		{"abc", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseID(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldLabel(t *testing.T) {
	assert.Equal(t, "Username", fieldLabel(models.UserFieldUsername))
	assert.Equal(t, "First Name", fieldLabel(models.UserFieldFirstName))
	assert.Equal(t, "Role Description", fieldLabel(models.RoleFieldDescription))
	assert.Equal(t, "Group Name", fieldLabel(models.GroupFieldName))
}

func TestEncodeSnapshot(t *testing.T) {
	snapshot := &store.Snapshot{
		Users:  []models.User{{Username: "u", Email: "e", FirstName: "f", LastName: "l"}},
		Groups: []models.Group{{Name: "ops", Users: []string{"u"}}},
		Roles:  []models.Role{},
	}

	data, err := encodeSnapshot(snapshot, "json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"firstName": "f"`)

	data, err = encodeSnapshot(snapshot, "YAML")
	require.NoError(t, err)
	var decoded store.Snapshot
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, snapshot.Groups, decoded.Groups)

	_, err = encodeSnapshot(snapshot, "xml")
	assert.Error(t, err)
}

func TestRenderTableAddsIDColumn(t *testing.T) {
	out := renderTable(table.Render(table.Roles, []models.Role{{Name: "admin", Description: "All"}}))
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Role Name")
	assert.Contains(t, out, "admin")
}

func run(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestCommandsAgainstFileStore(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	dir := t.TempDir()
	storePath := filepath.Join(dir, "directory.yaml")
	base := []string{"--store", "file", "--store-path", storePath}
	with := func(args ...string) []string {
		return append(append([]string{}, base...), args...)
	}

	out := run(t, with("users", "add", "--username", "testuser", "--email", "test@example.com", "--first-name", "Test", "--last-name", "User")...)
	assert.Contains(t, out, "User added successfully!")

	out = run(t, with("groups", "create", "--name", " ops ")...)
	assert.Contains(t, out, "Group created successfully!")

	out = run(t, with("groups", "assign", "1", "--users", "testuser")...)
	assert.Contains(t, out, "Users assigned successfully!")

	out = run(t, with("users", "delete", "1", "--yes")...)
	assert.Contains(t, out, "User deleted successfully!")

	exportPath := filepath.Join(dir, "export.yaml")
	run(t, with("export", "--format", "yaml", "--output", exportPath)...)

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	var exported store.Snapshot
	require.NoError(t, yaml.Unmarshal(data, &exported))
	assert.Empty(t, exported.Users)
	require.Len(t, exported.Groups, 1)
	assert.Equal(t, "ops", exported.Groups[0].Name)
	assert.Equal(t, []string{"testuser"}, exported.Groups[0].Users)

	out = run(t, with("clear", "--yes")...)
	assert.Contains(t, out, "All data cleared successfully!")

	out = run(t, with("import", exportPath)...)
	assert.Contains(t, out, "Data imported successfully!")

	out = run(t, with("groups", "list")...)
	assert.Contains(t, out, "Group Management")
	assert.Contains(t, out, "testuser")
}
