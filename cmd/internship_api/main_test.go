package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/internship-board/internal/config"
	"github.com/jonathan/internship-board/internal/schemas"
	"github.com/jonathan/internship-board/internal/storage"
)

// execute runs a fresh root command with args against the in-memory store.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRankCommand_UnknownResume(t *testing.T) {
	out, err := execute(t, "rank", "--resume-id", "does-not-exist")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestRankCommand_RequiresResumeID(t *testing.T) {
	_, err := execute(t, "rank")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resume-id")
}

func TestDatabaseCommands_RequireDatabaseURL(t *testing.T) {
	for _, name := range []string{"migrate", "seed"} {
		t.Run(name, func(t *testing.T) {
			_, err := execute(t, name)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "database-url is required")
		})
	}
}

func TestSetup_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9090\nseed-sample-data: false\n"), 0o600))
	t.Setenv("DATABASE_URL", "")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", path, "rank", "--resume-id", "r"})
	require.NoError(t, cmd.Execute())
}

func TestSetup_InvalidConfig(t *testing.T) {
	t.Setenv("PORT", "70000")
	_, err := execute(t, "rank", "--resume-id", "r")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestOpenStore_InMemory(t *testing.T) {
	tests := []struct {
		name     string
		seed     bool
		expected int
	}{
		{"seeded", true, 20},
		{"empty", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{SeedSampleData: tt.seed}
			store, closeStore, err := openStore(context.Background(), cfg, zap.NewNop())
			require.NoError(t, err)
			defer closeStore()

			internships, err := store.ListActiveInternships(context.Background())
			require.NoError(t, err)
			assert.Len(t, internships, tt.expected)
		})
	}
}

func TestLoadInternships(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("built-in samples", func(t *testing.T) {
		internships, err := loadInternships("", now)
		require.NoError(t, err)
		assert.Len(t, internships, 20)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "internships.json")
		doc := `[{"id":"x1","title":"Go Intern","company":"Acme","description":"Build services","location":"Remote","duration":"12 weeks","skills":["Go","SQL"],"is_remote":true,"posted_days_ago":3}]`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

		internships, err := loadInternships(path, now)
		require.NoError(t, err)
		require.Len(t, internships, 1)
		assert.Equal(t, "x1", internships[0].ID)
		assert.True(t, internships[0].IsActive)
		assert.Equal(t, now.Add(-72*time.Hour), internships[0].PostedAt)
	})

	t.Run("schema violation", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "internships.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"id":"x1"}]`), 0o600))

		_, err := loadInternships(path, now)
		var verr *schemas.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.NotEmpty(t, verr.Errors)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadInternships(filepath.Join(t.TempDir(), "nope.json"), now)
		require.Error(t, err)
	})
}

func TestSampleInternshipsMatchSeededStore(t *testing.T) {
	store, err := storage.NewSeededMemStore()
	require.NoError(t, err)

	stored, err := store.ListActiveInternships(context.Background())
	require.NoError(t, err)
	samples, err := loadInternships("", time.Now())
	require.NoError(t, err)

	require.Len(t, stored, len(samples))
	for i := range samples {
		assert.Equal(t, samples[i].ID, stored[i].ID)
	}
}
