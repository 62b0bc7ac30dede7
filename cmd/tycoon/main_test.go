package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/napolitain/idle-tycoon/internal/clock"
	"github.com/napolitain/idle-tycoon/internal/loader"
	"github.com/napolitain/idle-tycoon/internal/models"
	"github.com/napolitain/idle-tycoon/internal/save"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		p    float64
		want string
	}{
		{0, "[░░░░]"},
		{0.5, "[██░░]"},
		{1, "[████]"},
		{1.7, "[████]"},
		{-1, "[░░░░]"},
	}
	for _, tt := range tests {
		if got := progressBar(tt.p, 4); got != tt.want {
			t.Errorf("progressBar(%v): got %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tycoon.yaml")
	if err := os.WriteFile(path, []byte("database: from-file.db\nprofile_key: file-profile\nautosave_interval: 5s\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	configFile, profileKey = path, "flag-profile"
	t.Cleanup(func() { configFile, profileKey = "", "" })

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.DatabasePath != "from-file.db" {
		t.Errorf("DatabasePath: got %q, want from-file.db", cfg.DatabasePath)
	}
	if cfg.ProfileKey != "flag-profile" {
		t.Errorf("ProfileKey: got %q, want flag-profile", cfg.ProfileKey)
	}
	if cfg.AutosaveInterval != 5*time.Second {
		t.Errorf("AutosaveInterval: got %s, want 5s", cfg.AutosaveInterval)
	}
}

func TestLoadConfigRejectsBadLevel(t *testing.T) {
	logLevel = "loud"
	t.Cleanup(func() { logLevel = "" })
	if _, err := loadConfig(); err == nil {
		t.Error("loadConfig: expected error for bad log level")
	}
}

func newTestEnv(t *testing.T) *env {
	t.Helper()
	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	catalog, err := loader.DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	store, err := save.OpenSQLite(filepath.Join(t.TempDir(), "env.db"), "test", log)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	e := &env{log: log, catalog: catalog, store: store, saves: save.NewManager(store, "test", save.WithManagerLogger(log))}
	t.Cleanup(e.Close)
	return e
}

func TestSimulationGameSettlesAbsence(t *testing.T) {
	e := newTestEnv(t)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	snap := models.NewSaveSnapshot()
	snap.LastSaveTime = now.Add(-time.Hour)
	unit := models.NewUnitState(1, 1)
	unit.OperatorMode = models.OperatorAI
	snap.Units = []models.UnitState{unit}
	if err := e.saves.Flush(t.Context(), snap); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	g, src, offline := e.simulationGame(t.Context(), clock.NewFake(now), true)
	if src != save.SourceLocal {
		t.Errorf("source: got %s, want local", src)
	}
	if offline.ElapsedSeconds != 3600 || !offline.Earnings.IsPositive() {
		t.Errorf("offline report: got %.0fs +%s, want 3600s with earnings", offline.ElapsedSeconds, offline.Earnings)
	}
	if !g.Ledger().Balance().Equal(offline.Earnings) {
		t.Errorf("balance: got %s, want %s", g.Ledger().Balance(), offline.Earnings)
	}

	fresh, src, offline := e.simulationGame(t.Context(), clock.NewFake(now), false)
	if src != save.SourceNone || !offline.Earnings.IsZero() || !fresh.Ledger().Balance().IsZero() {
		t.Errorf("new game: source %s, offline %s, balance %s", src, offline.Earnings, fresh.Ledger().Balance())
	}
}
