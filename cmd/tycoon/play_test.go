package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/napolitain/idle-tycoon/internal/clock"
	"github.com/napolitain/idle-tycoon/internal/game"
	"github.com/napolitain/idle-tycoon/internal/loader"
	"github.com/napolitain/idle-tycoon/internal/models"
	"github.com/napolitain/idle-tycoon/internal/save"
)

func newTestPlayModel(t *testing.T) *playModel {
	t.Helper()
	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	catalog, err := loader.DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	store, err := save.OpenSQLite(filepath.Join(t.TempDir(), "play.db"), "test", log)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	g := game.New(catalog, game.WithClock(clock.NewFake(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))), game.WithLogger(log))
	m := newPlayModel(g, save.NewManager(store, "test", save.WithManagerLogger(log)), 100*time.Millisecond, time.Second)
	g.Subscribe(m.onEvent)
	return m
}

func TestPlayModelKeys(t *testing.T) {
	m := newTestPlayModel(t)

	m.handleKey("c")
	u, _ := m.game.Unit(1)
	if !u.State().IsManuallyWorking {
		t.Error("click did not start tier 1")
	}

	m.handleKey("m")
	if m.game.BuyMode() != models.BuyTen {
		t.Errorf("buy mode: got %s, want x10", m.game.BuyMode())
	}

	m.handleKey("b")
	if m.status != "Can't afford" {
		t.Errorf("status after unaffordable buy: got %q", m.status)
	}

	if cmd := m.handleKey("q"); cmd == nil {
		t.Error("q did not return a quit command")
	}
}

func TestPlayModelTickAutosaves(t *testing.T) {
	m := newTestPlayModel(t)
	m.handleKey("c")

	start := m.last
	m.Update(tickMsg(start.Add(1500 * time.Millisecond)))

	if !m.game.Ledger().LifetimeEarnings().IsPositive() {
		t.Error("tick produced no earnings")
	}
	if snap, src := m.saves.Load(t.Context()); snap == nil || src != save.SourceLocal {
		t.Errorf("autosave: got %v from %v, want a local save", snap, src)
	}
}

func TestPlayModelView(t *testing.T) {
	m := newTestPlayModel(t)
	view := m.View()
	for _, want := range []string{"Idle Tycoon", "Lemonade Stand", "Newspaper Route"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

type brokenLocal struct{}

func (brokenLocal) Load(context.Context) (*models.SaveSnapshot, error) { return nil, save.ErrNoSave }
func (brokenLocal) Save(context.Context, *models.SaveSnapshot) error {
	return errors.New("disk full")
}

func TestPlayModelPrestigeReportsSaveFailure(t *testing.T) {
	m := newTestPlayModel(t)
	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	m.saves = save.NewManager(brokenLocal{}, "test", save.WithManagerLogger(log))

	snap := m.game.Snapshot()
	snap.LifetimeEarnings = decimal.NewFromInt(4_000_000)
	m.game.Restore(snap)

	m.handleKey("P")
	if m.game.Ledger().PrestigeCurrency().IsZero() {
		t.Fatal("prestige did not commit")
	}
	if m.status != "Save failed: disk full" {
		t.Errorf("status: got %q, want the save error", m.status)
	}
}
