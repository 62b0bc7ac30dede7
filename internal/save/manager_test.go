package save

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/napolitain/idle-tycoon/internal/models"
)

type memLocal struct {
	mu   sync.Mutex
	snap *models.SaveSnapshot
	err  error
}

func (m *memLocal) Load(context.Context) (*models.SaveSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.snap == nil {
		return nil, ErrNoSave
	}
	return m.snap.Clone(), nil
}

func (m *memLocal) Save(_ context.Context, s *models.SaveSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = s.Clone()
	return nil
}

type fakeRemote struct {
	mu      sync.Mutex
	data    map[string]string
	failing bool
	saves   int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{data: make(map[string]string)}
}

func (f *fakeRemote) LoadRemote(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return "", false, errors.New("connection refused")
	}
	p, ok := f.data[key]
	return p, ok, nil
}

func (f *fakeRemote) SaveRemote(_ context.Context, key, payload string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.failing {
		return errors.New("connection refused")
	}
	f.data[key] = payload
	return nil
}

func (f *fakeRemote) setFailing(v bool) {
	f.mu.Lock()
	f.failing = v
	f.mu.Unlock()
}

func snapshotAt(t time.Time, balance int64) *models.SaveSnapshot {
	s := models.NewSaveSnapshot()
	s.LastSaveTime = t
	s.CurrentBalance = decimal.NewFromInt(balance)
	s.LifetimeEarnings = decimal.NewFromInt(balance)
	s.Units = []models.UnitState{models.NewUnitState(1, 1)}
	return s
}

var epoch = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func TestManagerSavesLocallyAndRemotely(t *testing.T) {
	local := &memLocal{}
	remote := newFakeRemote()
	m := NewManager(local, "p1", WithRemote(remote, 0))

	if err := m.Save(context.Background(), snapshotAt(epoch, 10)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	m.Wait()

	if local.snap == nil {
		t.Fatal("local snapshot not written")
	}
	if _, ok := remote.data["p1"]; !ok {
		t.Error("remote snapshot not written")
	}
}

func TestManagerRemoteFailureIsSilent(t *testing.T) {
	var buf bytes.Buffer
	local := &memLocal{}
	remote := newFakeRemote()
	remote.setFailing(true)
	m := NewManager(local, "p1", WithRemote(remote, 0), WithManagerLogger(testLogger(&buf)))

	for i := range 3 {
		if err := m.Save(context.Background(), snapshotAt(epoch.Add(time.Duration(i)*time.Second), 10)); err != nil {
			t.Fatalf("Save %d: %v", i, err)
		}
		m.Wait()
	}
	if m.Online() {
		t.Error("Online: got true, want false")
	}
	if n := strings.Count(buf.String(), "cloud save unreachable"); n != 1 {
		t.Errorf("offline logged %d times, want 1", n)
	}

	remote.setFailing(false)
	m.Save(context.Background(), snapshotAt(epoch.Add(time.Minute), 10))
	m.Wait()
	if !m.Online() {
		t.Error("Online after recovery: got false, want true")
	}
	if n := strings.Count(buf.String(), "cloud save reachable again"); n != 1 {
		t.Errorf("online logged %d times, want 1", n)
	}
}

func TestManagerThrottlesRemotePushes(t *testing.T) {
	remote := newFakeRemote()
	m := NewManager(&memLocal{}, "p1", WithRemote(remote, time.Hour))

	for i := range 5 {
		m.Save(context.Background(), snapshotAt(epoch.Add(time.Duration(i)*time.Second), int64(i)))
	}
	m.Wait()
	if remote.saves != 1 {
		t.Errorf("remote saves: got %d, want 1", remote.saves)
	}

	m.Flush(context.Background(), snapshotAt(epoch.Add(time.Minute), 99))
	m.Wait()
	if remote.saves != 2 {
		t.Errorf("remote saves after flush: got %d, want 2", remote.saves)
	}
}

func TestManagerSkipsSupersededPush(t *testing.T) {
	remote := newFakeRemote()
	m := NewManager(&memLocal{}, "p1", WithRemote(remote, 0))

	m.push(2, "newer")
	m.push(1, "older")
	if got := remote.data["p1"]; got != "newer" {
		t.Errorf("remote payload: got %q, want newer", got)
	}
}

func TestManagerLoadPicksNewest(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name       string
		local      *models.SaveSnapshot
		remote     *models.SaveSnapshot
		wantSource Source
		wantBal    int64
	}{
		{"nothing", nil, nil, SourceNone, 0},
		{"local only", snapshotAt(epoch, 5), nil, SourceLocal, 5},
		{"remote only", nil, snapshotAt(epoch, 7), SourceRemote, 7},
		{"remote newer", snapshotAt(epoch, 5), snapshotAt(epoch.Add(time.Second), 7), SourceRemote, 7},
		{"local newer", snapshotAt(epoch.Add(time.Second), 5), snapshotAt(epoch, 7), SourceLocal, 5},
		{"tie keeps local", snapshotAt(epoch, 5), snapshotAt(epoch, 7), SourceLocal, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := &memLocal{snap: tt.local}
			remote := newFakeRemote()
			if tt.remote != nil {
				payload, _ := Encode(tt.remote)
				remote.data["p1"] = string(payload)
			}
			m := NewManager(local, "p1", WithRemote(remote, 0))

			got, src := m.Load(ctx)
			if src != tt.wantSource {
				t.Fatalf("source: got %v, want %v", src, tt.wantSource)
			}
			if got == nil {
				return
			}
			if !got.CurrentBalance.Equal(decimal.NewFromInt(tt.wantBal)) {
				t.Errorf("balance: got %s, want %d", got.CurrentBalance, tt.wantBal)
			}
			if src == SourceRemote && !local.snap.CurrentBalance.Equal(got.CurrentBalance) {
				t.Error("remote snapshot not cached locally")
			}
		})
	}
}

func TestManagerLoadIgnoresUnreadableCopies(t *testing.T) {
	local := &memLocal{err: ErrCorrupt}
	remote := newFakeRemote()
	remote.data["p1"] = "{{{"
	m := NewManager(local, "p1", WithRemote(remote, 0), WithManagerLogger(testLogger(&bytes.Buffer{})))

	if got, src := m.Load(context.Background()); got != nil || src != SourceNone {
		t.Errorf("Load: got %v from %v, want nil from none", got, src)
	}
}

func TestManagerLoadOfflineFallsBackToLocal(t *testing.T) {
	local := &memLocal{snap: snapshotAt(epoch, 5)}
	remote := newFakeRemote()
	remote.setFailing(true)
	m := NewManager(local, "p1", WithRemote(remote, 0), WithManagerLogger(testLogger(&bytes.Buffer{})))

	got, src := m.Load(context.Background())
	if src != SourceLocal || got == nil {
		t.Fatalf("Load: got %v, want local", src)
	}
	if m.Online() {
		t.Error("Online: got true, want false")
	}
}

func TestNewProfileKeyUnique(t *testing.T) {
	a, b := NewProfileKey(), NewProfileKey()
	if a == b {
		t.Errorf("NewProfileKey returned %q twice", a)
	}
	if !strings.HasPrefix(a, "tycoon-") {
		t.Errorf("NewProfileKey: got %q, want tycoon- prefix", a)
	}
}
