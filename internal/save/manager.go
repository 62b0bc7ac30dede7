package save

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/napolitain/idle-tycoon/internal/models"
)

// LocalStore is the durable on-device copy
type LocalStore interface {
	Load(ctx context.Context) (*models.SaveSnapshot, error)
	Save(ctx context.Context, snap *models.SaveSnapshot) error
}

// Source tells where a loaded snapshot came from
type Source int

const (
	SourceNone Source = iota
	SourceLocal
	SourceRemote
)

// String returns "none", "local" or "remote"
func (s Source) String() string {
	switch s {
	case SourceLocal:
		return "local"
	case SourceRemote:
		return "remote"
	default:
		return "none"
	}
}

// NewProfileKey returns a random profile key
func NewProfileKey() string {
	return "tycoon-" + uuid.NewString()
}

// Manager saves locally first and mirrors to the remote store in the
// background. Remote failures never reach the caller.
type Manager struct {
	local   LocalStore
	remote  RemoteStore
	key     string
	limiter *rate.Limiter
	timeout time.Duration
	log     *slog.Logger

	seq     atomic.Uint64
	offline atomic.Bool
	wg      sync.WaitGroup

	pushMu     sync.Mutex
	lastPushed uint64
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithRemote mirrors saves to remote, at most once per interval
func WithRemote(remote RemoteStore, interval time.Duration) ManagerOption {
	return func(m *Manager) {
		m.remote = remote
		if interval > 0 {
			m.limiter = rate.NewLimiter(rate.Every(interval), 1)
		}
	}
}

// WithRemoteTimeout bounds each remote call
func WithRemoteTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) { m.timeout = d }
}

// WithManagerLogger sets the logger
func WithManagerLogger(log *slog.Logger) ManagerOption {
	return func(m *Manager) { m.log = log }
}

// NewManager creates a manager for profile key
func NewManager(local LocalStore, key string, opts ...ManagerOption) *Manager {
	m := &Manager{
		local:   local,
		key:     key,
		limiter: rate.NewLimiter(rate.Inf, 1),
		timeout: 10 * time.Second,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Online reports whether the last remote call succeeded
func (m *Manager) Online() bool {
	return !m.offline.Load()
}

// Save writes the snapshot locally, then schedules a remote push if the
// throttle allows one. Only a local failure is returned.
func (m *Manager) Save(ctx context.Context, snap *models.SaveSnapshot) error {
	snap = snap.Clone()
	if err := m.local.Save(ctx, snap); err != nil {
		return err
	}
	if m.remote == nil || !m.limiter.Allow() {
		return nil
	}
	return m.schedulePush(snap)
}

// Flush pushes the snapshot remotely regardless of the throttle
func (m *Manager) Flush(ctx context.Context, snap *models.SaveSnapshot) error {
	snap = snap.Clone()
	if err := m.local.Save(ctx, snap); err != nil {
		return err
	}
	if m.remote == nil {
		return nil
	}
	return m.schedulePush(snap)
}

func (m *Manager) schedulePush(snap *models.SaveSnapshot) error {
	payload, err := Encode(snap)
	if err != nil {
		return err
	}
	seq := m.seq.Add(1)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.push(seq, string(payload))
	}()
	return nil
}

// push uploads one payload. A push older than one already stored is skipped
// so a slow request cannot overwrite newer progress.
func (m *Manager) push(seq uint64, payload string) {
	m.pushMu.Lock()
	defer m.pushMu.Unlock()
	if seq <= m.lastPushed {
		m.log.Debug("skipping superseded remote save", "seq", seq, "latest", m.lastPushed)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()
	if err := m.remote.SaveRemote(ctx, m.key, payload); err != nil {
		m.markOffline(err)
		return
	}
	m.lastPushed = seq
	m.markOnline()
}

// Wait blocks until every scheduled push has finished
func (m *Manager) Wait() {
	m.wg.Wait()
}

func (m *Manager) markOffline(err error) {
	if m.offline.CompareAndSwap(false, true) {
		m.log.Warn("cloud save unreachable, continuing with local saves", "err", err)
	}
}

func (m *Manager) markOnline() {
	if m.offline.CompareAndSwap(true, false) {
		m.log.Info("cloud save reachable again")
	}
}

// Load returns the newest snapshot between the local and remote copies, or
// nil when neither holds a readable one. A remote copy wins only when it was
// saved strictly later; it is then written back locally.
func (m *Manager) Load(ctx context.Context) (*models.SaveSnapshot, Source) {
	local, err := m.local.Load(ctx)
	switch {
	case errors.Is(err, ErrNoSave):
		local = nil
	case err != nil:
		m.log.Warn("local save unreadable, ignoring it", "err", err)
		local = nil
	}

	remote := m.loadRemote(ctx)
	if remote != nil && remote.NewerThan(local) {
		if err := m.local.Save(ctx, remote); err != nil {
			m.log.Warn("could not cache remote save locally", "err", err)
		}
		return remote, SourceRemote
	}
	if local != nil {
		return local, SourceLocal
	}
	return nil, SourceNone
}

func (m *Manager) loadRemote(ctx context.Context) *models.SaveSnapshot {
	if m.remote == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	payload, found, err := m.remote.LoadRemote(ctx, m.key)
	if err != nil {
		m.markOffline(err)
		return nil
	}
	m.markOnline()
	if !found {
		return nil
	}
	snap, err := Decode([]byte(payload), m.log)
	if err != nil {
		m.log.Warn("remote save unreadable, ignoring it", "err", err)
		return nil
	}
	return snap
}
