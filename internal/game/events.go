package game

import (
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/napolitain/idle-tycoon/internal/economy"
	"github.com/napolitain/idle-tycoon/internal/models"
)

// EventType represents the type of notification sent to the presentation layer
type EventType int

const (
	EventBalanceChanged EventType = iota
	EventBuyModeChanged
	EventProgressUpdated // high frequency, once per unit per tick
	EventDataChanged
	EventTierUnlocked
	EventOfflineProgress
	EventUpgradesChanged
)

// String returns a string representation of the event type
func (et EventType) String() string {
	switch et {
	case EventBalanceChanged:
		return "BalanceChanged"
	case EventBuyModeChanged:
		return "BuyModeChanged"
	case EventProgressUpdated:
		return "ProgressUpdated"
	case EventDataChanged:
		return "DataChanged"
	case EventTierUnlocked:
		return "TierUnlocked"
	case EventOfflineProgress:
		return "OfflineProgress"
	case EventUpgradesChanged:
		return "UpgradesChanged"
	default:
		return "Unknown"
	}
}

// Event is a value-type notification. Only the fields relevant to Type are set.
type Event struct {
	Type     EventType
	TierID   int
	Balance  decimal.Decimal
	Progress float64
	BuyMode  models.BuyMode
	Offline  economy.OfflineReport
	Sequence int64
}

// Listener receives events synchronously on the publishing goroutine
type Listener func(Event)

// Bus fans events out to every registered listener
type Bus struct {
	mu        sync.RWMutex
	listeners map[int64]Listener
	order     []int64
	nextID    int64
	sequence  atomic.Int64
}

// NewBus creates a bus with no listeners
func NewBus() *Bus {
	return &Bus{listeners: make(map[int64]Listener)}
}

// Subscribe registers l and returns a function that removes it
func (b *Bus) Subscribe(l Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = l
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.listeners, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish delivers e to the listeners registered at call time, in
// subscription order
func (b *Bus) Publish(e Event) {
	e.Sequence = b.sequence.Add(1)

	b.mu.RLock()
	targets := make([]Listener, 0, len(b.order))
	for _, id := range b.order {
		targets = append(targets, b.listeners[id])
	}
	b.mu.RUnlock()

	for _, l := range targets {
		l(e)
	}
}
