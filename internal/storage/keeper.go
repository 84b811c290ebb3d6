package storage

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/aetherbreakout/internal/breakout"
)

// RefreshInterval is how often a Keeper re-reads the shared high score.
// Reads in between are served from its cache.
const RefreshInterval = 5 * time.Second

// runStore is the part of Store a Keeper uses.
type runStore interface {
	HighScore() (int, error)
	SaveHighScore(player string, score int) error
	SaveRun(r Run) (Run, error)
}

// Keeper adapts a Store to breakout.ScoreKeeper for one player. The high
// score it reports is shared by every player on the database.
type Keeper struct {
	store  runStore
	player string
	log    *log.Logger
	now    func() time.Time

	mu      sync.Mutex
	best    int       // Last known shared high score
	checked time.Time // When best was last read from the store
}

var _ breakout.ScoreKeeper = (*Keeper)(nil)

// NewKeeper creates a Keeper. A nil logger discards output.
func NewKeeper(store *Store, player string, logger *log.Logger) *Keeper {
	return newKeeper(store, player, logger, time.Now)
}

func newKeeper(store runStore, player string, logger *log.Logger, now func() time.Time) *Keeper {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	k := &Keeper{store: store, player: player, log: logger, now: now}
	k.refresh()
	return k
}

// refresh reloads the shared high score, keeping the cached value when the
// database cannot be read.
func (k *Keeper) refresh() int {
	high, err := k.store.HighScore()

	k.mu.Lock()
	defer k.mu.Unlock()
	k.checked = k.now()
	if err != nil {
		k.log.Warn("reading high score", "err", err)
		return k.best
	}
	if high > k.best {
		k.best = high
	}
	return k.best
}

// HighScore returns the shared high score. It is called every frame, so the
// store is read at most once per RefreshInterval.
func (k *Keeper) HighScore() int {
	k.mu.Lock()
	stale := k.now().Sub(k.checked) >= RefreshInterval
	best := k.best
	k.mu.Unlock()

	if stale {
		return k.refresh()
	}
	return best
}

// SaveHighScore records score for this player.
func (k *Keeper) SaveHighScore(score int) error {
	k.mu.Lock()
	if score > k.best {
		k.best = score
	}
	k.mu.Unlock()
	return k.store.SaveHighScore(k.player, score)
}

// RecordRun stores a finished run for this player.
func (k *Keeper) RecordRun(score, level int) (Run, error) {
	r, err := k.store.SaveRun(Run{Player: k.player, Score: score, Level: level})
	if err != nil {
		return r, err
	}
	k.refresh()
	return r, nil
}
