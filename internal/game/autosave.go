package game

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Saver writes a game to a slot
type Saver interface {
	Save(ctx context.Context, slot string) error
}

// Autosaver periodically saves a game to one slot
type Autosaver struct {
	saver    Saver
	slot     string
	logger   *zap.Logger
	ticker   *time.Ticker
	stopChan chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewAutosaver creates an autosaver that saves every interval
func NewAutosaver(saver Saver, slot string, interval time.Duration, logger *zap.Logger) *Autosaver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Autosaver{
		saver:    saver,
		slot:     slot,
		logger:   logger,
		ticker:   time.NewTicker(interval),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins saving in the background
func (a *Autosaver) Start() {
	go func() {
		defer close(a.done)
		for {
			select {
			case <-a.ticker.C:
				a.save()
			case <-a.stopChan:
				a.ticker.Stop()
				return
			}
		}
	}()
}

// Stop halts the autosaver and waits for an in-flight save to finish
func (a *Autosaver) Stop() {
	a.stopOnce.Do(func() { close(a.stopChan) })
	<-a.done
}

func (a *Autosaver) save() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a.logger.Debug("Autosaving", zap.String("slot", a.slot))
	if err := a.saver.Save(ctx, a.slot); err != nil {
		a.logger.Error("Autosave failed", zap.String("slot", a.slot), zap.Error(err))
	}
}
