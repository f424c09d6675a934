package services

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/sirupsen/logrus"

	"isorail.dev/internal/config"
	"isorail.dev/internal/generation"
)

// WorldService owns the published world snapshot. Readers always see a
// complete world: a new one is fully generated before it is swapped in.
type WorldService struct {
	cfg    *config.Config
	logger logrus.FieldLogger

	current atomic.Pointer[generation.World]
	worlds  *ristretto.Cache[string, *generation.World] // recently generated, by size and seed

	regen sync.Mutex // one Regenerate at a time

	subMu   sync.Mutex
	subs    map[uint64]chan *generation.World
	nextSub uint64
}

// NewWorldService creates a WorldService and publishes the configured seed's world
func NewWorldService(cfg *config.Config, logger logrus.FieldLogger) (*WorldService, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, *generation.World]{
		NumCounters:        cfg.Cache.MaxWorlds * 10,
		MaxCost:            cfg.Cache.MaxWorlds,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating world cache: %w", err)
	}

	ws := &WorldService{
		cfg:    cfg,
		logger: logger.WithField("component", "worlds"),
		worlds: cache,
		subs:   make(map[uint64]chan *generation.World),
	}
	if _, err := ws.Regenerate(cfg.Map.Seed); err != nil {
		cache.Close()
		return nil, err
	}
	return ws, nil
}

// Close releases the snapshot cache and ends every subscription
func (ws *WorldService) Close() {
	ws.subMu.Lock()
	for id, ch := range ws.subs {
		close(ch)
		delete(ws.subs, id)
	}
	ws.subMu.Unlock()
	ws.worlds.Close()
}

// Current returns the published world
func (ws *WorldService) Current() *generation.World {
	return ws.current.Load()
}

// NextSeed returns the seed after the published world's
func (ws *WorldService) NextSeed() int64 {
	return ws.Current().Seed + 1
}

func cacheKey(cols, rows int, seed int64) string {
	return fmt.Sprintf("%dx%dx%d", cols, rows, seed)
}

// Regenerate builds the world for seed, publishes it and notifies subscribers.
// A world generated earlier with the same size and seed is reused.
func (ws *WorldService) Regenerate(seed int64) (*generation.World, error) {
	ws.regen.Lock()
	defer ws.regen.Unlock()

	opts := ws.cfg.GenerationOptions(seed)
	key := cacheKey(opts.Cols, opts.Rows, seed)
	log := ws.logger.WithField("seed", seed)

	world, hit := ws.worlds.Get(key)
	if !hit {
		opts.Logger = log
		var err error
		world, err = generation.Generate(opts)
		if err != nil {
			return nil, fmt.Errorf("generating world %s: %w", key, err)
		}
		ws.worlds.Set(key, world, 1)
		ws.worlds.Wait()
	}

	ws.current.Store(world)
	ws.publish(world)

	log.WithFields(logrus.Fields{
		"id":       world.ID,
		"cached":   hit,
		"cities":   len(world.Waypoints),
		"route":    world.Route.Len(),
		"fallback": world.Route.Fallback,
	}).Info("world published")
	return world, nil
}

// Subscribe returns a channel that receives every newly published world,
// and a function that ends the subscription. A slow subscriber only ever
// sees the latest world.
func (ws *WorldService) Subscribe() (<-chan *generation.World, func()) {
	ws.subMu.Lock()
	defer ws.subMu.Unlock()

	id := ws.nextSub
	ws.nextSub++
	ch := make(chan *generation.World, 1)
	ws.subs[id] = ch

	return ch, func() {
		ws.subMu.Lock()
		defer ws.subMu.Unlock()
		if _, ok := ws.subs[id]; ok {
			close(ch)
			delete(ws.subs, id)
		}
	}
}

func (ws *WorldService) publish(world *generation.World) {
	ws.subMu.Lock()
	defer ws.subMu.Unlock()

	for _, ch := range ws.subs {
		// Only publish sends on ch, so after draining there is room
		select {
		case <-ch:
		default:
		}
		ch <- world
	}
}
