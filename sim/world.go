package sim

import (
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/plus3/worldsbelow/config"
	"github.com/plus3/worldsbelow/ecs"
)

// World owns every component store of one simulation run, the systems that
// update them, and the random source used for placement. The frame driver owns
// the World and is its only caller; nothing here is safe for concurrent use.
type World struct {
	cfg  *config.Config
	log  *zap.Logger
	rng  *rand.Rand
	seed uint64

	Storage     *ecs.Storage
	Healths     *ecs.ComponentStore[Health]
	Colors      *ecs.ComponentStore[Color]
	Boxes       *ecs.ComponentStore[BoundingBox]
	Oxygenators *ecs.ComponentStore[Oxygenator]
	Players     *ecs.ComponentStore[PlayerControlled]

	intents   *ecs.Singleton[Intents]
	scheduler *ecs.Scheduler
}

// NewWorld allocates the stores at cfg.World.Capacity and registers the
// movement and oxygen systems, in that order.
func NewWorld(cfg *config.Config, log *zap.Logger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "new world")
	}

	seed := cfg.World.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	storage := ecs.NewStorage(cfg.World.Capacity)
	w := &World{
		cfg:         cfg,
		log:         log,
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed:        seed,
		Storage:     storage,
		Healths:     ecs.RegisterComponent[Health](storage),
		Colors:      ecs.RegisterComponent[Color](storage),
		Boxes:       ecs.RegisterComponent[BoundingBox](storage),
		Oxygenators: ecs.RegisterComponent[Oxygenator](storage),
		Players:     ecs.RegisterComponent[PlayerControlled](storage),
		intents:     ecs.NewSingleton[Intents](storage),
		scheduler:   ecs.NewScheduler(storage),
	}

	w.scheduler.Register(&MovementSystem{
		Players:         w.Players,
		Boxes:           w.Boxes,
		Intents:         w.intents,
		PixelsPerSecond: cfg.Movement.PixelsPerFoot * cfg.Movement.FeetPerSecond,
	})
	w.scheduler.Register(&OxygenSystem{
		Healths:      w.Healths,
		Oxygenators:  w.Oxygenators,
		Boxes:        w.Boxes,
		RecoveryRate: cfg.Oxygen.RecoveryRatePerSecond,
		MaxHealth:    Health(cfg.Character.MaxHealth),
	})

	log.Info("world created",
		zap.Int("capacity", cfg.World.Capacity),
		zap.Uint64("seed", seed))
	return w, nil
}

// Init runs the spawn sequence (house, characters, player) inside display and
// returns the resulting entity count.
func (w *World) Init(display Rect) (int, error) {
	if _, err := w.SpawnHouse(display); err != nil {
		return w.EntityCount(), err
	}
	if _, err := w.SpawnCharacters(w.cfg.World.CharacterCount, display); err != nil {
		return w.EntityCount(), err
	}
	if _, err := w.SpawnPlayer(display); err != nil {
		return w.EntityCount(), err
	}

	w.log.Info("world initialised",
		zap.Int("entities", w.EntityCount()),
		zap.Stringer("display", display))
	return w.EntityCount(), nil
}

// Tick advances the simulation by elapsed: movement first, then oxygen, then any
// structural changes the systems queued.
func (w *World) Tick(elapsed time.Duration, in Intents) error {
	w.SetIntents(in)
	if err := w.scheduler.Once(elapsed); err != nil {
		return errors.Wrap(err, "tick")
	}
	return nil
}

// SetIntents stores the input snapshot the movement system reads. Tick calls
// it; drivers that run the scheduler directly call it themselves.
func (w *World) SetIntents(in Intents) {
	w.intents.Set(in)
}

// Destroy removes id from every store. Its id is reused by later spawns.
func (w *World) Destroy(id ecs.EntityId) error {
	if err := w.Storage.Destroy(id); err != nil {
		return err
	}
	w.log.Debug("entity destroyed", zap.Uint32("entity", uint32(id)))
	return nil
}

// EntityCount is the number of ids handed out so far.
func (w *World) EntityCount() int {
	return w.Storage.Entities().Count()
}

// Player returns the first player-controlled entity.
func (w *World) Player() (ecs.EntityId, bool) {
	for id, controlled := range w.Players.All() {
		if *controlled {
			return id, true
		}
	}
	return 0, false
}

// Scheduler exposes the world's scheduler so the driver can append its own
// systems after the simulation ones.
func (w *World) Scheduler() *ecs.Scheduler {
	return w.scheduler
}

func (w *World) Config() *config.Config {
	return w.cfg
}

// Seed is the seed the placement RNG was created with.
func (w *World) Seed() uint64 {
	return w.seed
}
