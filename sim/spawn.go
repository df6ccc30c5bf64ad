package sim

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/plus3/worldsbelow/config"
	"github.com/plus3/worldsbelow/ecs"
)

// ErrInvalidBounds is returned when a spawn area cannot fit the footprint.
var ErrInvalidBounds = errors.New("invalid spawn bounds")

// SpawnCharacters places n characters uniformly inside bounds so that every
// footprint lies fully within it. Either all n are spawned or none are.
func (w *World) SpawnCharacters(n int, bounds Rect) ([]ecs.EntityId, error) {
	if n <= 0 {
		return nil, nil
	}
	if err := w.checkCharacterBounds(bounds); err != nil {
		return nil, err
	}
	if avail := w.Storage.Entities().Available(); avail < n {
		return nil, errors.Wrapf(ecs.ErrCapacityExceeded, "spawn %d characters with room for %d", n, avail)
	}

	ids, err := w.Storage.SpawnBatch(n, func(_ int, id ecs.EntityId) error {
		return w.attachCharacter(id, w.placeCharacter(bounds))
	})
	if err != nil {
		return nil, errors.Wrap(err, "spawn characters")
	}
	for _, id := range ids {
		w.log.Debug("character spawned", zap.Uint32("entity", uint32(id)), zap.Stringer("rect", w.Boxes.Get(id).Rect))
	}
	return ids, nil
}

// SpawnPlayer spawns one character inside bounds and marks it player-controlled.
func (w *World) SpawnPlayer(bounds Rect) (ecs.EntityId, error) {
	if err := w.checkCharacterBounds(bounds); err != nil {
		return 0, err
	}
	id, err := w.spawnCharacter(bounds, func(id ecs.EntityId) error {
		return w.Players.Add(id, true)
	})
	if err != nil {
		return 0, err
	}
	w.log.Debug("player spawned", zap.Uint32("entity", uint32(id)))
	return id, nil
}

// SpawnHouse places the oxygenator house centered in display. The house has no
// health; its bounding box is its oxygen radius.
func (w *World) SpawnHouse(display Rect) (ecs.EntityId, error) {
	house := w.cfg.House
	box := BoundingBox{Rect{
		X: display.X + (display.W-house.Width)/2,
		Y: display.Y + (display.H-house.Height)/2,
		W: house.Width,
		H: house.Height,
	}}

	id, err := w.Storage.Spawn(func(id ecs.EntityId) error {
		if err := w.Boxes.Add(id, box); err != nil {
			return err
		}
		if err := w.Colors.Add(id, colorOf(house.Color)); err != nil {
			return err
		}
		return w.Oxygenators.Add(id, true)
	})
	if err != nil {
		return 0, errors.Wrap(err, "spawn house")
	}

	w.log.Debug("house spawned", zap.Uint32("entity", uint32(id)), zap.Stringer("rect", box))
	return id, nil
}

func (w *World) spawnCharacter(bounds Rect, extra func(ecs.EntityId) error) (ecs.EntityId, error) {
	box := w.placeCharacter(bounds)

	id, err := w.Storage.Spawn(func(id ecs.EntityId) error {
		if err := w.attachCharacter(id, box); err != nil {
			return err
		}
		if extra != nil {
			return extra(id)
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "spawn character")
	}

	w.log.Debug("character spawned", zap.Uint32("entity", uint32(id)), zap.Stringer("rect", box))
	return id, nil
}

// attachCharacter adds the components every character has.
func (w *World) attachCharacter(id ecs.EntityId, box Rect) error {
	character := w.cfg.Character
	if err := w.Boxes.Add(id, BoundingBox{box}); err != nil {
		return err
	}
	if err := w.Colors.Add(id, colorOf(character.Color)); err != nil {
		return err
	}
	return w.Healths.Add(id, Health(character.MaxHealth))
}

func (w *World) checkCharacterBounds(bounds Rect) error {
	c := w.cfg.Character
	if !finite(bounds.X) || !finite(bounds.Y) || !finite(bounds.W) || !finite(bounds.H) {
		return errors.Wrapf(ErrInvalidBounds, "%v is not finite", bounds)
	}
	if bounds.W < c.Width || bounds.H < c.Height {
		return errors.Wrapf(ErrInvalidBounds, "%v cannot fit a %gx%g character", bounds, c.Width, c.Height)
	}
	if bounds.W-c.Width > maxSpan || bounds.H-c.Height > maxSpan {
		return errors.Wrapf(ErrInvalidBounds, "%v is too large to place in", bounds)
	}
	return nil
}

// maxSpan bounds the whole-pixel offsets placeCharacter draws from.
const maxSpan = 1 << 30

func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

// placeCharacter picks a whole-pixel position so the footprint stays inside bounds.
func (w *World) placeCharacter(bounds Rect) Rect {
	c := w.cfg.Character
	spanX := int(bounds.W - c.Width)
	spanY := int(bounds.H - c.Height)
	return Rect{
		X: bounds.X + float32(w.rng.IntN(spanX+1)),
		Y: bounds.Y + float32(w.rng.IntN(spanY+1)),
		W: c.Width,
		H: c.Height,
	}
}

func colorOf(rgb config.RGB) Color {
	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}
}
