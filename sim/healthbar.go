package sim

import "github.com/plus3/worldsbelow/ecs"

const (
	healthBarWidth  = 80
	healthBarHeight = 10
	healthBarLift   = 30
)

// HealthBar returns the red background and green fill of the bar drawn
// centered above box. The fill's width is health/maxHealth of the bar.
func HealthBar(box Rect, health, maxHealth Health) (background, foreground Rect) {
	x := box.X - healthBarWidth/2 + box.W/2
	y := box.Y - healthBarLift

	fraction := float32(0)
	if maxHealth > 0 {
		fraction = float32(min(max(health/maxHealth, 0), 1))
	}

	background = Rect{X: x, Y: y, W: healthBarWidth, H: healthBarHeight}
	foreground = Rect{X: x, Y: y, W: fraction * healthBarWidth, H: healthBarHeight}
	return background, foreground
}

// HealthBars calls fn with the bar geometry of every entity that has both
// health and a bounding box. Entities without health (the house) get none.
func (w *World) HealthBars(fn func(id ecs.EntityId, background, foreground Rect)) {
	maxHealth := Health(w.cfg.Character.MaxHealth)
	ecs.Each2(w.Healths, w.Boxes, func(id ecs.EntityId, health *Health, box *BoundingBox) {
		bg, fg := HealthBar(box.Rect, *health, maxHealth)
		fn(id, bg, fg)
	})
}
