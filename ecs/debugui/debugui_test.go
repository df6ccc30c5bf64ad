package debugui

import (
	"reflect"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/worldsbelow/ecs"
)

type position struct {
	X, Y float32
}

type tag struct {
	Label  string
	Points []int
	Level  uint8
	Alive  bool
	Offset position
	next   *tag
	Parent *tag
}

func newBrowserStorage(t *testing.T) (*ecs.Storage, *ecs.ComponentStore[position], *ecs.ComponentStore[tag]) {
	t.Helper()
	storage := ecs.NewStorage(32)
	positions := ecs.RegisterComponent[position](storage)
	tags := ecs.RegisterComponent[tag](storage)
	return storage, positions, tags
}

func spawn(t *testing.T, storage *ecs.Storage, build func(id ecs.EntityId) error) ecs.EntityId {
	t.Helper()
	id, err := storage.Spawn(build)
	require.NoError(t, err)
	return id
}

type countingPanel struct {
	renders int
}

func (p *countingPanel) Render() { p.renders++ }

func TestOverlaySystemDefersPanels(t *testing.T) {
	storage := ecs.NewStorage(4)
	scheduler := ecs.NewScheduler(storage)
	a, b := &countingPanel{}, &countingPanel{}
	scheduler.Register(&OverlaySystem{Panels: []Panel{a, b}})

	require.NoError(t, scheduler.Once(time.Millisecond))
	require.NoError(t, scheduler.Once(time.Millisecond))

	assert.Equal(t, 2, a.renders)
	assert.Equal(t, 2, b.renders)
}

func TestEntityBrowserCache(t *testing.T) {
	storage, positions, tags := newBrowserStorage(t)
	first := spawn(t, storage, func(id ecs.EntityId) error { return positions.Add(id, position{}) })
	second := spawn(t, storage, func(id ecs.EntityId) error {
		if err := positions.Add(id, position{}); err != nil {
			return err
		}
		return tags.Add(id, tag{Label: "house"})
	})

	eb := NewEntityBrowser(storage, 10)
	eb.rebuildCacheIfNeeded()
	require.Len(t, eb.cache.entities, 2)

	info, ok := eb.Info(second)
	require.True(t, ok)
	assert.Equal(t, []string{"debugui.position", "debugui.tag"}, info.Components)

	// A component change alone invalidates the cache.
	require.NoError(t, tags.Add(first, tag{}))
	info, ok = eb.Info(first)
	require.True(t, ok)
	assert.Len(t, info.Components, 2)

	require.NoError(t, storage.Destroy(first))
	_, ok = eb.Info(first)
	assert.False(t, ok)
	assert.Len(t, eb.cache.entities, 1)
}

func TestEntityBrowserSortAndFilter(t *testing.T) {
	storage, positions, tags := newBrowserStorage(t)
	for i := 0; i < 5; i++ {
		spawn(t, storage, func(id ecs.EntityId) error {
			if id%2 == 0 {
				return tags.Add(id, tag{})
			}
			return positions.Add(id, position{})
		})
	}

	eb := NewEntityBrowser(storage, 10)
	eb.rebuildCacheIfNeeded()

	eb.cache.sortAscending = false
	eb.sortEntities()
	assert.Equal(t, ecs.EntityId(4), eb.cache.entities[0].ID)
	info, ok := eb.Info(4)
	require.True(t, ok)
	assert.Equal(t, ecs.EntityId(4), info.ID)

	eb.filterText = "TAG"
	assert.Len(t, eb.filteredEntities(), 3)

	eb.filterText = "3"
	filtered := eb.filteredEntities()
	require.Len(t, filtered, 1)
	assert.Equal(t, ecs.EntityId(3), filtered[0].ID)
}

func TestEntityBrowserPageBounds(t *testing.T) {
	storage, _, _ := newBrowserStorage(t)
	eb := NewEntityBrowser(storage, 10)

	start, end := eb.pageBounds(25)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)

	eb.currentPage = 2
	start, end = eb.pageBounds(25)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	// The list shrank under the current page.
	eb.currentPage = 5
	start, end = eb.pageBounds(3)
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)
	assert.Equal(t, 0, eb.currentPage)
}

func TestEntityBrowserSelectionAndDestroy(t *testing.T) {
	storage, positions, _ := newBrowserStorage(t)
	id := spawn(t, storage, func(id ecs.EntityId) error { return positions.Add(id, position{}) })

	eb := NewEntityBrowser(storage, 10)
	_, ok := eb.Selected()
	assert.False(t, ok)

	eb.Select(id)
	selected, ok := eb.Selected()
	require.True(t, ok)
	assert.Equal(t, id, selected)

	eb.OnDestroy = func(ecs.EntityId) error { return errors.New("refused") }
	eb.destroySelected()
	assert.Equal(t, "refused", eb.lastError)
	_, ok = eb.Selected()
	assert.True(t, ok)

	eb.OnDestroy = storage.Destroy
	eb.destroySelected()
	assert.Empty(t, eb.lastError)
	_, ok = eb.Selected()
	assert.False(t, ok)
	assert.False(t, storage.Entities().Alive(id))
}

func TestReflectionCacheFields(t *testing.T) {
	cache := NewReflectionCache()

	fields := cache.GetFields(reflect.TypeFor[tag]())
	var names []string
	for _, f := range fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Label", "Points", "Level", "Alive", "Offset"}, names)
	assert.True(t, fields[4].IsStruct)
	assert.Equal(t, 4, fields[4].Index)

	assert.Nil(t, cache.GetFields(reflect.TypeFor[float32]()))
	assert.Equal(t, fields, cache.GetFields(reflect.TypeFor[tag]()))
}

func TestSetters(t *testing.T) {
	v := struct {
		I int8
		U uint8
		F float32
	}{}
	val := reflect.ValueOf(&v).Elem()

	assert.True(t, setInt(val.Field(0), -5))
	assert.False(t, setInt(val.Field(0), 1000))
	assert.True(t, setUint(val.Field(1), 255))
	assert.False(t, setUint(val.Field(1), 256))
	assert.True(t, setFloat(val.Field(2), 1.5))
	assert.Equal(t, int8(-5), v.I)
	assert.Equal(t, uint8(255), v.U)
	assert.Equal(t, float32(1.5), v.F)

	readOnly := reflect.ValueOf(v).Field(0)
	assert.False(t, setInt(readOnly, 1))
}

func TestInspectorEditsStore(t *testing.T) {
	storage, positions, _ := newBrowserStorage(t)
	id := spawn(t, storage, func(id ecs.EntityId) error { return positions.Add(id, position{X: 1}) })

	components := storage.Inspect(id)
	require.Len(t, components, 1)
	val := reflect.ValueOf(components[0].Value).Elem()
	require.True(t, setFloat(val.Field(0), 9))

	assert.Equal(t, float32(9), positions.Get(id).X)
}

func TestPerformanceStatsHistory(t *testing.T) {
	storage := ecs.NewStorage(4)
	ps := NewPerformanceStats(storage, ecs.NewScheduler(storage), 4)

	assert.Equal(t, float32(0), ps.averageFrameTime())

	for _, dt := range []float32{0.010, 0.020, 0.010, 0.020, 0.030} {
		ps.record(dt)
	}
	// The oldest sample was overwritten: 30, 20, 10, 20.
	assert.InDelta(t, 20, float64(ps.averageFrameTime()), 1e-3)
	assert.Equal(t, 1, ps.frameIndex)
}
