package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/kamstrup/intmap"

	"github.com/plus3/worldsbelow/ecs"
)

type EntityInfo struct {
	ID         ecs.EntityId
	Components []string
}

// cacheKey changes whenever an entity or a component is added or removed.
type cacheKey struct {
	count      int
	live       int
	components int
}

type entityBrowserCache struct {
	entities      []EntityInfo
	byID          *intmap.Map[ecs.EntityId, int]
	key           cacheKey
	sortColumn    int
	sortAscending bool
}

// EntityBrowser lists live entities with the stores they appear in.
type EntityBrowser struct {
	storage            *ecs.Storage
	cache              *entityBrowserCache
	selectedEntityId   ecs.EntityId
	hasSelection       bool
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
	lastError          string

	// OnDestroy, if set, is offered as a button for the selected entity.
	OnDestroy func(ecs.EntityId) error
}

func NewEntityBrowser(storage *ecs.Storage, maxEntitiesPerPage int) *EntityBrowser {
	return &EntityBrowser{
		storage: storage,
		cache: &entityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowser) Render() {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildCacheIfNeeded()

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	if id, ok := eb.Selected(); ok && eb.OnDestroy != nil {
		imgui.SameLine()
		if imgui.Button(fmt.Sprintf("Destroy %d", id)) {
			eb.destroySelected()
		}
	}
	if eb.lastError != "" {
		imgui.Text(eb.lastError)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
		}

		filtered := eb.filteredEntities()
		start, end := eb.pageBounds(len(filtered))

		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.hasSelection && eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.Select(entity.ID)
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.Components, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(entity.Components)))
		}

		imgui.EndTable()
	}

	filtered := eb.filteredEntities()
	if len(filtered) > eb.maxEntitiesPerPage {
		totalPages := (len(filtered) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// Select marks id as the browser's selection.
func (eb *EntityBrowser) Select(id ecs.EntityId) {
	eb.selectedEntityId = id
	eb.hasSelection = true
}

// Selected returns the selected entity while it is still alive.
func (eb *EntityBrowser) Selected() (ecs.EntityId, bool) {
	if !eb.hasSelection || !eb.storage.Entities().Alive(eb.selectedEntityId) {
		return 0, false
	}
	return eb.selectedEntityId, true
}

func (eb *EntityBrowser) destroySelected() {
	id, ok := eb.Selected()
	if !ok {
		return
	}
	if err := eb.OnDestroy(id); err != nil {
		eb.lastError = err.Error()
		return
	}
	eb.lastError = ""
	eb.hasSelection = false
	eb.cache.entities = nil
}

func (eb *EntityBrowser) pageBounds(n int) (int, int) {
	start := eb.currentPage * eb.maxEntitiesPerPage
	if start > n {
		eb.currentPage = 0
		start = 0
	}
	end := start + eb.maxEntitiesPerPage
	if end > n {
		end = n
	}
	return start, end
}

func (eb *EntityBrowser) currentKey() cacheKey {
	stats := eb.storage.CollectStats()
	key := cacheKey{count: stats.EntityCount, live: stats.LiveEntities}
	for _, store := range stats.Stores {
		key.components += store.Count
	}
	return key
}

func (eb *EntityBrowser) rebuildCacheIfNeeded() {
	key := eb.currentKey()
	if eb.cache.key != key {
		eb.cache.entities = nil
		eb.cache.key = key
	}

	if eb.cache.entities == nil {
		eb.rebuildCache()
	}
}

func (eb *EntityBrowser) rebuildCache() {
	registry := eb.storage.Entities()
	eb.cache.entities = make([]EntityInfo, 0, registry.Live())

	for i := 0; i < registry.Count(); i++ {
		id := ecs.EntityId(i)
		if !registry.Alive(id) {
			continue
		}
		eb.cache.entities = append(eb.cache.entities, EntityInfo{
			ID:         id,
			Components: eb.storage.Components(id),
		})
	}

	eb.sortEntities()
}

func (eb *EntityBrowser) sortEntities() {
	sort.Slice(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		var less bool

		switch eb.cache.sortColumn {
		case 1:
			less = strings.Join(a.Components, ",") < strings.Join(b.Components, ",")
		case 2:
			less = len(a.Components) < len(b.Components)
		default:
			less = a.ID < b.ID
		}

		if !eb.cache.sortAscending {
			return !less
		}
		return less
	})

	eb.cache.byID = intmap.New[ecs.EntityId, int](len(eb.cache.entities))
	for i, entity := range eb.cache.entities {
		eb.cache.byID.Put(entity.ID, i)
	}
}

// Info returns the cached row for id.
func (eb *EntityBrowser) Info(id ecs.EntityId) (EntityInfo, bool) {
	eb.rebuildCacheIfNeeded()
	i, ok := eb.cache.byID.Get(id)
	if !ok {
		return EntityInfo{}, false
	}
	return eb.cache.entities[i], true
}

func (eb *EntityBrowser) filteredEntities() []EntityInfo {
	if eb.filterText == "" {
		return eb.cache.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.cache.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.cache.entities {
		idStr := fmt.Sprintf("%d", entity.ID)
		componentsStr := strings.ToLower(strings.Join(entity.Components, " "))

		if !strings.Contains(idStr, filterLower) && !strings.Contains(componentsStr, filterLower) {
			continue
		}
		filtered = append(filtered, entity)
	}

	return filtered
}
