package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/worldsbelow/ecs"
)

// ComponentInspector shows and edits the components of the entity picked by
// selection. Edits write straight into the component stores.
type ComponentInspector struct {
	storage   *ecs.Storage
	selection func() (ecs.EntityId, bool)
}

func NewComponentInspector(storage *ecs.Storage, selection func() (ecs.EntityId, bool)) *ComponentInspector {
	return &ComponentInspector{storage: storage, selection: selection}
}

func (ci *ComponentInspector) Render() {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	id, ok := ci.selection()
	if !ok {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", id))
	imgui.Separator()

	for _, component := range ci.storage.Inspect(id) {
		if imgui.TreeNodeStr(component.Name) {
			val := reflect.ValueOf(component.Value).Elem()
			ci.renderField(component.Name, val)
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (ci *ComponentInspector) renderField(name string, val reflect.Value) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) {
			setInt(val, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 {
			setUint(val, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) {
			setFloat(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		imgui.Text(fmt.Sprintf("%s: %s", name, val.String()))

	case reflect.Struct:
		for _, field := range globalReflectionCache.GetFields(val.Type()) {
			fieldVal := val.Field(field.Index)
			if field.IsStruct {
				if imgui.TreeNodeStr(field.Name) {
					ci.renderField(field.Name, fieldVal)
					imgui.TreePop()
				}
				continue
			}
			ci.renderField(field.Name, fieldVal)
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

// setInt stores v into val unless val is read-only or v does not fit.
func setInt(val reflect.Value, v int64) bool {
	if !val.CanSet() || val.OverflowInt(v) {
		return false
	}
	val.SetInt(v)
	return true
}

func setUint(val reflect.Value, v uint64) bool {
	if !val.CanSet() || val.OverflowUint(v) {
		return false
	}
	val.SetUint(v)
	return true
}

func setFloat(val reflect.Value, v float64) bool {
	if !val.CanSet() || val.OverflowFloat(v) {
		return false
	}
	val.SetFloat(v)
	return true
}
