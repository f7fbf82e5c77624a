package ecs

import (
	"reflect"
	"sync"
)

var (
	cloneableType = reflect.TypeFor[Cloneable]()
	baseType      = reflect.TypeFor[Base]()
)

// FieldInfo describes one field of a component struct.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	Exported  bool
	IsPointer bool
	IsStruct  bool
	IsSlice   bool
	IsMap     bool
	// Cloneable is set when the field may hold a value implementing Cloneable,
	// either statically or, for interface fields, at runtime.
	Cloneable bool
}

// ReflectionCache memoizes the field layout of component struct types.
type ReflectionCache struct {
	mu         sync.RWMutex
	fieldCache map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fieldCache: make(map[reflect.Type][]FieldInfo),
	}
}

// GetFields returns the fields of struct type t, skipping the embedded Base.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fieldCache[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.fieldCache[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if field.Type == baseType {
				continue
			}

			fieldType := field.Type
			isPointer := fieldType.Kind() == reflect.Ptr
			elemType := fieldType
			if isPointer {
				elemType = fieldType.Elem()
			}

			fields = append(fields, FieldInfo{
				Name:      field.Name,
				Type:      fieldType,
				Index:     i,
				Exported:  field.IsExported(),
				IsPointer: isPointer,
				IsStruct:  elemType.Kind() == reflect.Struct,
				IsSlice:   elemType.Kind() == reflect.Slice,
				IsMap:     elemType.Kind() == reflect.Map,
				Cloneable: mayBeCloneable(fieldType),
			})
		}
	}

	rc.fieldCache[t] = fields
	return fields
}

func mayBeCloneable(t reflect.Type) bool {
	if t.Kind() == reflect.Interface {
		return true
	}
	if t.Implements(cloneableType) {
		return true
	}
	return t.Kind() != reflect.Ptr && reflect.PointerTo(t).Implements(cloneableType)
}

// Fields is the process-wide cache used by CloneComponent and the debug UI.
var Fields = NewReflectionCache()
