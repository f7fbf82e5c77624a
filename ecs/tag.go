package ecs

// Symbol is an identifier-like tag payload, kept distinct from free text.
type Symbol string

// TagValue lists the scalar payloads a TagComponent may carry.
type TagValue interface {
	~string | ~int | ~int64 | ~float64 | ~bool
}

// TagComponent labels an entity with a type and an optional scalar value. It
// has no behavior and is immutable after construction.
type TagComponent struct {
	Base
	value any
}

// NewTag returns a marker component without a payload.
func NewTag(typ ComponentType) *TagComponent {
	return &TagComponent{Base: NewBase(typ)}
}

// NewValueTag returns a tag carrying value.
func NewValueTag[V TagValue](typ ComponentType, value V) *TagComponent {
	return &TagComponent{Base: NewBase(typ), value: value}
}

// Value returns the payload and whether one was set.
func (t *TagComponent) Value() (any, bool) {
	return t.value, t.value != nil
}

func (t *TagComponent) Clone() (Component, error) {
	return CloneComponent(t)
}

// TagValueOf returns the payload of t if it has type V.
func TagValueOf[V TagValue](t *TagComponent) (V, bool) {
	v, ok := t.value.(V)
	return v, ok
}
