package genid

// Kind selects the liveness strategy of an entity type.
type Kind uint8

const (
	// KindStatic entities are only ever appended and never killed.
	KindStatic Kind = iota + 1
	// KindDynamic entities may be killed and their slots reused.
	KindDynamic
)

func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// Entity is implemented by tag types that embed Static or Dynamic.
//
//	type Unit struct{ genid.Dynamic }
//	type Tile struct{ genid.Static }
type Entity interface {
	Kind() Kind
	entity()
}

// StaticEntity constrains a type parameter to append-only entity kinds.
type StaticEntity interface {
	Entity
	static()
}

// DynamicEntity constrains a type parameter to entity kinds that can be killed.
type DynamicEntity interface {
	Entity
	dynamic()
}

// Static marks an entity type as append-only.
type Static struct{}

func (Static) Kind() Kind { return KindStatic }
func (Static) entity()    {}
func (Static) static()    {}

// Dynamic marks an entity type whose handles carry a generation.
type Dynamic struct{}

func (Dynamic) Kind() Kind { return KindDynamic }
func (Dynamic) entity()    {}
func (Dynamic) dynamic()   {}

// KindOf reports the liveness strategy of E.
func KindOf[E Entity]() Kind {
	var e E
	return e.Kind()
}

// EntityName returns the Go type name of E, used in logs and panics.
func EntityName[E Entity]() string {
	var e E
	return typeName(e)
}
