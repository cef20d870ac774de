package we

type EntityType string

func (et EntityType) String() string {
	return string(et)
}

type EntityTyped interface {
	EntityType() EntityType
}

func EntityTypeOf(state any) EntityType {
	if named, ok := state.(EntityTyped); ok {
		return named.EntityType()
	}

	return EntityType(NameOf(state))
}

// Entity is a snapshot of stored state taken while the store was held.
type Entity[T any] struct {
	Revision Revision
	Type     EntityType
	State    T
}

func (e *Entity[T]) Initialized() bool {
	return e.Revision != InitialRevision
}
