package slumber

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/df-mc/dragonfly/server/world"
)

var (
	txType       = reflect.TypeFor[*world.Tx]()
	worldType    = reflect.TypeFor[*world.World]()
	managerType  = reflect.TypeFor[*Manager]()
	sessionsType = reflect.TypeFor[[]*Session]()
	tickType     = reflect.TypeFor[*Tick]()
)

// SystemMeta holds pre-computed metadata about a system type.
// This is computed once at registration time and reused for all executions.
type SystemMeta struct {
	// Type is the reflect.Type of the system struct
	Type reflect.Type

	// Name is the type name for debugging
	Name string

	// Stage is the execution stage
	Stage Stage

	// RequireMask is the bitmask of components injected sessions must carry (With[T])
	RequireMask Bitmask

	// ExcludeMask is the bitmask of components injected sessions must not carry (Without[T])
	ExcludeMask Bitmask

	// Fields holds injection metadata for each field
	Fields []FieldMeta

	// Pool is the sync.Pool for this system type
	Pool *sync.Pool

	// Bundle is the bundle this system belongs to
	Bundle *Bundle
}

// FieldMeta holds metadata about a single injectable field.
type FieldMeta struct {
	// Index is the field index in the struct
	Index int

	// Name is the field name for debugging
	Name string

	// Kind is the type of field (resource, tx, etc.)
	Kind FieldKind

	// ResourceType is the element type of resource fields
	ResourceType reflect.Type

	// Optional indicates the field can be nil
	Optional bool

	// Mutable indicates the field has write access
	Mutable bool
}

// analyzeSystem analyzes a system type and returns its metadata.
// Phantom component types are registered with registry.
func analyzeSystem(systemType reflect.Type, bundle *Bundle, registry *componentRegistry) (*SystemMeta, error) {
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	if systemType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("system must be a struct, got %v", systemType.Kind())
	}
	if !reflect.PointerTo(systemType).Implements(reflect.TypeFor[Runnable]()) {
		return nil, fmt.Errorf("system %s does not implement Runnable", systemType.Name())
	}

	meta := &SystemMeta{
		Type:   systemType,
		Name:   systemType.Name(),
		Bundle: bundle,
		Pool: &sync.Pool{
			New: func() any {
				return reflect.New(systemType).Interface()
			},
		},
	}

	for i := 0; i < systemType.NumField(); i++ {
		field := systemType.Field(i)
		tag := parseTag(field.Tag.Get(tagName))

		fieldMeta := FieldMeta{
			Index:    i,
			Name:     field.Name,
			Optional: tag.Optional,
			Mutable:  tag.Mutable,
		}

		if compType, isWithout, ok := getPhantomInfo(field.Type); ok {
			id := registry.register(compType)
			if isWithout {
				fieldMeta.Kind = KindPhantomWithout
				meta.ExcludeMask.Set(id)
			} else {
				fieldMeta.Kind = KindPhantomWith
				meta.RequireMask.Set(id)
			}
			meta.Fields = append(meta.Fields, fieldMeta)
			continue
		}

		if tag.Resource {
			if !field.IsExported() {
				return nil, fmt.Errorf("system %s: resource field %s must be exported", meta.Name, field.Name)
			}
			if field.Type.Kind() != reflect.Ptr {
				return nil, fmt.Errorf("system %s: resource field %s must be a pointer", meta.Name, field.Name)
			}
			fieldMeta.Kind = KindResource
			fieldMeta.ResourceType = field.Type.Elem()
			meta.Fields = append(meta.Fields, fieldMeta)
			continue
		}

		switch field.Type {
		case txType:
			fieldMeta.Kind = KindTx
		case worldType:
			fieldMeta.Kind = KindWorld
		case managerType:
			fieldMeta.Kind = KindManager
		case sessionsType:
			fieldMeta.Kind = KindSessions
		case tickType:
			fieldMeta.Kind = KindTick
		default:
			fieldMeta.Kind = KindPayload
		}
		if !field.IsExported() {
			if fieldMeta.Kind != KindPayload {
				return nil, fmt.Errorf("system %s: injected field %s must be exported", meta.Name, field.Name)
			}
			// Unexported payload is left alone.
			continue
		}
		meta.Fields = append(meta.Fields, fieldMeta)
	}

	return meta, nil
}

// checkWriters returns an error if two systems of the same stage declare
// mutable access to the same resource. Systems of a stage have no order
// between them, so only one may write a given resource.
func checkWriters(metas []*SystemMeta) error {
	type key struct {
		stage Stage
		res   reflect.Type
	}
	writers := make(map[key]string)
	for _, meta := range metas {
		for _, f := range meta.Fields {
			if f.Kind != KindResource || !f.Mutable {
				continue
			}
			k := key{stage: meta.Stage, res: f.ResourceType}
			if other, ok := writers[k]; ok && other != meta.Name {
				return fmt.Errorf("systems %s and %s both write %s in stage %s", other, meta.Name, f.ResourceType, meta.Stage)
			}
			writers[k] = meta.Name
		}
	}
	return nil
}
