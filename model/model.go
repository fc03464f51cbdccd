// Package model describes the entities a generation works on.
//
// The descriptors are read-only once loaded: the target resolver only reads
// the entity class name, and the SQL statement builder reads the table name
// and the ordered attributes with their key and auto-increment flags.
package model

import (
	"sort"

	"github.com/syssam/tgen"
)

// Attribute describes one attribute of an entity and its database column.
type Attribute struct {
	Name            string `yaml:"name" json:"name"`
	Type            string `yaml:"type,omitempty" json:"type,omitempty"`
	DatabaseName    string `yaml:"column,omitempty" json:"column,omitempty"`
	DatabaseType    string `yaml:"columnType,omitempty" json:"columnType,omitempty"`
	Key             bool   `yaml:"key,omitempty" json:"key,omitempty"`
	AutoIncremented bool   `yaml:"autoIncremented,omitempty" json:"autoIncremented,omitempty"`
	NotNull         bool   `yaml:"notNull,omitempty" json:"notNull,omitempty"`
}

// Entity describes a model entity mapped on a database table.
type Entity struct {
	ClassName     string       `yaml:"class" json:"class"`
	DatabaseTable string       `yaml:"table,omitempty" json:"table,omitempty"`
	Attributes    []*Attribute `yaml:"attributes" json:"attributes"`
}

// Attribute returns the attribute with the given name, or nil.
func (e *Entity) Attribute(name string) *Attribute {
	for _, a := range e.Attributes {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// KeyAttributes returns the attributes that are part of the primary key,
// in declaration order.
func (e *Entity) KeyAttributes() []*Attribute {
	var keys []*Attribute
	for _, a := range e.Attributes {
		if a.Key {
			keys = append(keys, a)
		}
	}
	return keys
}

// HasCompositeKey reports whether the primary key has more than one attribute.
func (e *Entity) HasCompositeKey() bool {
	return len(e.KeyAttributes()) > 1
}

// HasAutoIncrementedKey reports whether a key attribute is auto-incremented.
func (e *Entity) HasAutoIncrementedKey() bool {
	for _, a := range e.Attributes {
		if a.Key && a.AutoIncremented {
			return true
		}
	}
	return false
}

// Model is a named set of entities.
type Model struct {
	Name     string    `yaml:"name,omitempty" json:"name,omitempty"`
	Entities []*Entity `yaml:"entities" json:"entities"`
}

// Entity returns the entity with the given class name.
func (m *Model) Entity(className string) (*Entity, error) {
	for _, e := range m.Entities {
		if e.ClassName == className {
			return e, nil
		}
	}
	return nil, tgen.NewNotFoundError("entity", className)
}

// Names returns the sorted entity class names.
func (m *Model) Names() []string {
	names := make([]string, 0, len(m.Entities))
	for _, e := range m.Entities {
		names = append(names, e.ClassName)
	}
	sort.Strings(names)
	return names
}

// Select returns the entities with the given class names, in the given
// order. An empty selection returns every entity.
func (m *Model) Select(classNames ...string) ([]*Entity, error) {
	if len(classNames) == 0 {
		return append([]*Entity(nil), m.Entities...), nil
	}
	entities := make([]*Entity, 0, len(classNames))
	for _, name := range classNames {
		e, err := m.Entity(name)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}
