package actor

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// Id uniquely identifies an actor or lite-task instance for the lifetime of
// the process. It is comparable and safe to use as a map key, clone freely,
// and pass across goroutines.
type Id struct {
	tag string
	raw uuid.UUID
}

// newId allocates a fresh Id tagged with the type name of the supplied actor
// or task value.
func newId(tagged any) Id {
	return Id{
		tag: typeTag(tagged),
		raw: uuid.New(),
	}
}

func typeTag(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}
	return t.Name()
}

// String returns a human-readable "Tag#uuid" representation of the Id.
func (id Id) String() string {
	return fmt.Sprintf("%s#%s", id.tag, id.raw)
}

// Tag returns the type tag the Id was created with.
func (id Id) Tag() string {
	return id.tag
}
