package we

import (
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
)

type Named interface {
	TypeName() string
}

// NameOf resolves the wire name of a value: an explicit TypeName, otherwise the
// snake cased type name without its package.
func NameOf(value any) string {
	if typed, ok := value.(Named); ok {
		return typed.TypeName()
	}

	t := reflect.TypeOf(value)
	if t == nil {
		return ""
	}

	split := strings.Split(t.String(), ".")
	name := strings.TrimLeft(split[len(split)-1], "*")

	return strcase.ToSnake(name)
}
