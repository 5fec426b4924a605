package catalog

import (
	"strconv"
	"strings"
)

const defaultPrefix = "default-"

// Ref identifies an activity as either a default catalog entry or a stored
// custom activity. On the wire both are plain strings.
type Ref interface {
	String() string
	isRef()
}

type DefaultRef struct {
	Index int
}

func (r DefaultRef) String() string { return defaultPrefix + strconv.Itoa(r.Index) }
func (DefaultRef) isRef()           {}

// Entry resolves the reference against the catalog.
func (r DefaultRef) Entry() (Entry, bool) { return Default(r.Index) }

type CustomRef struct {
	ID string
}

func (r CustomRef) String() string { return r.ID }
func (CustomRef) isRef()           {}

// ParseRef decodes a wire id. Anything with the default prefix is a
// DefaultRef; an unparsable index yields Index -1, which resolves to nothing.
func ParseRef(id string) Ref {
	rest, ok := strings.CutPrefix(id, defaultPrefix)
	if !ok {
		return CustomRef{ID: id}
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		n = -1
	}
	return DefaultRef{Index: n}
}
