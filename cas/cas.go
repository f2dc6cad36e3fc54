package cas

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/brewin-lang/brewin/ast"
)

// CAS is a content addressed store for parsed programs. Refs map a name
// hash (such as the hash of a source text) to a content hash.
type CAS interface {
	Put(item Hashable) (Hash, error)
	Has(hash Hash) bool
	SetRef(name Hash, target Hash) error
	GetRef(name Hash) (Hash, bool, error)
}

type Serde interface {
	Serialize(w io.Writer) error
	Deserialize(r io.Reader) error
}

type Hashable interface {
	Serde
}

// directStore is implemented by every backend: raw access to typed entry
// bytes by hash.
type directStore interface {
	getValue(h Hash) (bool, []byte, error)
	putValue(h Hash, data []byte) error
}

type Hash uint64

func (h Hash) String() string {
	return fmt.Sprintf("0x%016x", uint64(h))
}

func Retrieve[T Hashable](c CAS, hash Hash) (T, error) {
	var t T
	v, ok := c.(directStore)
	if !ok {
		return t, errors.New("CAS does not support direct retrieval")
	}

	has, data, err := v.getValue(hash)
	if err != nil {
		return t, err
	}
	if !has {
		return t, fmt.Errorf("hash not found in CAS: %s", hash)
	}

	typedEntry := &TypedEntry{}
	err = typedEntry.Deserialize(bytes.NewReader(data))
	if err != nil {
		return t, fmt.Errorf("deserializing TypedEntry: %w", err)
	}

	// Whole programs are stored decomposed and have to be rebuilt.
	if _, isNode := any(t).(*ast.Node); isNode && typedEntry.TypeTag == programRefTag {
		n, err := recomposeProgram(v, hash)
		if err != nil {
			return t, fmt.Errorf("recomposing program: %w", err)
		}
		return any(n).(T), nil
	}

	instance, err := decodeEntry(typedEntry)
	if err != nil {
		return t, err
	}
	result, ok := instance.(T)
	if !ok {
		return t, fmt.Errorf("type mismatch: expected %T, got %T", t, instance)
	}
	return result, nil
}

// put stores item, decomposing program nodes so that identical struct and
// function definitions are shared between programs.
func put(s directStore, item Hashable) (Hash, error) {
	if n, ok := item.(*ast.Node); ok && n.Kind == "program" {
		return decomposeProgram(s, n)
	}
	return putDirect(s, item)
}
