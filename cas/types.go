package cas

import (
	"bytes"
	"fmt"
	"io"
	"reflect"

	"github.com/dgryski/go-farm"
	"github.com/shamaton/msgpack/v2"

	"github.com/brewin-lang/brewin/ast"
)

// TypedEntry wraps a Hashable with a type tag for deserialization
type TypedEntry struct {
	TypeTag string
	Data    []byte
}

func (t *TypedEntry) Serialize(w io.Writer) error {
	return msgpack.MarshalWrite(w, t)
}

func (t *TypedEntry) Deserialize(r io.Reader) error {
	return msgpack.UnmarshalRead(r, t)
}

const programRefTag = "ProgramRef"

// typeRegistry maps type tags to the pointer type to allocate on decode
var typeRegistry = make(map[string]reflect.Type)

func registerType(tag string, example Hashable) {
	typeRegistry[tag] = reflect.TypeOf(example)
}

func init() {
	registerType("Node", &ast.Node{})
	registerType(programRefTag, &ProgramRef{})
}

func getTypeTag(item Hashable) string {
	t := reflect.TypeOf(item)
	for tag, regType := range typeRegistry {
		if t == regType {
			return tag
		}
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

func decodeEntry(e *TypedEntry) (Hashable, error) {
	regType, ok := typeRegistry[e.TypeTag]
	if !ok {
		return nil, fmt.Errorf("unknown type tag: %s", e.TypeTag)
	}
	instance := reflect.New(regType.Elem()).Interface().(Hashable)
	if err := instance.Deserialize(bytes.NewReader(e.Data)); err != nil {
		return nil, fmt.Errorf("deserializing %s: %w", e.TypeTag, err)
	}
	return instance, nil
}

// putDirect serializes item, wraps it in a TypedEntry and stores it under
// the hash of the item's own bytes.
func putDirect(s directStore, item Hashable) (Hash, error) {
	var buf bytes.Buffer
	if err := item.Serialize(&buf); err != nil {
		return 0, fmt.Errorf("serializing item: %w", err)
	}
	data := buf.Bytes()
	h := Hash(farm.Hash64(data))

	entry := &TypedEntry{
		TypeTag: getTypeTag(item),
		Data:    data,
	}
	var entryBuf bytes.Buffer
	if err := entry.Serialize(&entryBuf); err != nil {
		return 0, fmt.Errorf("serializing typed entry: %w", err)
	}
	if err := s.putValue(h, entryBuf.Bytes()); err != nil {
		return 0, err
	}
	return h, nil
}

func getDirect[T Hashable](s directStore, hash Hash) (T, error) {
	var zero T
	has, data, err := s.getValue(hash)
	if err != nil {
		return zero, err
	}
	if !has {
		return zero, fmt.Errorf("hash not found in CAS: %s", hash)
	}
	entry := &TypedEntry{}
	if err := entry.Deserialize(bytes.NewReader(data)); err != nil {
		return zero, fmt.Errorf("deserializing TypedEntry: %w", err)
	}
	instance, err := decodeEntry(entry)
	if err != nil {
		return zero, err
	}
	result, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("type mismatch: expected %T, got %T", zero, instance)
	}
	return result, nil
}
