package cas

import (
	"io"

	"github.com/shamaton/msgpack/v2"
)

// ProgramRef is the CAS representation of a program node. Each struct and
// function definition is stored separately and referenced by hash.
type ProgramRef struct {
	StructHashes   []Hash
	FunctionHashes []Hash
}

func (p *ProgramRef) Serialize(w io.Writer) error {
	return msgpack.MarshalWrite(w, p)
}

func (p *ProgramRef) Deserialize(r io.Reader) error {
	return msgpack.UnmarshalRead(r, p)
}
