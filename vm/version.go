package vm

import (
	"fmt"
	"strings"
)

// Version selects one of the four Brewin language revisions.
type Version int

const (
	V1 Version = iota + 1
	V2
	V3
	V4
)

func (v Version) String() string {
	return fmt.Sprintf("v%d", int(v))
}

func ParseVersion(s string) (Version, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "v") {
	case "1":
		return V1, nil
	case "2":
		return V2, nil
	case "3":
		return V3, nil
	case "4":
		return V4, nil
	}
	return 0, fmt.Errorf("Unknown Brewin version %q", s)
}

// Features lists what a version supports.
type Features struct {
	UserFunctions   bool
	StaticTypes     bool
	Lazy            bool
	Exceptions      bool
	ShortCircuit    bool
	CoerceIntToBool bool
	DivZeroRaises   bool
}

func (v Version) Features() Features {
	switch v {
	case V1:
		return Features{}
	case V2:
		return Features{UserFunctions: true}
	case V3:
		return Features{UserFunctions: true, StaticTypes: true, CoerceIntToBool: true}
	case V4:
		return Features{UserFunctions: true, Lazy: true, Exceptions: true, ShortCircuit: true, DivZeroRaises: true}
	}
	return Features{}
}
