package terrain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension reports a grid size the requested operation
	// cannot work with.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrDegenerateScale reports a zero world scale that would divide by
	// zero while deriving normals.
	ErrDegenerateScale = errors.New("degenerate scale")

	// ErrInvalidParameter reports a generation parameter outside its domain.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrStrategyConflict reports an attempt to write heights with a second
	// synthesizer after another one already populated the field.
	ErrStrategyConflict = errors.New("strategy conflict")
)

// ParamError carries the offending parameter and the violated constraint.
// It unwraps to one of the sentinel errors above.
type ParamError struct {
	Param      string
	Value      any
	Constraint string
	Err        error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%v: %s=%v %s", e.Err, e.Param, e.Value, e.Constraint)
}

func (e *ParamError) Unwrap() error { return e.Err }
