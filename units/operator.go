package units

import (
	"errors"
	"fmt"
)

// Operator is one of the six threshold comparison operators.
type Operator string

const (
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
	OpGreater      Operator = ">"
	OpGreaterEqual Operator = ">="
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
)

// ErrUnknownOperator is returned by ParseOperator for unrecognized symbols.
var ErrUnknownOperator = errors.New("unknown comparison operator")

// ParseOperator validates an operator symbol.
func ParseOperator(symbol string) (Operator, error) {
	switch op := Operator(symbol); op {
	case OpLess, OpLessEqual, OpGreater, OpGreaterEqual, OpEqual, OpNotEqual:
		return op, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOperator, symbol)
	}
}

// Compare applies the operator with the measured value on the left and the
// threshold on the right. All six operators are oriented
// measurement-versus-threshold, never the reverse.
func (op Operator) Compare(measured, threshold float64) bool {
	switch op {
	case OpLess:
		return measured < threshold
	case OpLessEqual:
		return measured <= threshold
	case OpGreater:
		return measured > threshold
	case OpGreaterEqual:
		return measured >= threshold
	case OpEqual:
		return measured == threshold
	case OpNotEqual:
		return measured != threshold
	default:
		return false
	}
}

// String returns the operator symbol.
func (op Operator) String() string { return string(op) }
