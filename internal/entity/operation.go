package entity

import (
	"fmt"
	"math"
)

// Operation selects the element-wise operator of band arithmetic.
type Operation int

const (
	OpAdd Operation = iota + 1
	OpSubtract
	OpMultiply
	OpDivide
)

var operationNames = map[Operation]string{
	OpAdd:      "add",
	OpSubtract: "subtract",
	OpMultiply: "multiply",
	OpDivide:   "divide",
}

// Operations lists the supported operators in display order.
func Operations() []Operation {
	return []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide}
}

// ParseOperation is case sensitive, matching the names returned by String.
func ParseOperation(s string) (Operation, error) {
	for op, name := range operationNames {
		if name == s {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedOperation, s)
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

func (o Operation) Valid() bool {
	_, ok := operationNames[o]
	return ok
}

// Adjustment holds the brightness and contrast factors of a color adjustment.
type Adjustment struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
}

func DefaultAdjustment() Adjustment {
	return Adjustment{Brightness: 1.0, Contrast: 1.0}
}

func (a Adjustment) Validate() error {
	if !validFactor(a.Brightness) {
		return fmt.Errorf("%w: brightness %v", ErrInvalidAdjustment, a.Brightness)
	}
	if !validFactor(a.Contrast) {
		return fmt.Errorf("%w: contrast %v", ErrInvalidAdjustment, a.Contrast)
	}
	return nil
}

func validFactor(f float64) bool {
	return f >= 0 && !math.IsInf(f, 1)
}
