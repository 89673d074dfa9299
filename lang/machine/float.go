package machine

import (
	"fmt"
)

// Float is the type of a floating point number. It is not Ordered: NaN
// compares false with every number under <, <=, > and >=, which a three-way
// comparison cannot express.
type Float float64

var _ Value = Float(0)

func (f Float) String() string {
	return fmt.Sprintf("%g", float64(f))
}

func (f Float) Type() string { return "float" }
