package machine

// NullType is the type of null. Its only legal value is Null. (We represent
// it as a number, not struct{}, so that Null may be constant.)
type NullType byte

const Null = NullType(0)

// Null is a Value.
var _ Value = Null

func (NullType) String() string { return "null" }
func (NullType) Type() string   { return "null" }
