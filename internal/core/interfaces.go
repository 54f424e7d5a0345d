package core

// Marshaler encodes a value into bytes.
type Marshaler interface {
	Marshal(v any) ([]byte, error)
}
