package signal

import "fmt"

// Kind enumerates the payload shapes a wire can carry.
type Kind int

const (
	KindInvalid Kind = iota
	KindUInt
	KindSInt
	KindBool
	KindVec
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindUInt:
		return "uint"
	case KindSInt:
		return "sint"
	case KindBool:
		return "bool"
	case KindVec:
		return "vec"
	default:
		return "invalid"
	}
}

// Type describes the shape of a signal payload. The zero value is invalid;
// use the constructors. Types are plain values and safe to copy.
type Type struct {
	kind  Kind
	width int
	size  int
	elem  *Type
}

// UInt returns an unsigned integer type of the given bit width.
// It panics if width is not positive.
func UInt(width int) Type {
	if width < 1 {
		panic(fmt.Sprintf("signal: uint width must be positive, got %d", width))
	}
	return Type{kind: KindUInt, width: width}
}

// SInt returns a signed integer type of the given bit width.
// It panics if width is not positive.
func SInt(width int) Type {
	if width < 1 {
		panic(fmt.Sprintf("signal: sint width must be positive, got %d", width))
	}
	return Type{kind: KindSInt, width: width}
}

// Bool returns the single-bit boolean type.
func Bool() Type {
	return Type{kind: KindBool, width: 1}
}

// Vec returns a vector of size elements of the given element type.
// It panics if size is not positive or elem is invalid.
func Vec(size int, elem Type) Type {
	if size < 1 {
		panic(fmt.Sprintf("signal: vec size must be positive, got %d", size))
	}
	if elem.kind == KindInvalid {
		panic("signal: vec element type is invalid")
	}
	e := elem
	return Type{kind: KindVec, size: size, elem: &e}
}

// Kind reports the payload shape.
func (t Type) Kind() Kind { return t.kind }

// Valid reports whether t was produced by one of the constructors.
func (t Type) Valid() bool { return t.kind != KindInvalid }

// Width returns the declared bit width for integer kinds and 1 for bool.
// For vectors it returns the element count; use BitWidth for total bits.
func (t Type) Width() int {
	if t.kind == KindVec {
		return t.size
	}
	return t.width
}

// Elem returns the element type of a vector, or an invalid Type otherwise.
func (t Type) Elem() Type {
	if t.kind != KindVec || t.elem == nil {
		return Type{}
	}
	return *t.elem
}

// BitWidth returns the total number of bits the type occupies.
func (t Type) BitWidth() int {
	switch t.kind {
	case KindUInt, KindSInt, KindBool:
		return t.width
	case KindVec:
		return t.size * t.elem.BitWidth()
	default:
		return 0
	}
}

// Equal reports whether two types have identical shape.
func (t Type) Equal(o Type) bool {
	if t.kind != o.kind {
		return false
	}
	switch t.kind {
	case KindVec:
		return t.size == o.size && t.elem.Equal(*o.elem)
	default:
		return t.width == o.width
	}
}

// String renders the type in the form used by logs and export reports,
// e.g. "uint<8>" or "vec<4 x bool>".
func (t Type) String() string {
	switch t.kind {
	case KindUInt:
		return fmt.Sprintf("uint<%d>", t.width)
	case KindSInt:
		return fmt.Sprintf("sint<%d>", t.width)
	case KindBool:
		return "bool"
	case KindVec:
		return fmt.Sprintf("vec<%d x %s>", t.size, t.elem)
	default:
		return "invalid"
	}
}
