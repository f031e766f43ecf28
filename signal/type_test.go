package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType_Constructors(t *testing.T) {
	testCases := []struct {
		name      string
		typ       Type
		wantKind  Kind
		wantBits  int
		wantsText string
	}{
		{"uint8", UInt(8), KindUInt, 8, "uint<8>"},
		{"sint16", SInt(16), KindSInt, 16, "sint<16>"},
		{"bool", Bool(), KindBool, 1, "bool"},
		{"vec of uint", Vec(4, UInt(8)), KindVec, 32, "vec<4 x uint<8>>"},
		{"nested vec", Vec(2, Vec(3, Bool())), KindVec, 6, "vec<2 x vec<3 x bool>>"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantKind, tc.typ.Kind())
			assert.Equal(t, tc.wantBits, tc.typ.BitWidth())
			assert.Equal(t, tc.wantsText, tc.typ.String())
			assert.True(t, tc.typ.Valid())
		})
	}
}

func TestType_ConstructorPanics(t *testing.T) {
	assert.Panics(t, func() { UInt(0) }, "zero-width uint must panic")
	assert.Panics(t, func() { SInt(-1) }, "negative-width sint must panic")
	assert.Panics(t, func() { Vec(0, Bool()) }, "empty vec must panic")
	assert.Panics(t, func() { Vec(2, Type{}) }, "vec of invalid element must panic")
}

func TestType_Equal(t *testing.T) {
	assert.True(t, UInt(8).Equal(UInt(8)))
	assert.False(t, UInt(8).Equal(UInt(9)))
	assert.False(t, UInt(8).Equal(SInt(8)), "sign matters")
	assert.True(t, Vec(4, UInt(8)).Equal(Vec(4, UInt(8))))
	assert.False(t, Vec(4, UInt(8)).Equal(Vec(3, UInt(8))))
	assert.False(t, Vec(4, UInt(8)).Equal(Vec(4, UInt(16))))
	assert.False(t, Bool().Equal(Type{}))
}

func TestType_VecAccessors(t *testing.T) {
	v := Vec(4, SInt(12))

	require.Equal(t, 4, v.Width(), "Width of a vec is its element count")
	assert.True(t, v.Elem().Equal(SInt(12)))
	assert.False(t, UInt(8).Elem().Valid(), "non-vec has no element type")
}

func TestType_ZeroValueIsInvalid(t *testing.T) {
	var zero Type

	assert.False(t, zero.Valid())
	assert.Equal(t, 0, zero.BitWidth())
	assert.Equal(t, "invalid", zero.String())
}
