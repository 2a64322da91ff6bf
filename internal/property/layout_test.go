package property

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// layoutSamples holds one value of every declarable type.
func layoutSamples() []Property {
	return []Property{
		Bool(true),
		Char('z'),
		Short(-2),
		Int(math.MinInt32),
		Long(math.MaxInt64),
		Float(3.14),
		Double(-0.001),
		Bytes{0, 1, 255},
		Bytes{},
		String("héllo"),
		String(""),
		Date("2000-01-01"),
		ListInt{1, -1},
		ListLong{},
		ListFloat{0.5, 2},
		ListDouble{1e300},
		ListString{"ab", "", "c"},
		ListString{},
		ListBytes{{1}, {}, {2, 3}},
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	for _, p := range layoutSamples() {
		dt, ok := TypeOf(p)
		require.True(t, ok)
		t.Run(Format(p), func(t *testing.T) {
			got, err := DecodeTransport(dt, ToBytes(p))
			require.NoError(t, err)
			assert.True(t, Equal(p, got), "transport: %s", Format(got))

			got, err = DecodeStorage(dt, ToVec(p))
			require.NoError(t, err)
			assert.True(t, Equal(p, got), "storage: %s", Format(got))
		})
	}
}

func TestTransportBytes(t *testing.T) {
	assert.Equal(t, []byte{0xff, 0xfe}, ToBytes(Short(-2)))
	assert.Equal(t, []byte{1}, ToBytes(Bool(true)))
	assert.Equal(t, []byte{0, 0, 0, 2, 'a', 'b'}, ToBytes(String("ab")))
	assert.Equal(t, []byte{0, 0, 0, 2, 0, 0, 0, 1, 0xff, 0xff, 0xff, 0xff}, ToBytes(ListInt{1, -1}))
	assert.Equal(t,
		[]byte{0, 0, 0, 2, 0, 0, 0, 2, 'a', 'b', 0, 0, 0, 1, 'c'},
		ToBytes(ListString{"ab", "c"}))
}

func TestStorageBytes(t *testing.T) {
	assert.Equal(t, []byte("ab"), ToVec(String("ab")))
	assert.Equal(t, []byte{7}, ToVec(Bytes{7}))
	assert.Equal(t, []byte{0, 0, 0, 7}, ToVec(Int(7)))
	assert.Equal(t, []byte{
		0, 0, 0, 3,
		0, 0, 0, 2,
		0, 0, 0, 2,
		0, 0, 0, 3,
		'a', 'b', 'c',
	}, ToVec(ListString{"ab", "", "c"}))
	assert.Equal(t, []byte{0, 0, 0, 0}, ToVec(ListBytes{}))
}

func TestLayoutPanicsOnSentinels(t *testing.T) {
	assert.Panics(t, func() { ToBytes(Null{}) })
	assert.Panics(t, func() { ToVec(Null{}) })
	assert.Panics(t, func() { ToBytes(Unknown{}) })
	assert.Panics(t, func() { ToVec(Unknown{}) })
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name    string
		dt      DataType
		data    []byte
		storage bool
	}{
		{"short int", TypeInt, []byte{0, 0, 1}, false},
		{"trailing", TypeShort, []byte{0, 1, 2}, false},
		{"count past end", TypeListInt, []byte{0, 0, 0, 5, 0, 0, 0, 1}, false},
		{"string past end", TypeString, []byte{0, 0, 0, 9, 'a'}, false},
		{"list string item past end", TypeListString, []byte{0, 0, 0, 1, 0, 0, 0, 4, 'a'}, false},
		{"no layout", TypeUnknown, []byte{0}, false},
		{"storage long short", TypeLong, []byte{1, 2, 3}, true},
		{"storage list long trailing", TypeListLong, []byte{0, 0, 0, 0, 1}, true},
		{"storage list string offsets", TypeListString, []byte{0, 0, 0, 1, 0, 0, 0, 5, 'a'}, true},
		{"storage list bytes header", TypeListBytes, []byte{0, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.storage {
				_, err = DecodeStorage(tt.dt, tt.data)
			} else {
				_, err = DecodeTransport(tt.dt, tt.data)
			}
			assert.True(t, IsMalformed(err), "got %v", err)
		})
	}
}

func TestListView(t *testing.T) {
	v, err := NewListView(ToVec(ListString{"ab", "", "c"}))
	require.NoError(t, err)
	require.Equal(t, 3, v.Len())

	b, err := v.At(0)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(b))
	b, err = v.At(1)
	require.NoError(t, err)
	assert.Empty(t, b)
	b, err = v.At(2)
	require.NoError(t, err)
	assert.Equal(t, "c", string(b))

	assert.Panics(t, func() { _, _ = v.At(3) })
	assert.Panics(t, func() { _, _ = v.At(-1) })
}

func TestListViewRejectsBadOffsets(t *testing.T) {
	// The last offset matches the payload, but the first points past it.
	data := []byte{0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0, 1, 'a'}
	v, err := NewListView(data)
	require.NoError(t, err)

	_, err = v.At(0)
	assert.True(t, IsMalformed(err))
	_, err = v.At(1)
	assert.True(t, IsMalformed(err))

	_, err = NewListView([]byte{0, 0, 0, 0, 'x'})
	assert.True(t, IsMalformed(err))
}

func TestListViewEmpty(t *testing.T) {
	v, err := NewListView(ToVec(ListBytes{}))
	require.NoError(t, err)
	assert.Equal(t, 0, v.Len())
}
