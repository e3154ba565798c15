// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package der_test

import (
	"crypto/sha1"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/pkix-forge/src/internal/asn1/der"
	"github.com/H0llyW00dzZ/pkix-forge/src/internal/helper/gc"
)

func TestPrimitives(t *testing.T) {
	arena := gc.NewArena()
	defer arena.Release()

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Integer Encodes Three Bytes",
			testFunc: func(t *testing.T) {
				encoded, err := der.Integer(arena, 5)
				require.NoError(t, err)
				assert.Equal(t, []byte{0x02, 0x01, 0x05}, encoded)
			},
		},
		{
			name: "Integer Upper Bound",
			testFunc: func(t *testing.T) {
				encoded, err := der.Integer(arena, 127)
				require.NoError(t, err)
				assert.Equal(t, []byte{0x02, 0x01, 0x7f}, encoded)
			},
		},
		{
			name: "Integer Out Of Range",
			testFunc: func(t *testing.T) {
				_, err := der.Integer(arena, 128)
				assert.ErrorIs(t, err, der.ErrIntegerRange)

				_, err = der.Integer(arena, -1)
				assert.ErrorIs(t, err, der.ErrIntegerRange)
			},
		},
		{
			name: "Boolean Canonical Values",
			testFunc: func(t *testing.T) {
				assert.Equal(t, []byte{0x01, 0x01, 0xff}, der.Boolean(arena, true))
				assert.Equal(t, []byte{0x01, 0x01, 0x00}, der.Boolean(arena, false))
			},
		},
		{
			name: "Enumerated",
			testFunc: func(t *testing.T) {
				assert.Equal(t, []byte{0x0a, 0x01, 0x03}, der.Enumerated(arena, 3))
			},
		},
		{
			name: "OID Server Auth",
			testFunc: func(t *testing.T) {
				encoded, err := der.OID(arena, der.OIDKPServerAuth)
				require.NoError(t, err)
				assert.Equal(t,
					[]byte{0x06, 0x08, 0x2b, 0x06, 0x01, 0x05, 0x05, 0x07, 0x03, 0x01},
					encoded)
			},
		},
		{
			name: "OID Unknown",
			testFunc: func(t *testing.T) {
				_, err := der.OID(arena, der.OIDUnknown)
				assert.ErrorIs(t, err, der.ErrUnknownOID)
			},
		},
		{
			name: "BitString Prepends Unused Bits Byte",
			testFunc: func(t *testing.T) {
				encoded, err := der.BitString(arena, []byte{0xaa, 0xbb}, false)
				require.NoError(t, err)
				assert.Equal(t, []byte{0x03, 0x03, 0x00, 0xaa, 0xbb}, encoded)
			},
		},
		{
			name: "BitString Corrupt Flips One Byte",
			testFunc: func(t *testing.T) {
				raw := make([]byte, 16)
				clean, err := der.BitString(arena, raw, false)
				require.NoError(t, err)
				corrupt, err := der.BitString(arena, raw, true)
				require.NoError(t, err)

				assert.Len(t, corrupt, len(clean))
				// Only the byte at payload offset 8 differs.
				diff := 0
				for i := range clean {
					if clean[i] != corrupt[i] {
						diff++
						assert.Equal(t, 2+8, i)
					}
				}
				assert.Equal(t, 1, diff)
			},
		},
		{
			name: "BitString Too Short To Corrupt",
			testFunc: func(t *testing.T) {
				_, err := der.BitString(arena, []byte{0xaa, 0xbb}, true)
				assert.ErrorIs(t, err, der.ErrBitStringTooShort)
			},
		},
		{
			name: "HashedOctetString Wraps Digest",
			testFunc: func(t *testing.T) {
				encoded, err := der.HashedOctetString(arena, []byte("hello"), der.SHA1)
				require.NoError(t, err)

				digest := sha1.Sum([]byte("hello"))
				expected := append([]byte{0x04, 0x14}, digest[:]...)
				assert.Equal(t, expected, encoded)
			},
		},
		{
			name: "AlgorithmIdentifier SHA256 With RSA",
			testFunc: func(t *testing.T) {
				encoded, err := der.AlgorithmIdentifier(arena, der.OIDSHA256WithRSAEncryption)
				require.NoError(t, err)
				assert.Equal(t, []byte{
					0x30, 0x0d,
					0x06, 0x09, 0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x01, 0x01, 0x0b,
					0x05, 0x00,
				}, encoded)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) { tt.testFunc(t) })
	}
}

func TestOutputLengthForms(t *testing.T) {
	arena := gc.NewArena()
	defer arena.Release()

	tests := []struct {
		name           string
		contentLen     int
		expectedHeader []byte
	}{
		{"Short Form Max", 127, []byte{0x30, 0x7f}},
		{"One Byte Long Form Min", 128, []byte{0x30, 0x81, 0x80}},
		{"One Byte Long Form Max", 255, []byte{0x30, 0x81, 0xff}},
		{"Two Byte Long Form Min", 256, []byte{0x30, 0x82, 0x01, 0x00}},
		{"Two Byte Long Form", 300, []byte{0x30, 0x82, 0x01, 0x2c}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := arena.Alloc(tt.contentLen)
			encoded, err := der.Nested(arena, der.TagSequence, content)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedHeader, encoded[:len(tt.expectedHeader)])
			assert.Len(t, encoded, len(tt.expectedHeader)+tt.contentLen)
		})
	}
}

func TestOutputLimits(t *testing.T) {
	arena := gc.NewArena()
	defer arena.Release()

	t.Run("Too Many Items", func(t *testing.T) {
		var output der.Output
		item := arena.Alloc(1)
		for range der.MaxSequenceItems {
			require.NoError(t, output.Add(item))
		}
		assert.ErrorIs(t, output.Add(item), der.ErrTooManyItems)
	})

	t.Run("Value Too Large", func(t *testing.T) {
		var output der.Output
		require.NoError(t, output.Add(arena.Alloc(65535)))
		assert.ErrorIs(t, output.Add(arena.Alloc(1)), der.ErrValueTooLarge)
	})

	t.Run("Borrowed Children Concatenate In Order", func(t *testing.T) {
		var output der.Output
		require.NoError(t, output.Add(arena.Own([]byte{0x01})))
		require.NoError(t, output.Add(arena.Own([]byte{0x02, 0x03})))
		encoded, err := output.Squash(arena, der.TagSequence)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x30, 0x03, 0x01, 0x02, 0x03}, encoded)
	})
}

func TestTimeEncoding(t *testing.T) {
	arena := gc.NewArena()
	defer arena.Release()

	tests := []struct {
		name     string
		time     der.Time
		expected string
		tag      byte
	}{
		{
			name:     "UTCTime In Range",
			time:     der.YMDHMS(2026, 8, 6, 12, 0, 0),
			expected: "260806120000Z",
			tag:      der.TagUTCTime,
		},
		{
			name:     "UTCTime Lower Boundary",
			time:     der.YMDHMS(1950, 1, 1, 0, 0, 0),
			expected: "500101000000Z",
			tag:      der.TagUTCTime,
		},
		{
			name:     "UTCTime Upper Boundary",
			time:     der.YMDHMS(2049, 12, 31, 23, 59, 59),
			expected: "491231235959Z",
			tag:      der.TagUTCTime,
		},
		{
			name:     "GeneralizedTime Before 1950",
			time:     der.YMDHMS(1949, 12, 31, 23, 59, 59),
			expected: "19491231235959Z",
			tag:      der.TagGeneralizedTime,
		},
		{
			name:     "GeneralizedTime From 2050",
			time:     der.YMDHMS(2050, 1, 1, 0, 0, 0),
			expected: "20500101000000Z",
			tag:      der.TagGeneralizedTime,
		},
		{
			name:     "UTCTime Leap Day",
			time:     der.YMDHMS(2048, 2, 29, 6, 30, 15),
			expected: "480229063015Z",
			tag:      der.TagUTCTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := der.TimeChoiceBytes(arena, tt.time)
			require.NoError(t, err)

			require.GreaterOrEqual(t, len(encoded), 2)
			assert.Equal(t, tt.tag, encoded[0])
			assert.Equal(t, byte(len(tt.expected)), encoded[1])
			assert.Equal(t, tt.expected, string(encoded[2:]))

			parsed, err := der.ParseTime(encoded[0], encoded[2:])
			require.NoError(t, err)
			assert.Equal(t, tt.time, parsed)
		})
	}
}

func TestTimeConversions(t *testing.T) {
	t.Run("Unix Epoch", func(t *testing.T) {
		epoch := der.FromUnix(0)
		assert.Equal(t, 1970, epoch.Year())
		assert.Equal(t, int64(0), epoch.Unix())
	})

	t.Run("Day Arithmetic", func(t *testing.T) {
		noon := der.YMDHMS(2026, 8, 6, 12, 0, 0)
		nextNoon := der.YMDHMS(2026, 8, 7, 12, 0, 0)
		assert.Equal(t, der.Time(der.OneDayInSeconds), nextNoon-noon)
	})

	t.Run("Negative Time Rejected", func(t *testing.T) {
		arena := gc.NewArena()
		defer arena.Release()
		_, err := der.TimeChoiceBytes(arena, -1)
		assert.ErrorIs(t, err, der.ErrTimeRange)
	})

	t.Run("GeneralizedTime Forced Inside UTCTime Range", func(t *testing.T) {
		arena := gc.NewArena()
		defer arena.Release()
		encoded, err := der.GeneralizedTimeBytes(arena, der.YMDHMS(2026, 8, 6, 12, 0, 0))
		require.NoError(t, err)
		assert.Equal(t, der.TagGeneralizedTime, encoded[0])
		assert.Equal(t, "20260806120000Z", string(encoded[2:]))
	})
}

func TestParseTimeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name     string
		tag      byte
		contents string
	}{
		{"Truncated UTCTime", der.TagUTCTime, "26080612000Z"},
		{"Missing Zulu", der.TagUTCTime, "2608061200000"},
		{"Non Digit", der.TagUTCTime, "2608061200a0Z"},
		{"Month Out Of Range", der.TagUTCTime, "261306120000Z"},
		{"Truncated GeneralizedTime", der.TagGeneralizedTime, "2026080612000Z"},
		{"Wrong Tag", der.TagOctetString, "260806120000Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := der.ParseTime(tt.tag, []byte(tt.contents))
			assert.ErrorIs(t, err, der.ErrMalformedTime)
		})
	}
}

func TestInputEquality(t *testing.T) {
	backing := []byte{0x30, 0x03, 0x01, 0x02, 0x03}
	a := der.Input(backing)
	b := der.Input(append([]byte(nil), backing...))
	c := der.Input(backing[:4])

	assert.True(t, a.Equal(b), "equal contents in different buffers compare equal")
	assert.False(t, a.Equal(c))
	assert.Equal(t, 5, a.Len())
}
