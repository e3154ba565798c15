// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package der

import (
	"bytes"
	"errors"

	"github.com/H0llyW00dzZ/pkix-forge/src/internal/helper/gc"
)

// ASN.1 identifier octets for the subset of DER the encoders emit.
const (
	TagBoolean         byte = 0x01
	TagInteger         byte = 0x02
	TagBitString       byte = 0x03
	TagOctetString     byte = 0x04
	TagNull            byte = 0x05
	TagOID             byte = 0x06
	TagUTF8String      byte = 0x0c
	TagPrintableString byte = 0x13
	TagEnumerated      byte = 0x0a
	TagUTCTime         byte = 0x17
	TagGeneralizedTime byte = 0x18
	TagSequence        byte = 0x30
	TagSet             byte = 0x31

	ClassContextSpecific byte = 0x80
	FlagConstructed      byte = 0x20
)

var (
	// ErrValueTooLarge indicates a constructed value whose contents exceed
	// the two-byte long-form length ceiling (65535 bytes).
	ErrValueTooLarge = errors.New("der: value exceeds maximum encodable length")

	// ErrTooManyItems indicates more children than a constructed value accepts.
	ErrTooManyItems = errors.New("der: too many items in constructed value")

	// ErrIntegerRange indicates an INTEGER outside the supported [0, 127] range.
	ErrIntegerRange = errors.New("der: integer out of single-byte range")

	// ErrUnknownOID indicates an object identifier missing from the registry.
	ErrUnknownOID = errors.New("der: object identifier not registered")

	// ErrBitStringTooShort indicates a BIT STRING payload too short for the
	// corruption hook to flip a bit in.
	ErrBitStringTooShort = errors.New("der: bit string too short to corrupt")
)

// Input is an immutable, non-owning view of DER bytes. The underlying buffer
// is owned elsewhere (usually by an arena) and must outlive the view.
type Input []byte

// Equal reports whether two views have identical contents.
func (in Input) Equal(other Input) bool { return bytes.Equal(in, other) }

// Len returns the number of bytes in the view.
func (in Input) Len() int { return len(in) }

// lengthLength returns how many length octets the definite shortest form
// needs for a content of n bytes.
func lengthLength(n int) (int, error) {
	switch {
	case n < 0x80:
		return 1, nil
	case n < 0x100:
		return 2, nil
	case n < 0x10000:
		return 3, nil
	}
	return 0, ErrValueTooLarge
}

// encodeLength writes the shortest definite form of n into dst, which must
// hold exactly lengthLength(n) bytes.
func encodeLength(dst []byte, n int) {
	switch len(dst) {
	case 1:
		dst[0] = byte(n)
	case 2:
		dst[0] = 0x81
		dst[1] = byte(n)
	case 3:
		dst[0] = 0x82
		dst[1] = byte(n / 256)
		dst[2] = byte(n % 256)
	}
}

// Nested wraps inner in a single tag-length-value, allocating from a.
func Nested(a *gc.Arena, tag byte, inner []byte) ([]byte, error) {
	var out Output
	if err := out.Add(inner); err != nil {
		return nil, err
	}
	return out.Squash(a, tag)
}

// Integer encodes a non-negative INTEGER no larger than 127. The encoders
// never need multi-byte integers, so larger values are a caller error.
func Integer(a *gc.Arena, value int) ([]byte, error) {
	if value < 0 || value > 127 {
		return nil, ErrIntegerRange
	}
	out := a.Alloc(3)
	out[0] = TagInteger
	out[1] = 1
	out[2] = byte(value)
	return out, nil
}

// Boolean encodes a BOOLEAN as the canonical three bytes.
func Boolean(a *gc.Arena, value bool) []byte {
	out := a.Alloc(3)
	out[0] = TagBoolean
	out[1] = 1
	if value {
		out[2] = 0xff
	}
	return out
}

// Enumerated encodes a single-byte ENUMERATED value.
func Enumerated(a *gc.Arena, value byte) []byte {
	out := a.Alloc(3)
	out[0] = TagEnumerated
	out[1] = 1
	out[2] = value
	return out
}

// OID looks up tag in the registry and wraps its contents as an OBJECT
// IDENTIFIER.
func OID(a *gc.Arena, tag OIDTag) ([]byte, error) {
	contents, ok := oidContents[tag]
	if !ok {
		return nil, ErrUnknownOID
	}
	return Nested(a, TagOID, contents)
}

// BitString wraps rawBytes as a BIT STRING with a zero unused-bits prefix.
// When corrupt is set, one bit inside the payload (the low bit of the byte at
// offset 8, counted from the unused-bits prefix) is flipped so that any
// signature carried by the bit string no longer verifies.
func BitString(a *gc.Arena, rawBytes []byte, corrupt bool) ([]byte, error) {
	prefixed := a.Alloc(len(rawBytes) + 1)
	prefixed[0] = 0
	copy(prefixed[1:], rawBytes)
	if corrupt {
		if len(prefixed) <= 8 {
			return nil, ErrBitStringTooShort
		}
		prefixed[8] ^= 0x01
	}
	return Nested(a, TagBitString, prefixed)
}

// HashedOctetString digests b under alg and wraps the digest as an OCTET
// STRING.
func HashedOctetString(a *gc.Arena, b []byte, alg HashAlg) ([]byte, error) {
	digest, err := alg.Sum(b)
	if err != nil {
		return nil, err
	}
	return Nested(a, TagOctetString, a.Own(digest))
}

// AlgorithmIdentifier encodes a SEQUENCE of the algorithm OID followed by an
// explicit NULL parameter, matching how NSS serialises the RSA signature and
// digest algorithms the engine uses.
func AlgorithmIdentifier(a *gc.Arena, alg OIDTag) ([]byte, error) {
	oid, err := OID(a, alg)
	if err != nil {
		return nil, err
	}
	null := a.Alloc(2)
	null[0] = TagNull

	var out Output
	if err := out.Add(oid); err != nil {
		return nil, err
	}
	if err := out.Add(null); err != nil {
		return nil, err
	}
	return out.Squash(a, TagSequence)
}
