// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package der

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
)

// OIDTag names a registered object identifier. The registry is closed: the
// encoders only ever emit identifiers from this table.
type OIDTag int

const (
	OIDUnknown OIDTag = iota

	// Digest algorithms.
	OIDSHA1
	OIDSHA256
	OIDSHA384
	OIDSHA512

	// Public-key and signature algorithms.
	OIDRSAEncryption
	OIDSHA1WithRSAEncryption
	OIDSHA256WithRSAEncryption
	OIDSHA384WithRSAEncryption
	OIDSHA512WithRSAEncryption

	// Certificate extensions.
	OIDBasicConstraints
	OIDExtKeyUsage

	// Extended key usage purposes.
	OIDKPServerAuth
	OIDKPClientAuth
	OIDKPCodeSigning
	OIDKPOCSPSigning

	// OCSP.
	OIDPKIXOCSPBasic

	// Distinguished-name attribute types.
	OIDCommonName
	OIDCountryName
	OIDLocalityName
	OIDProvinceName
	OIDOrganizationName
	OIDOrganizationalUnitName
)

// oidContents holds the contents octets of each registered identifier,
// without the OBJECT IDENTIFIER tag and length.
var oidContents = map[OIDTag][]byte{
	OIDSHA1:   {0x2b, 0x0e, 0x03, 0x02, 0x1a},
	OIDSHA256: {0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x01},
	OIDSHA384: {0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x02},
	OIDSHA512: {0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x03},

	OIDRSAEncryption:           {0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x01, 0x01, 0x01},
	OIDSHA1WithRSAEncryption:   {0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x01, 0x01, 0x05},
	OIDSHA256WithRSAEncryption: {0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x01, 0x01, 0x0b},
	OIDSHA384WithRSAEncryption: {0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x01, 0x01, 0x0c},
	OIDSHA512WithRSAEncryption: {0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x01, 0x01, 0x0d},

	OIDBasicConstraints: {0x55, 0x1d, 0x13},
	OIDExtKeyUsage:      {0x55, 0x1d, 0x25},

	OIDKPServerAuth:  {0x2b, 0x06, 0x01, 0x05, 0x05, 0x07, 0x03, 0x01},
	OIDKPClientAuth:  {0x2b, 0x06, 0x01, 0x05, 0x05, 0x07, 0x03, 0x02},
	OIDKPCodeSigning: {0x2b, 0x06, 0x01, 0x05, 0x05, 0x07, 0x03, 0x03},
	OIDKPOCSPSigning: {0x2b, 0x06, 0x01, 0x05, 0x05, 0x07, 0x03, 0x09},

	OIDPKIXOCSPBasic: {0x2b, 0x06, 0x01, 0x05, 0x05, 0x07, 0x30, 0x01, 0x01},

	OIDCommonName:             {0x55, 0x04, 0x03},
	OIDCountryName:            {0x55, 0x04, 0x06},
	OIDLocalityName:           {0x55, 0x04, 0x07},
	OIDProvinceName:           {0x55, 0x04, 0x08},
	OIDOrganizationName:       {0x55, 0x04, 0x0a},
	OIDOrganizationalUnitName: {0x55, 0x04, 0x0b},
}

// OIDContents returns the contents octets of a registered identifier.
func OIDContents(tag OIDTag) ([]byte, bool) {
	contents, ok := oidContents[tag]
	return contents, ok
}

// ErrUnknownHashAlgorithm indicates a digest algorithm outside the fixed
// SHA family the engine supports.
var ErrUnknownHashAlgorithm = errors.New("der: unknown hash algorithm")

// HashAlg identifies one of the fixed digest algorithms.
type HashAlg int

const (
	SHA1 HashAlg = iota + 1
	SHA256
	SHA384
	SHA512
)

// Size returns the digest length in bytes, or 0 for an unknown algorithm.
func (h HashAlg) Size() int {
	switch h {
	case SHA1:
		return sha1.Size
	case SHA256:
		return sha256.Size
	case SHA384:
		return sha512.Size384
	case SHA512:
		return sha512.Size
	}
	return 0
}

// OID returns the registry tag of the digest algorithm itself.
func (h HashAlg) OID() OIDTag {
	switch h {
	case SHA1:
		return OIDSHA1
	case SHA256:
		return OIDSHA256
	case SHA384:
		return OIDSHA384
	case SHA512:
		return OIDSHA512
	}
	return OIDUnknown
}

// Sum digests b under the algorithm.
func (h HashAlg) Sum(b []byte) ([]byte, error) {
	switch h {
	case SHA1:
		d := sha1.Sum(b)
		return d[:], nil
	case SHA256:
		d := sha256.Sum256(b)
		return d[:], nil
	case SHA384:
		d := sha512.Sum384(b)
		return d[:], nil
	case SHA512:
		d := sha512.Sum512(b)
		return d[:], nil
	}
	return nil, ErrUnknownHashAlgorithm
}

// RSASignatureOID maps a digest algorithm to the PKCS#1 v1.5 signature
// algorithm identifier for RSA keys, the engine's only key type.
func RSASignatureOID(h HashAlg) (OIDTag, error) {
	switch h {
	case SHA1:
		return OIDSHA1WithRSAEncryption, nil
	case SHA256:
		return OIDSHA256WithRSAEncryption, nil
	case SHA384:
		return OIDSHA384WithRSAEncryption, nil
	case SHA512:
		return OIDSHA512WithRSAEncryption, nil
	}
	return OIDUnknown, ErrUnknownHashAlgorithm
}
