// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package forge

import (
	"errors"
	"io"

	"github.com/H0llyW00dzZ/pkix-forge/src/internal/asn1/der"
	"github.com/H0llyW00dzZ/pkix-forge/src/internal/helper/gc"
)

// X.509 certificate versions as they appear on the wire (zero-based).
const (
	VersionV1 = 0
	VersionV3 = 2
)

// ErrInvalidArgs indicates a programmer error in the caller: arguments a
// correct test can never produce.
var ErrInvalidArgs = errors.New("forge: invalid arguments")

// CertificateContext carries everything CreateEncodedCertificate needs.
// IssuerKey nil means the certificate is self-signed with the freshly
// generated subject key. SubjectKey non-nil suppresses key generation and
// reuses the given pair.
type CertificateContext struct {
	Version       int
	SerialNumber  []byte // encoded INTEGER
	IssuerDER     []byte
	NotBefore     der.Time
	NotAfter      der.Time
	SubjectDER    []byte
	Extensions    [][]byte // encoded Extension values, in order
	IssuerKey     *KeyPair
	SubjectKey    *KeyPair
	SignatureHash der.HashAlg // zero value means SHA-256

	// CorruptSignature flips one bit inside the signature BIT STRING after
	// signing, so the certificate re-parses but never verifies.
	CorruptSignature bool
}

// CreateEncodedCertificate assembles and signs one certificate:
//
//	Certificate ::= SEQUENCE {
//	        tbsCertificate       TBSCertificate,
//	        signatureAlgorithm   AlgorithmIdentifier,
//	        signatureValue       BIT STRING }
//
// The DER is owned by a; the returned KeyPair is the subject's and has its
// own lifetime. random feeds key generation.
func CreateEncodedCertificate(a *gc.Arena, random io.Reader,
	ctx *CertificateContext) ([]byte, *KeyPair, error) {
	if a == nil || ctx == nil || ctx.IssuerDER == nil || ctx.SubjectDER == nil ||
		ctx.SerialNumber == nil {
		return nil, nil, ErrInvalidArgs
	}

	subjectKey := ctx.SubjectKey
	if subjectKey == nil {
		var err error
		subjectKey, err = GenerateKeyPair(random)
		if err != nil {
			return nil, nil, err
		}
	}

	hashAlg := ctx.SignatureHash
	if hashAlg == 0 {
		hashAlg = der.SHA256
	}

	tbs, err := tbsCertificate(a, ctx, subjectKey, hashAlg)
	if err != nil {
		return nil, nil, err
	}

	signerKey := ctx.IssuerKey
	if signerKey == nil {
		signerKey = subjectKey
	}
	cert, err := signedData(a, tbs, signerKey, hashAlg, ctx.CorruptSignature, nil)
	if err != nil {
		return nil, nil, err
	}
	maybeLogOutput(cert, "cert")
	return cert, subjectKey, nil
}

// tbsCertificate encodes:
//
//	TBSCertificate ::= SEQUENCE {
//	     version         [0]  Version DEFAULT v1,
//	     serialNumber         CertificateSerialNumber,
//	     signature            AlgorithmIdentifier,
//	     issuer               Name,
//	     validity             Validity,
//	     subject              Name,
//	     subjectPublicKeyInfo SubjectPublicKeyInfo,
//	     extensions      [3]  Extensions OPTIONAL }
//
// The [0] version wrapper is omitted exactly when the certificate is v1.
func tbsCertificate(a *gc.Arena, ctx *CertificateContext, subjectKey *KeyPair,
	hashAlg der.HashAlg) ([]byte, error) {
	var output der.Output

	if ctx.Version != VersionV1 {
		versionInteger, err := der.Integer(a, ctx.Version)
		if err != nil {
			return nil, err
		}
		version, err := der.Nested(a,
			der.ClassContextSpecific|der.FlagConstructed|0, versionInteger)
		if err != nil {
			return nil, err
		}
		if err := output.Add(version); err != nil {
			return nil, err
		}
	}

	if err := output.Add(ctx.SerialNumber); err != nil {
		return nil, err
	}

	sigAlgTag, err := der.RSASignatureOID(hashAlg)
	if err != nil {
		return nil, err
	}
	signature, err := der.AlgorithmIdentifier(a, sigAlgTag)
	if err != nil {
		return nil, err
	}
	if err := output.Add(signature); err != nil {
		return nil, err
	}

	if err := output.Add(ctx.IssuerDER); err != nil {
		return nil, err
	}

	// Validity ::= SEQUENCE {
	//       notBefore      Time,
	//       notAfter       Time }
	notBefore, err := der.TimeChoiceBytes(a, ctx.NotBefore)
	if err != nil {
		return nil, err
	}
	notAfter, err := der.TimeChoiceBytes(a, ctx.NotAfter)
	if err != nil {
		return nil, err
	}
	var validityOutput der.Output
	if err := validityOutput.Add(notBefore); err != nil {
		return nil, err
	}
	if err := validityOutput.Add(notAfter); err != nil {
		return nil, err
	}
	validity, err := validityOutput.Squash(a, der.TagSequence)
	if err != nil {
		return nil, err
	}
	if err := output.Add(validity); err != nil {
		return nil, err
	}

	if err := output.Add(ctx.SubjectDER); err != nil {
		return nil, err
	}

	spki, err := subjectKey.SubjectPublicKeyInfo()
	if err != nil {
		return nil, err
	}
	if err := output.Add(a.Own(spki)); err != nil {
		return nil, err
	}

	if len(ctx.Extensions) > 0 {
		var extensionsOutput der.Output
		for _, ext := range ctx.Extensions {
			if err := extensionsOutput.Add(ext); err != nil {
				return nil, err
			}
		}
		allExtensions, err := extensionsOutput.Squash(a, der.TagSequence)
		if err != nil {
			return nil, err
		}
		wrapped, err := der.Nested(a,
			der.ClassContextSpecific|der.FlagConstructed|3, allExtensions)
		if err != nil {
			return nil, err
		}
		if err := output.Add(wrapped); err != nil {
			return nil, err
		}
	}

	return output.Squash(a, der.TagSequence)
}

// signedData wraps tbs in the RFC 5280 signing envelope shared by
// certificates and BasicOCSPResponse:
//
//	SEQUENCE { tbs, signatureAlgorithm, BIT STRING signature,
//	           [0] EXPLICIT SEQUENCE OF Certificate OPTIONAL }
//
// The signature covers the exact tbs bytes. corrupt flips one bit inside the
// signature BIT STRING after signing.
func signedData(a *gc.Arena, tbs []byte, key *KeyPair, hashAlg der.HashAlg,
	corrupt bool, certs [][]byte) ([]byte, error) {
	if key == nil {
		return nil, ErrInvalidArgs
	}

	sigAlgTag, err := der.RSASignatureOID(hashAlg)
	if err != nil {
		return nil, err
	}
	signatureAlgorithm, err := der.AlgorithmIdentifier(a, sigAlgTag)
	if err != nil {
		return nil, err
	}

	signature, err := SignData(key, tbs, hashAlg)
	if err != nil {
		return nil, err
	}
	signatureNested, err := der.BitString(a, signature, corrupt)
	if err != nil {
		return nil, err
	}

	var certsNested []byte
	if len(certs) > 0 {
		var certsOutput der.Output
		for _, cert := range certs {
			if err := certsOutput.Add(cert); err != nil {
				return nil, err
			}
		}
		certsSequence, err := certsOutput.Squash(a, der.TagSequence)
		if err != nil {
			return nil, err
		}
		certsNested, err = der.Nested(a,
			der.ClassContextSpecific|der.FlagConstructed|0, certsSequence)
		if err != nil {
			return nil, err
		}
	}

	var output der.Output
	if err := output.Add(tbs); err != nil {
		return nil, err
	}
	if err := output.Add(signatureAlgorithm); err != nil {
		return nil, err
	}
	if err := output.Add(signatureNested); err != nil {
		return nil, err
	}
	if certsNested != nil {
		if err := output.Add(certsNested); err != nil {
			return nil, err
		}
	}
	return output.Squash(a, der.TagSequence)
}

// CreateEncodedSerialNumber encodes a serial number. Test serials are single
// byte values, so the INTEGER range restriction applies.
func CreateEncodedSerialNumber(a *gc.Arena, value int) ([]byte, error) {
	return der.Integer(a, value)
}
