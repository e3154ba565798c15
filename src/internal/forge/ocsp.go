// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package forge

import (
	"github.com/H0llyW00dzZ/pkix-forge/src/internal/asn1/der"
	"github.com/H0llyW00dzZ/pkix-forge/src/internal/helper/gc"
)

// OCSPResponseStatus values (RFC 6960; 4 is unused by the RFC).
const (
	OCSPSuccessful       byte = 0
	OCSPMalformedRequest byte = 1
	OCSPInternalError    byte = 2
	OCSPTryLater         byte = 3
	OCSPSigRequired      byte = 5
	OCSPUnauthorized     byte = 6
)

// CertStatus CHOICE tags.
const (
	CertStatusGood    byte = 0
	CertStatusRevoked byte = 1
	CertStatusUnknown byte = 2
)

// CertID identifies the certificate a SingleResponse speaks about: the
// issuer's encoded name and SubjectPublicKeyInfo (both hashed during
// encoding) plus the subject's encoded serial number INTEGER.
type CertID struct {
	IssuerDER    []byte
	IssuerSPKI   []byte
	SerialNumber []byte
}

// OCSPResponseExtension is one response-level extension.
type OCSPResponseExtension struct {
	// ID is the complete encoded OBJECT IDENTIFIER.
	ID       []byte
	Critical bool
	Value    []byte
}

// OCSPResponseContext carries every knob of CreateEncodedOCSPResponse.
// NewOCSPResponseContext fills the defaults a well-formed "good" response
// needs; tests flip individual fields to produce adversarial variants.
type OCSPResponseContext struct {
	Arena          *gc.Arena
	CertID         CertID
	ResponseStatus byte

	// SkipResponseBytes ends the response after the status; no signer key
	// is required then.
	SkipResponseBytes bool
	SignerKey         *KeyPair
	// SignerNameDER selects the byName ResponderID; when nil the
	// ResponderID is the SHA-1 hash of the signer's public key.
	SignerNameDER []byte

	ProducedAt             der.Time
	Extensions             []OCSPResponseExtension
	IncludeEmptyExtensions bool
	SignatureHash          der.HashAlg
	BadSignature           bool
	Certs                  [][]byte

	CertIDHashAlg     der.HashAlg
	CertStatus        byte
	RevocationTime    der.Time
	ThisUpdate        der.Time
	NextUpdate        der.Time
	IncludeNextUpdate bool
}

// NewOCSPResponseContext returns a context describing a successful, signed
// "good" response produced at t, current from t until ten seconds later.
func NewOCSPResponseContext(a *gc.Arena, certID CertID, t der.Time) *OCSPResponseContext {
	return &OCSPResponseContext{
		Arena:             a,
		CertID:            certID,
		ResponseStatus:    OCSPSuccessful,
		ProducedAt:        t,
		SignatureHash:     der.SHA256,
		CertIDHashAlg:     der.SHA1,
		CertStatus:        CertStatusGood,
		ThisUpdate:        t,
		NextUpdate:        t + 10,
		IncludeNextUpdate: true,
	}
}

// CreateEncodedOCSPResponse encodes:
//
//	OCSPResponse ::= SEQUENCE {
//	   responseStatus          OCSPResponseStatus,
//	   responseBytes       [0] EXPLICIT ResponseBytes OPTIONAL }
func CreateEncodedOCSPResponse(ctx *OCSPResponseContext) ([]byte, error) {
	if ctx == nil || ctx.Arena == nil {
		return nil, ErrInvalidArgs
	}
	if !ctx.SkipResponseBytes && ctx.SignerKey == nil {
		return nil, ErrInvalidArgs
	}

	responseStatus := der.Enumerated(ctx.Arena, ctx.ResponseStatus)

	var responseBytesNested []byte
	if !ctx.SkipResponseBytes {
		responseBytes, err := encodeResponseBytes(ctx)
		if err != nil {
			return nil, err
		}
		responseBytesNested, err = der.Nested(ctx.Arena,
			der.ClassContextSpecific|der.FlagConstructed|0, responseBytes)
		if err != nil {
			return nil, err
		}
	}

	var output der.Output
	if err := output.Add(responseStatus); err != nil {
		return nil, err
	}
	if responseBytesNested != nil {
		if err := output.Add(responseBytesNested); err != nil {
			return nil, err
		}
	}
	response, err := output.Squash(ctx.Arena, der.TagSequence)
	if err != nil {
		return nil, err
	}
	maybeLogOutput(response, "ocsp")
	return response, nil
}

// encodeResponseBytes encodes:
//
//	ResponseBytes ::= SEQUENCE {
//	   responseType            OBJECT IDENTIFIER,   -- id-pkix-ocsp-basic
//	   response                OCTET STRING }
func encodeResponseBytes(ctx *OCSPResponseContext) ([]byte, error) {
	responseType, err := der.OID(ctx.Arena, der.OIDPKIXOCSPBasic)
	if err != nil {
		return nil, err
	}
	response, err := encodeBasicOCSPResponse(ctx)
	if err != nil {
		return nil, err
	}
	responseNested, err := der.Nested(ctx.Arena, der.TagOctetString, response)
	if err != nil {
		return nil, err
	}

	var output der.Output
	if err := output.Add(responseType); err != nil {
		return nil, err
	}
	if err := output.Add(responseNested); err != nil {
		return nil, err
	}
	return output.Squash(ctx.Arena, der.TagSequence)
}

// encodeBasicOCSPResponse encodes:
//
//	BasicOCSPResponse ::= SEQUENCE {
//	  tbsResponseData          ResponseData,
//	  signatureAlgorithm       AlgorithmIdentifier,
//	  signature                BIT STRING,
//	  certs                [0] EXPLICIT SEQUENCE OF Certificate OPTIONAL }
func encodeBasicOCSPResponse(ctx *OCSPResponseContext) ([]byte, error) {
	tbsResponseData, err := encodeResponseData(ctx)
	if err != nil {
		return nil, err
	}
	return signedData(ctx.Arena, tbsResponseData, ctx.SignerKey,
		ctx.SignatureHash, ctx.BadSignature, ctx.Certs)
}

// encodeResponseData encodes:
//
//	ResponseData ::= SEQUENCE {
//	   version             [0] EXPLICIT Version DEFAULT v1,
//	   responderID             ResponderID,
//	   producedAt              GeneralizedTime,
//	   responses               SEQUENCE OF SingleResponse,
//	   responseExtensions  [1] EXPLICIT Extensions OPTIONAL }
func encodeResponseData(ctx *OCSPResponseContext) ([]byte, error) {
	responderID, err := encodeResponderID(ctx)
	if err != nil {
		return nil, err
	}
	producedAt, err := der.GeneralizedTimeBytes(ctx.Arena, ctx.ProducedAt)
	if err != nil {
		return nil, err
	}
	singleResponse, err := encodeSingleResponse(ctx)
	if err != nil {
		return nil, err
	}
	responses, err := der.Nested(ctx.Arena, der.TagSequence, singleResponse)
	if err != nil {
		return nil, err
	}
	var responseExtensions []byte
	if len(ctx.Extensions) > 0 || ctx.IncludeEmptyExtensions {
		responseExtensions, err = encodeExtensions(ctx)
		if err != nil {
			return nil, err
		}
	}

	var output der.Output
	if err := output.Add(responderID); err != nil {
		return nil, err
	}
	if err := output.Add(producedAt); err != nil {
		return nil, err
	}
	if err := output.Add(responses); err != nil {
		return nil, err
	}
	if responseExtensions != nil {
		if err := output.Add(responseExtensions); err != nil {
			return nil, err
		}
	}
	return output.Squash(ctx.Arena, der.TagSequence)
}

// encodeResponderID encodes:
//
//	ResponderID ::= CHOICE {
//	   byName              [1] Name,
//	   byKey               [2] KeyHash }
func encodeResponderID(ctx *OCSPResponseContext) ([]byte, error) {
	var contents []byte
	var responderIDType byte
	if ctx.SignerNameDER != nil {
		contents = ctx.SignerNameDER
		responderIDType = 1 // byName
	} else {
		var err error
		contents, err = encodeKeyHash(ctx)
		if err != nil {
			return nil, err
		}
		responderIDType = 2 // byKey
	}
	return der.Nested(ctx.Arena,
		der.ClassContextSpecific|der.FlagConstructed|responderIDType, contents)
}

// encodeKeyHash encodes:
//
//	KeyHash ::= OCTET STRING -- SHA-1 hash of responder's public key
//	                         -- (excluding the tag, length, and number of
//	                         -- unused bits of the subjectPublicKey)
func encodeKeyHash(ctx *OCSPResponseContext) ([]byte, error) {
	spki, err := ctx.SignerKey.SubjectPublicKeyInfo()
	if err != nil {
		return nil, err
	}
	bits, err := spkiPublicKeyBytes(spki)
	if err != nil {
		return nil, err
	}
	return der.HashedOctetString(ctx.Arena, bits, der.SHA1)
}

// encodeSingleResponse encodes:
//
//	SingleResponse ::= SEQUENCE {
//	   certID                  CertID,
//	   certStatus              CertStatus,
//	   thisUpdate              GeneralizedTime,
//	   nextUpdate          [0] EXPLICIT GeneralizedTime OPTIONAL,
//	   singleExtensions    [1] EXPLICIT Extensions OPTIONAL }
func encodeSingleResponse(ctx *OCSPResponseContext) ([]byte, error) {
	certID, err := encodeCertID(ctx)
	if err != nil {
		return nil, err
	}
	certStatus, err := encodeCertStatus(ctx)
	if err != nil {
		return nil, err
	}
	thisUpdate, err := der.GeneralizedTimeBytes(ctx.Arena, ctx.ThisUpdate)
	if err != nil {
		return nil, err
	}
	var nextUpdateNested []byte
	if ctx.IncludeNextUpdate {
		nextUpdate, err := der.GeneralizedTimeBytes(ctx.Arena, ctx.NextUpdate)
		if err != nil {
			return nil, err
		}
		nextUpdateNested, err = der.Nested(ctx.Arena,
			der.ClassContextSpecific|der.FlagConstructed|0, nextUpdate)
		if err != nil {
			return nil, err
		}
	}

	var output der.Output
	if err := output.Add(certID); err != nil {
		return nil, err
	}
	if err := output.Add(certStatus); err != nil {
		return nil, err
	}
	if err := output.Add(thisUpdate); err != nil {
		return nil, err
	}
	if nextUpdateNested != nil {
		if err := output.Add(nextUpdateNested); err != nil {
			return nil, err
		}
	}
	return output.Squash(ctx.Arena, der.TagSequence)
}

// encodeCertID encodes:
//
//	CertID ::= SEQUENCE {
//	       hashAlgorithm       AlgorithmIdentifier,
//	       issuerNameHash      OCTET STRING, -- Hash of issuer's DN
//	       issuerKeyHash       OCTET STRING, -- Hash of issuer's public key
//	       serialNumber        CertificateSerialNumber }
//
// Both hashes are computed here under CertIDHashAlg; the key hash covers the
// subjectPublicKey bits of the issuer's SubjectPublicKeyInfo.
func encodeCertID(ctx *OCSPResponseContext) ([]byte, error) {
	hashAlgorithm, err := der.AlgorithmIdentifier(ctx.Arena, ctx.CertIDHashAlg.OID())
	if err != nil {
		return nil, err
	}
	issuerNameHash, err := der.HashedOctetString(ctx.Arena, ctx.CertID.IssuerDER,
		ctx.CertIDHashAlg)
	if err != nil {
		return nil, err
	}
	issuerKeyBits, err := spkiPublicKeyBytes(ctx.CertID.IssuerSPKI)
	if err != nil {
		return nil, err
	}
	issuerKeyHash, err := der.HashedOctetString(ctx.Arena, issuerKeyBits,
		ctx.CertIDHashAlg)
	if err != nil {
		return nil, err
	}

	var output der.Output
	if err := output.Add(hashAlgorithm); err != nil {
		return nil, err
	}
	if err := output.Add(issuerNameHash); err != nil {
		return nil, err
	}
	if err := output.Add(issuerKeyHash); err != nil {
		return nil, err
	}
	if err := output.Add(ctx.CertID.SerialNumber); err != nil {
		return nil, err
	}
	return output.Squash(ctx.Arena, der.TagSequence)
}

// encodeCertStatus encodes:
//
//	CertStatus ::= CHOICE {
//	   good                [0] IMPLICIT NULL,
//	   revoked             [1] IMPLICIT RevokedInfo,
//	   unknown             [2] IMPLICIT NULL }
//
//	RevokedInfo ::= SEQUENCE {
//	   revocationTime              GeneralizedTime,
//	   revocationReason    [0]     EXPLICIT CRLReason OPTIONAL }
//
// Good and unknown are both empty values; only the tag differs.
func encodeCertStatus(ctx *OCSPResponseContext) ([]byte, error) {
	switch ctx.CertStatus {
	case CertStatusGood, CertStatusUnknown:
		status := ctx.Arena.Alloc(2)
		status[0] = der.ClassContextSpecific | ctx.CertStatus
		status[1] = 0
		return status, nil
	case CertStatusRevoked:
		revocationTime, err := der.GeneralizedTimeBytes(ctx.Arena,
			ctx.RevocationTime)
		if err != nil {
			return nil, err
		}
		return der.Nested(ctx.Arena,
			der.ClassContextSpecific|der.FlagConstructed|1, revocationTime)
	}
	return nil, ErrInvalidArgs
}

// encodeExtensions encodes the [1] EXPLICIT SEQUENCE OF Extension block.
func encodeExtensions(ctx *OCSPResponseContext) ([]byte, error) {
	var output der.Output
	for i := range ctx.Extensions {
		encoded, err := encodeOCSPExtension(ctx, &ctx.Extensions[i])
		if err != nil {
			return nil, err
		}
		if err := output.Add(encoded); err != nil {
			return nil, err
		}
	}
	extensions, err := output.Squash(ctx.Arena, der.TagSequence)
	if err != nil {
		return nil, err
	}
	return der.Nested(ctx.Arena,
		der.ClassContextSpecific|der.FlagConstructed|1, extensions)
}

func encodeOCSPExtension(ctx *OCSPResponseContext,
	extension *OCSPResponseExtension) ([]byte, error) {
	var output der.Output
	if err := output.Add(extension.ID); err != nil {
		return nil, err
	}
	if extension.Critical {
		if err := output.Add(der.Boolean(ctx.Arena, true)); err != nil {
			return nil, err
		}
	}
	value, err := der.Nested(ctx.Arena, der.TagOctetString, extension.Value)
	if err != nil {
		return nil, err
	}
	if err := output.Add(value); err != nil {
		return nil, err
	}
	return output.Squash(ctx.Arena, der.TagSequence)
}
