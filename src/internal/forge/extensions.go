// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package forge

import (
	"github.com/H0llyW00dzZ/pkix-forge/src/internal/asn1/der"
	"github.com/H0llyW00dzZ/pkix-forge/src/internal/helper/gc"
)

// ExtensionCriticality selects whether an extension carries the critical
// flag. DEFAULT FALSE means a non-critical extension omits the BOOLEAN
// entirely.
type ExtensionCriticality bool

const (
	Critical    ExtensionCriticality = true
	NotCritical ExtensionCriticality = false
)

// Extension encodes:
//
//	Extension ::= SEQUENCE {
//	     extnID      OBJECT IDENTIFIER,
//	     critical    BOOLEAN DEFAULT FALSE,
//	     extnValue   OCTET STRING }
//
// value's children are squashed into a SEQUENCE that becomes the inner
// encoding wrapped by extnValue.
func Extension(a *gc.Arena, extnID der.OIDTag,
	criticality ExtensionCriticality, value *der.Output) ([]byte, error) {
	var output der.Output

	oid, err := der.OID(a, extnID)
	if err != nil {
		return nil, err
	}
	if err := output.Add(oid); err != nil {
		return nil, err
	}

	if criticality == Critical {
		if err := output.Add(der.Boolean(a, true)); err != nil {
			return nil, err
		}
	}

	extnValueBytes, err := value.Squash(a, der.TagSequence)
	if err != nil {
		return nil, err
	}
	extnValue, err := der.Nested(a, der.TagOctetString, extnValueBytes)
	if err != nil {
		return nil, err
	}
	if err := output.Add(extnValue); err != nil {
		return nil, err
	}

	return output.Squash(a, der.TagSequence)
}

// CreateEncodedBasicConstraints encodes:
//
//	BasicConstraints ::= SEQUENCE {
//	        cA                      BOOLEAN DEFAULT FALSE,
//	        pathLenConstraint       INTEGER (0..MAX) OPTIONAL }
//
// pathLenConstraint nil omits the field.
func CreateEncodedBasicConstraints(a *gc.Arena, isCA bool,
	pathLenConstraint *int, criticality ExtensionCriticality) ([]byte, error) {
	var value der.Output

	if isCA {
		if err := value.Add(der.Boolean(a, true)); err != nil {
			return nil, err
		}
	}

	if pathLenConstraint != nil {
		pathLen, err := der.Integer(a, *pathLenConstraint)
		if err != nil {
			return nil, err
		}
		if err := value.Add(pathLen); err != nil {
			return nil, err
		}
	}

	return Extension(a, der.OIDBasicConstraints, criticality, &value)
}

// CreateEncodedEKUExtension encodes:
//
//	ExtKeyUsageSyntax ::= SEQUENCE SIZE (1..MAX) OF KeyPurposeId
//	KeyPurposeId ::= OBJECT IDENTIFIER
func CreateEncodedEKUExtension(a *gc.Arena, ekus []der.OIDTag,
	criticality ExtensionCriticality) ([]byte, error) {
	var value der.Output
	for _, eku := range ekus {
		oid, err := der.OID(a, eku)
		if err != nil {
			return nil, err
		}
		if err := value.Add(oid); err != nil {
			return nil, err
		}
	}
	return Extension(a, der.OIDExtKeyUsage, criticality, &value)
}
