// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package forge

import (
	"errors"
	"strings"

	"github.com/H0llyW00dzZ/pkix-forge/src/internal/asn1/der"
	"github.com/H0llyW00dzZ/pkix-forge/src/internal/helper/gc"
)

// ErrInvalidName indicates an ASCII distinguished name outside the small
// grammar the fixture parser accepts.
var ErrInvalidName = errors.New("forge: invalid ASCII distinguished name")

// nameAttributeTypes maps the attribute keywords the fixtures use to their
// type OIDs.
var nameAttributeTypes = map[string]der.OIDTag{
	"CN": der.OIDCommonName,
	"C":  der.OIDCountryName,
	"L":  der.OIDLocalityName,
	"ST": der.OIDProvinceName,
	"O":  der.OIDOrganizationName,
	"OU": der.OIDOrganizationalUnitName,
}

// ASCIIToDERName parses "CN=Some Name,O=Some Org" into an encoded
// distinguished name: a SEQUENCE of single-attribute RDN SETs in input
// order. Country values encode as PrintableString, everything else as
// UTF8String. The chain builder itself never decomposes names; this parser
// exists so tests and profiles can spell subjects as text.
func ASCIIToDERName(a *gc.Arena, name string) ([]byte, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}

	var rdnSequence der.Output
	for _, part := range strings.Split(name, ",") {
		keyword, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			return nil, ErrInvalidName
		}
		attrType, ok := nameAttributeTypes[strings.ToUpper(strings.TrimSpace(keyword))]
		if !ok {
			return nil, ErrInvalidName
		}

		oid, err := der.OID(a, attrType)
		if err != nil {
			return nil, err
		}
		stringTag := der.TagUTF8String
		if attrType == der.OIDCountryName {
			stringTag = der.TagPrintableString
		}
		encodedValue, err := der.Nested(a, stringTag, a.Own([]byte(value)))
		if err != nil {
			return nil, err
		}

		var attribute der.Output
		if err := attribute.Add(oid); err != nil {
			return nil, err
		}
		if err := attribute.Add(encodedValue); err != nil {
			return nil, err
		}
		attributeValue, err := attribute.Squash(a, der.TagSequence)
		if err != nil {
			return nil, err
		}

		rdn, err := der.Nested(a, der.TagSet, attributeValue)
		if err != nil {
			return nil, err
		}
		if err := rdnSequence.Add(rdn); err != nil {
			return nil, err
		}
	}
	return rdnSequence.Squash(a, der.TagSequence)
}
