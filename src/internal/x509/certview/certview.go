// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certview

import (
	"bytes"
	"errors"
	"fmt"

	"golang.org/x/crypto/cryptobyte"
	cryptobyte_asn1 "golang.org/x/crypto/cryptobyte/asn1"

	"github.com/H0llyW00dzZ/pkix-forge/src/internal/asn1/der"
)

var (
	// ErrMalformedCertificate indicates DER that does not parse as a
	// Certificate under the strict subset the builder accepts.
	ErrMalformedCertificate = errors.New("certview: malformed certificate")

	// ErrUnsupportedSignature indicates a signature BIT STRING with unused
	// bits, which no artifact the engine handles ever has.
	ErrUnsupportedSignature = errors.New("certview: signature has unused bits")
)

// Certificate is the abstract view of one parsed certificate. Name fields
// stay encoded: the builder only ever compares them byte-for-byte. All
// slices alias the input buffer and share its lifetime.
type Certificate struct {
	Raw der.Input

	// TBS is the complete tbsCertificate element, the exact bytes a
	// signature verification runs over.
	TBS der.Input

	Version      int
	SerialNumber der.Input // complete INTEGER element

	// SignatureAlgorithm is the outer AlgorithmIdentifier element;
	// Signature is the BIT STRING payload with the unused-bits octet
	// stripped.
	SignatureAlgorithm der.Input
	Signature          der.Input

	Issuer    der.Input // complete Name element
	NotBefore der.Time
	NotAfter  der.Time
	Subject   der.Input // complete Name element
	SPKI      der.Input // complete SubjectPublicKeyInfo element

	// BasicConstraints, when present.
	HasBasicConstraints      bool
	BasicConstraintsCritical bool
	IsCA                     bool
	PathLen                  int // -1 when absent

	// ExtendedKeyUsage purposes as OID contents octets, when present.
	HasEKU bool
	EKUs   [][]byte
}

// SelfIssued reports whether subject and issuer are the same encoded name.
func (c *Certificate) SelfIssued() bool { return c.Subject.Equal(c.Issuer) }

// HasEKUPurpose reports whether the certificate lists the purpose, given as
// OID contents octets. Only meaningful when HasEKU is set.
func (c *Certificate) HasEKUPurpose(oid []byte) bool {
	for _, eku := range c.EKUs {
		if bytes.Equal(eku, oid) {
			return true
		}
	}
	return false
}

// Parse decodes raw into a certificate view. It accepts exactly the profile
// the builder needs: definite lengths, v1 or v3 layout, one signature BIT
// STRING with no unused bits, and well-formed extension framing.
func Parse(raw []byte) (*Certificate, error) {
	c := &Certificate{Raw: der.Input(raw), PathLen: -1}

	outer := cryptobyte.String(raw)
	var cert cryptobyte.String
	if !outer.ReadASN1(&cert, cryptobyte_asn1.SEQUENCE) || !outer.Empty() {
		return nil, ErrMalformedCertificate
	}

	var tbsElement cryptobyte.String
	if !cert.ReadASN1Element(&tbsElement, cryptobyte_asn1.SEQUENCE) {
		return nil, ErrMalformedCertificate
	}
	c.TBS = der.Input(tbsElement)

	var signatureAlgorithm cryptobyte.String
	if !cert.ReadASN1Element(&signatureAlgorithm, cryptobyte_asn1.SEQUENCE) {
		return nil, ErrMalformedCertificate
	}
	c.SignatureAlgorithm = der.Input(signatureAlgorithm)

	var signature cryptobyte.String
	if !cert.ReadASN1(&signature, cryptobyte_asn1.BIT_STRING) || !cert.Empty() {
		return nil, ErrMalformedCertificate
	}
	if len(signature) < 1 || signature[0] != 0 {
		return nil, ErrUnsupportedSignature
	}
	c.Signature = der.Input(signature[1:])

	if err := c.parseTBS(tbsElement); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Certificate) parseTBS(tbsElement cryptobyte.String) error {
	var tbs cryptobyte.String
	if !tbsElement.ReadASN1(&tbs, cryptobyte_asn1.SEQUENCE) {
		fmt.Println("DEBUG fail #1")
		return ErrMalformedCertificate
	}

	var versionWrapper cryptobyte.String
	var hasVersion bool
	if !tbs.ReadOptionalASN1(&versionWrapper, &hasVersion,
		cryptobyte_asn1.Tag(0).Constructed().ContextSpecific()) {
		fmt.Println("DEBUG fail #2")
		return ErrMalformedCertificate
	}
	if hasVersion {
		if !versionWrapper.ReadASN1Integer(&c.Version) || !versionWrapper.Empty() {
			fmt.Println("DEBUG fail #3")
			return ErrMalformedCertificate
		}
	}

	var serialNumber cryptobyte.String
	if !tbs.ReadASN1Element(&serialNumber, cryptobyte_asn1.INTEGER) {
		fmt.Println("DEBUG fail #4")
		return ErrMalformedCertificate
	}
	c.SerialNumber = der.Input(serialNumber)

	var tbsSignature cryptobyte.String
	if !tbs.ReadASN1Element(&tbsSignature, cryptobyte_asn1.SEQUENCE) {
		fmt.Println("DEBUG fail #5")
		return ErrMalformedCertificate
	}

	var issuer cryptobyte.String
	if !tbs.ReadASN1Element(&issuer, cryptobyte_asn1.SEQUENCE) {
		fmt.Println("DEBUG fail #6")
		return ErrMalformedCertificate
	}
	c.Issuer = der.Input(issuer)

	var validity cryptobyte.String
	if !tbs.ReadASN1(&validity, cryptobyte_asn1.SEQUENCE) {
		fmt.Println("DEBUG fail #7")
		return ErrMalformedCertificate
	}
	var err error
	if c.NotBefore, err = readTime(&validity); err != nil {
		return err
	}
	if c.NotAfter, err = readTime(&validity); err != nil {
		return err
	}
	if !validity.Empty() {
		fmt.Println("DEBUG fail #8")
		return ErrMalformedCertificate
	}

	var subject cryptobyte.String
	if !tbs.ReadASN1Element(&subject, cryptobyte_asn1.SEQUENCE) {
		fmt.Println("DEBUG fail #9")
		return ErrMalformedCertificate
	}
	c.Subject = der.Input(subject)

	var spki cryptobyte.String
	if !tbs.ReadASN1Element(&spki, cryptobyte_asn1.SEQUENCE) {
		fmt.Println("DEBUG fail #10")
		return ErrMalformedCertificate
	}
	c.SPKI = der.Input(spki)

	var extensionsWrapper cryptobyte.String
	var hasExtensions bool
	if !tbs.ReadOptionalASN1(&extensionsWrapper, &hasExtensions,
		cryptobyte_asn1.Tag(3).Constructed().ContextSpecific()) || !tbs.Empty() {
		fmt.Println("DEBUG fail #11")
		return ErrMalformedCertificate
	}
	if hasExtensions {
		if err := c.parseExtensions(extensionsWrapper); err != nil {
			return err
		}
	}
	return nil
}

func readTime(validity *cryptobyte.String) (der.Time, error) {
	var contents cryptobyte.String
	var tag cryptobyte_asn1.Tag
	if !validity.ReadAnyASN1(&contents, &tag) {
		return 0, ErrMalformedCertificate
	}
	t, err := der.ParseTime(byte(tag), contents)
	if err != nil {
		return 0, ErrMalformedCertificate
	}
	return t, nil
}

func (c *Certificate) parseExtensions(wrapper cryptobyte.String) error {
	var extensions cryptobyte.String
	if !wrapper.ReadASN1(&extensions, cryptobyte_asn1.SEQUENCE) || !wrapper.Empty() {
		fmt.Println("DEBUG fail #12")
		return ErrMalformedCertificate
	}
	for !extensions.Empty() {
		var extension cryptobyte.String
		if !extensions.ReadASN1(&extension, cryptobyte_asn1.SEQUENCE) {
			fmt.Println("DEBUG fail #13")
			return ErrMalformedCertificate
		}
		var oid cryptobyte.String
		if !extension.ReadASN1(&oid, cryptobyte_asn1.OBJECT_IDENTIFIER) {
			fmt.Println("DEBUG fail #14")
			return ErrMalformedCertificate
		}
		var critical bool
		if !extension.ReadOptionalASN1Boolean(&critical, cryptobyte_asn1.BOOLEAN, false) {
			fmt.Println("DEBUG fail #15")
			return ErrMalformedCertificate
		}
		var value cryptobyte.String
		if !extension.ReadASN1(&value, cryptobyte_asn1.OCTET_STRING) ||
			!extension.Empty() {
			fmt.Println("DEBUG fail #16")
			return ErrMalformedCertificate
		}

		switch {
		case oidEquals(oid, der.OIDBasicConstraints):
			if err := c.parseBasicConstraints(value, critical); err != nil {
				return err
			}
		case oidEquals(oid, der.OIDExtKeyUsage):
			if err := c.parseEKU(value); err != nil {
				return err
			}
		}
	}
	return nil
}

func oidEquals(oid cryptobyte.String, tag der.OIDTag) bool {
	contents, ok := der.OIDContents(tag)
	return ok && bytes.Equal(oid, contents)
}

func (c *Certificate) parseBasicConstraints(value cryptobyte.String,
	critical bool) error {
	c.HasBasicConstraints = true
	c.BasicConstraintsCritical = critical

	var basicConstraints cryptobyte.String
	if !value.ReadASN1(&basicConstraints, cryptobyte_asn1.SEQUENCE) ||
		!value.Empty() {
		fmt.Println("DEBUG fail #17")
		return ErrMalformedCertificate
	}
	if !basicConstraints.ReadOptionalASN1Boolean(&c.IsCA, cryptobyte_asn1.BOOLEAN, false) {
		fmt.Println("DEBUG fail #18")
		return ErrMalformedCertificate
	}
	if !basicConstraints.Empty() {
		if !basicConstraints.ReadASN1Integer(&c.PathLen) ||
			!basicConstraints.Empty() || c.PathLen < 0 {
			fmt.Println("DEBUG fail #19")
			return ErrMalformedCertificate
		}
	}
	return nil
}

func (c *Certificate) parseEKU(value cryptobyte.String) error {
	c.HasEKU = true

	var purposes cryptobyte.String
	if !value.ReadASN1(&purposes, cryptobyte_asn1.SEQUENCE) || !value.Empty() {
		fmt.Println("DEBUG fail #20")
		return ErrMalformedCertificate
	}
	for !purposes.Empty() {
		var oid cryptobyte.String
		if !purposes.ReadASN1(&oid, cryptobyte_asn1.OBJECT_IDENTIFIER) {
			fmt.Println("DEBUG fail #21")
			return ErrMalformedCertificate
		}
		c.EKUs = append(c.EKUs, []byte(oid))
	}
	return nil
}
