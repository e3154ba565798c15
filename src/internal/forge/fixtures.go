// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package forge

import (
	"crypto/rand"
	"io"

	"github.com/H0llyW00dzZ/pkix-forge/src/internal/asn1/der"
	"github.com/H0llyW00dzZ/pkix-forge/src/internal/helper/gc"
)

// Clock is a fixed-time clock. Tests and profiles pin "now" so encoded
// validity windows and OCSP timestamps are reproducible.
type Clock struct {
	now der.Time
}

// NewClock returns a clock frozen at t.
func NewClock(t der.Time) *Clock { return &Clock{now: t} }

// Now returns the pinned time.
func (c *Clock) Now() der.Time { return c.now }

// Context threads the shared state a forging session needs: the arena that
// owns every artifact, the randomness source for key generation, the validity
// window stamped onto certificates, and the serial counter that keeps serial
// numbers unique across the run.
//
// Context is not safe for concurrent use; the serial counter is ordinary
// mutable state made explicit here instead of hiding in a package variable.
type Context struct {
	Arena     *gc.Arena
	Random    io.Reader
	NotBefore der.Time
	NotAfter  der.Time

	serialNumber int
}

// NewContext returns a context over a, drawing randomness from crypto/rand
// and issuing certificates valid for a day either side of now.
func NewContext(a *gc.Arena, now der.Time) *Context {
	return &Context{
		Arena:     a,
		Random:    rand.Reader,
		NotBefore: now - der.OneDayInSeconds,
		NotAfter:  now + der.OneDayInSeconds,
	}
}

// NextSerialNumber encodes the next unique serial. Serials are single-byte
// test values, so a run can mint at most 127 of them.
func (c *Context) NextSerialNumber() ([]byte, error) {
	c.serialNumber++
	return CreateEncodedSerialNumber(c.Arena, c.serialNumber)
}

// CreateCert forges one v3 certificate named by ASCII issuer and subject
// strings. CA certificates get a critical cA=true BasicConstraints; a nil
// issuerKey self-signs. Returns the encoded certificate and the subject's
// key so the caller can issue children.
func (c *Context) CreateCert(issuerName, subjectName string, isCA bool,
	issuerKey *KeyPair) ([]byte, *KeyPair, error) {
	serialNumber, err := c.NextSerialNumber()
	if err != nil {
		return nil, nil, err
	}
	issuerDER, err := ASCIIToDERName(c.Arena, issuerName)
	if err != nil {
		return nil, nil, err
	}
	subjectDER, err := ASCIIToDERName(c.Arena, subjectName)
	if err != nil {
		return nil, nil, err
	}

	var extensions [][]byte
	if isCA {
		basicConstraints, err := CreateEncodedBasicConstraints(c.Arena, true,
			nil, Critical)
		if err != nil {
			return nil, nil, err
		}
		extensions = append(extensions, basicConstraints)
	}

	return CreateEncodedCertificate(c.Arena, c.Random, &CertificateContext{
		Version:      VersionV3,
		SerialNumber: serialNumber,
		IssuerDER:    issuerDER,
		NotBefore:    c.NotBefore,
		NotAfter:     c.NotAfter,
		SubjectDER:   subjectDER,
		Extensions:   extensions,
		IssuerKey:    issuerKey,
	})
}
