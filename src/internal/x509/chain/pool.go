// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"github.com/H0llyW00dzZ/pkix-forge/src/internal/asn1/der"
	"github.com/H0llyW00dzZ/pkix-forge/src/internal/x509/certview"
)

// MemoryTrustDomain is a TrustDomain over an in-memory certificate pool:
// anchors and intermediates are added up front, FindIssuer answers from a
// subject-name index, and signature checks use real RSA verification. It is
// the domain the CLI verifies with and the default one tests build against.
//
// MemoryTrustDomain is not safe for concurrent mutation; populate it fully
// before building chains.
type MemoryTrustDomain struct {
	anchors    map[string]struct{}
	distrusted map[string]struct{}
	bySubject  map[string][]der.Input

	// RevocationCheck, when set, replaces the default judgement that
	// nothing is ever revoked. Tests use it to forbid or script revocation
	// outcomes.
	RevocationCheck func(role EndEntityOrCA, certID CertID, t der.Time,
		stapledOCSPResponse der.Input, aiaExtension der.Input) error
}

// NewMemoryTrustDomain returns an empty pool.
func NewMemoryTrustDomain() *MemoryTrustDomain {
	return &MemoryTrustDomain{
		anchors:    make(map[string]struct{}),
		distrusted: make(map[string]struct{}),
		bySubject:  make(map[string][]der.Input),
	}
}

// AddAnchor adds certDER as a trust anchor and indexes it as a candidate
// issuer.
func (d *MemoryTrustDomain) AddAnchor(certDER []byte) error {
	if err := d.AddCert(certDER); err != nil {
		return err
	}
	d.anchors[string(certDER)] = struct{}{}
	return nil
}

// AddCert indexes certDER as a candidate issuer for its subject name.
func (d *MemoryTrustDomain) AddCert(certDER []byte) error {
	cert, err := certview.Parse(certDER)
	if err != nil {
		return err
	}
	subject := string(cert.Subject)
	d.bySubject[subject] = append(d.bySubject[subject], der.Input(certDER))
	return nil
}

// Distrust marks certDER as actively distrusted.
func (d *MemoryTrustDomain) Distrust(certDER []byte) {
	d.distrusted[string(certDER)] = struct{}{}
}

// GetCertTrust classifies by exact DER identity against the pool.
func (d *MemoryTrustDomain) GetCertTrust(role EndEntityOrCA,
	policy CertPolicyID, candidateCert der.Input) (TrustLevel, error) {
	if _, ok := d.distrusted[string(candidateCert)]; ok {
		return ActivelyDistrusted, nil
	}
	if _, ok := d.anchors[string(candidateCert)]; ok {
		return TrustAnchor, nil
	}
	return InheritsTrust, nil
}

// FindIssuer offers every pool certificate whose subject matches, in
// insertion order, until the checker stops the enumeration.
func (d *MemoryTrustDomain) FindIssuer(encodedIssuerName der.Input,
	checker IssuerChecker, t der.Time) error {
	for _, candidate := range d.bySubject[string(encodedIssuerName)] {
		keepGoing := true
		if err := checker.Check(candidate, nil, &keepGoing); err != nil {
			return err
		}
		if !keepGoing {
			break
		}
	}
	return nil
}

// CheckRevocation consults the RevocationCheck hook; with no hook installed
// nothing is ever revoked.
func (d *MemoryTrustDomain) CheckRevocation(role EndEntityOrCA, certID CertID,
	t der.Time, stapledOCSPResponse der.Input, aiaExtension der.Input) error {
	if d.RevocationCheck != nil {
		return d.RevocationCheck(role, certID, t, stapledOCSPResponse,
			aiaExtension)
	}
	return nil
}

// IsChainValid accepts every chain that reached it.
func (d *MemoryTrustDomain) IsChainValid(chain []der.Input) error {
	if len(chain) == 0 {
		return ErrInvalidArgs
	}
	return nil
}

// VerifySignedData performs real RSA verification.
func (d *MemoryTrustDomain) VerifySignedData(signedData SignedDataWithSignature,
	spki der.Input) error {
	return VerifySignedData(signedData, spki)
}

// CheckPublicKey performs the package's RSA acceptance check.
func (d *MemoryTrustDomain) CheckPublicKey(spki der.Input) error {
	return CheckPublicKey(spki)
}

// DigestBuf is never exercised by chain building; it fails loudly instead of
// guessing semantics.
func (d *MemoryTrustDomain) DigestBuf(item der.Input, out []byte) error {
	return ErrLibraryFailure
}
