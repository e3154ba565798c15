// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"github.com/H0llyW00dzZ/pkix-forge/src/internal/asn1/der"
	"github.com/H0llyW00dzZ/pkix-forge/src/internal/x509/certview"
)

// MaxSubordinateCAs is the hard ceiling on subordinate (non-anchor) CA
// certificates between the end entity and the trust anchor. It matches the
// longest chain the engine is exercised with while keeping recursion bounded
// over pathological trust domains. Exceeding it is indistinguishable from
// failing to find an issuer, so the builder reports ErrUnknownIssuer.
const MaxSubordinateCAs = 6

// BuildCertChain builds and validates a chain from certDER up to one of the
// trust domain's anchors, at verification time t. role states whether
// certDER is an end entity or a CA; requiredEKU restricts acceptable
// purposes when a certificate lists any; policy is always AnyPolicy here.
// stapledOCSPResponse, when non-nil, is forwarded to the trust domain's
// revocation check for the end entity only.
//
// On success the returned chain runs from certDER to the anchor. The builder
// accepts the first viable candidate at each step and does not backtrack
// into an already successful subtree; identical inputs produce identical
// results.
func BuildCertChain(trustDomain TrustDomain, certDER der.Input, t der.Time,
	role EndEntityOrCA, keyUsage KeyUsage, requiredEKU KeyPurposeID,
	policy CertPolicyID, stapledOCSPResponse der.Input) ([]der.Input, error) {
	if trustDomain == nil || len(certDER) == 0 {
		return nil, ErrInvalidArgs
	}

	b := &builder{
		trustDomain: trustDomain,
		time:        t,
		keyUsage:    keyUsage,
		requiredEKU: requiredEKU,
		policy:      policy,
		stapled:     stapledOCSPResponse,
	}
	chain, err := b.build(certDER, role, 0, nil)
	if err != nil {
		return nil, err
	}
	if err := trustDomain.IsChainValid(chain); err != nil {
		return nil, err
	}
	return chain, nil
}

type builder struct {
	trustDomain TrustDomain
	time        der.Time
	keyUsage    KeyUsage
	requiredEKU KeyPurposeID
	policy      CertPolicyID
	stapled     der.Input
}

// chainLink records the identity of one certificate already on the working
// chain, for loop refusal.
type chainLink struct {
	subject der.Input
	spki    der.Input
}

// build constructs a chain from certDER up to an anchor. subCACount is the
// number of non-self-issued subordinate CAs already placed below certDER on
// the working chain; working lists every placed certificate's identity.
func (b *builder) build(certDER der.Input, role EndEntityOrCA,
	subCACount int, working []chainLink) ([]der.Input, error) {
	cert, err := certview.Parse(certDER)
	if err != nil {
		return nil, err
	}

	// Validity is checked before anything else; in particular an expired
	// certificate fails here without its revocation ever being consulted.
	if b.time < cert.NotBefore {
		return nil, ErrNotYetValidCertificate
	}
	if b.time > cert.NotAfter {
		return nil, ErrExpiredCertificate
	}

	if err := b.trustDomain.CheckPublicKey(cert.SPKI); err != nil {
		return nil, err
	}

	// A certificate restricting its purposes must allow the required one.
	if required := b.requiredEKU.oidContents(); required != nil && cert.HasEKU {
		if !cert.HasEKUPurpose(required) {
			return nil, ErrCACertInvalid
		}
	}

	trust, err := b.trustDomain.GetCertTrust(role, b.policy, certDER)
	if err != nil {
		return nil, err
	}
	if trust == ActivelyDistrusted {
		return nil, ErrUnknownIssuer
	}

	if role == MustBeCA && trust != TrustAnchor {
		if !cert.HasBasicConstraints || !cert.BasicConstraintsCritical ||
			!cert.IsCA {
			return nil, ErrCACertInvalid
		}
	}
	if cert.IsCA && cert.PathLen >= 0 && subCACount > cert.PathLen {
		return nil, ErrPathLenConstraintInvalid
	}

	if trust == TrustAnchor {
		// The anchor's own signature is axiomatically trusted; only its
		// revocation status is still the domain's business. Lacking a
		// parent, the anchor identifies itself.
		err := b.trustDomain.CheckRevocation(role, CertID{
			Issuer:       cert.Issuer,
			IssuerSPKI:   cert.SPKI,
			SerialNumber: cert.SerialNumber,
		}, b.time, b.stapledFor(role), nil)
		if err != nil {
			return nil, err
		}
		return []der.Input{certDER}, nil
	}

	// Loop refusal: the same (subject, SPKI) identity never appears twice
	// on one working chain.
	for _, link := range working {
		if link.subject.Equal(cert.Subject) && link.spki.Equal(cert.SPKI) {
			return nil, ErrUnknownIssuer
		}
	}

	next := 0
	if role == MustBeCA {
		next = subCACount
		if !cert.SelfIssued() {
			next++
		}
		if next > MaxSubordinateCAs {
			return nil, ErrUnknownIssuer
		}
	}

	checker := &issuerChecker{
		builder:    b,
		subject:    cert,
		role:       role,
		subCACount: next,
		working:    append(working, chainLink{cert.Subject, cert.SPKI}),
	}
	if err := b.trustDomain.FindIssuer(cert.Issuer, checker, b.time); err != nil {
		return nil, err
	}
	if checker.chain == nil {
		if checker.bestBranchErr != nil {
			return nil, checker.bestBranchErr
		}
		return nil, ErrUnknownIssuer
	}

	chain := make([]der.Input, 0, len(checker.chain)+1)
	chain = append(chain, certDER)
	return append(chain, checker.chain...), nil
}

// stapledFor limits the stapled OCSP response to the end entity.
func (b *builder) stapledFor(role EndEntityOrCA) der.Input {
	if role == MustBeEndEntity {
		return b.stapled
	}
	return nil
}

// issuerChecker receives candidate issuers from TrustDomain.FindIssuer and
// recursively builds the rest of the chain from each, keeping the first
// candidate whose subtree builds AND whose key verifies the subject's
// signature, plus the most informative failure seen along the way.
type issuerChecker struct {
	builder    *builder
	subject    *certview.Certificate
	role       EndEntityOrCA
	subCACount int
	working    []chainLink

	chain []der.Input

	bestBranchErr error
}

func (c *issuerChecker) Check(issuerCertDER der.Input,
	additionalNameConstraints der.Input, keepGoing *bool) error {
	if c.chain != nil {
		*keepGoing = false
		return nil
	}

	chain, err := c.check(issuerCertDER)
	if err != nil {
		if IsFatal(err) {
			*keepGoing = false
			return err
		}
		// A failing subtree leaves keepGoing set so the trust domain can
		// offer other candidates.
		if errorRank(err) > errorRank(c.bestBranchErr) {
			c.bestBranchErr = err
		}
		*keepGoing = true
		return nil
	}

	c.chain = chain
	*keepGoing = false
	return nil
}

// check builds the issuer's subtree and then settles the subject's own
// edge: signature verification against the issuer's key, followed by the
// subject's revocation status.
func (c *issuerChecker) check(issuerCertDER der.Input) ([]der.Input, error) {
	chain, err := c.builder.build(issuerCertDER, MustBeCA, c.subCACount,
		c.working)
	if err != nil {
		return nil, err
	}

	issuer, err := certview.Parse(issuerCertDER)
	if err != nil {
		return nil, ErrLibraryFailure
	}

	b := c.builder
	err = b.trustDomain.VerifySignedData(SignedDataWithSignature{
		Data:        c.subject.TBS,
		AlgorithmID: c.subject.SignatureAlgorithm,
		Signature:   c.subject.Signature,
	}, issuer.SPKI)
	if err != nil {
		return nil, err
	}

	err = b.trustDomain.CheckRevocation(c.role, CertID{
		Issuer:       c.subject.Issuer,
		IssuerSPKI:   issuer.SPKI,
		SerialNumber: c.subject.SerialNumber,
	}, b.time, b.stapledFor(c.role), nil)
	if err != nil {
		return nil, err
	}
	return chain, nil
}
