// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"errors"

	"github.com/H0llyW00dzZ/pkix-forge/src/internal/x509/certview"
)

// The closed result taxonomy of the builder. Callbacks and the builder only
// ever fail with one of these (possibly wrapped); the set grows by design,
// not convenience.
var (
	// ErrExpiredCertificate: the verification time is past a chain member's
	// notAfter.
	ErrExpiredCertificate = errors.New("x509chain: certificate is expired")

	// ErrNotYetValidCertificate: the verification time is before a chain
	// member's notBefore.
	ErrNotYetValidCertificate = errors.New("x509chain: certificate is not yet valid")

	// ErrUnknownIssuer: no candidate chain reaches a trust anchor within
	// the depth bound.
	ErrUnknownIssuer = errors.New("x509chain: unknown issuer")

	// ErrBadSignature: signature verification failed on a chain edge.
	ErrBadSignature = errors.New("x509chain: bad signature")

	// ErrCACertInvalid: a non-anchor certificate acting as a CA lacks a
	// critical cA=true BasicConstraints, or fails a purpose check.
	ErrCACertInvalid = errors.New("x509chain: CA certificate invalid")

	// ErrPathLenConstraintInvalid: a CA's pathLenConstraint forbids the
	// number of subordinate CAs below it.
	ErrPathLenConstraintInvalid = errors.New("x509chain: path length constraint violated")

	// ErrInvalidArgs: a programmer error in the caller. Fatal; the whole
	// build aborts.
	ErrInvalidArgs = errors.New("x509chain: invalid arguments")

	// ErrLibraryFailure: a callback produced an outcome the builder cannot
	// interpret. Fatal; the whole build aborts.
	ErrLibraryFailure = errors.New("x509chain: unexpected library failure")
)

// IsFatal reports whether err aborts the entire build rather than just the
// current candidate branch.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInvalidArgs) || errors.Is(err, ErrLibraryFailure)
}

// errorRank orders branch failures by how informative they are, so the
// builder can surface the best one once every candidate is exhausted.
// Structural (malformed DER) failures outrank semantic ones, which outrank
// the default "unknown issuer".
func errorRank(err error) int {
	switch {
	case err == nil:
		return -1
	case IsFatal(err):
		return 3
	case errors.Is(err, certview.ErrMalformedCertificate),
		errors.Is(err, certview.ErrUnsupportedSignature):
		return 2
	case errors.Is(err, ErrUnknownIssuer):
		return 0
	}
	return 1
}
