// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509chain builds and validates [X.509] certificate chains from a
// target certificate up to a trust anchor. Every policy decision — trust
// classification, issuer lookup, revocation, signature verification, final
// chain acceptance — is delegated to a pluggable [TrustDomain]; the package
// contributes the search itself: bounded-depth recursion over candidate
// issuers, loop refusal, and triage of the most informative failure when no
// chain exists.
//
// The builder is single-threaded by design. Every callback runs to
// completion before the search continues, and a build is bounded by the
// subordinate-CA ceiling and the finite candidate lists the trust domain
// returns.
//
// [X.509]: https://grokipedia.com/page/X.509
package x509chain
