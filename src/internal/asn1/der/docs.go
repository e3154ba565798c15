// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package der implements the deterministic [DER] core shared by the
// certificate and OCSP encoders and by the chain builder's parsers.
// It provides:
//   - Tag constants and shortest-form definite length encoding for the fixed
//     ASN.1 subset X.509 and OCSP need.
//   - An [Output] emitter that squashes borrowed, already-encoded children
//     into one constructed value allocated from an arena.
//   - Primitive encoders (INTEGER, BOOLEAN, OBJECT IDENTIFIER, BIT STRING
//     with a corruption hook, hashed OCTET STRING, AlgorithmIdentifier).
//   - A [Time] representation counted in seconds since year 0 AD, with the
//     RFC 5280 UTCTime/GeneralizedTime choice rule.
//
// [DER]: https://grokipedia.com/page/X.690
package der
