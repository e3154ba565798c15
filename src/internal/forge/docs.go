// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package forge synthesises the DER artifacts the chain builder is tested
// against: signed [X.509] certificates, [OCSP] responses, and deliberately
// broken variants of both. It provides:
//   - RSA-2048 key generation with an entropy-starvation retry loop, signing,
//     and SubjectPublicKeyInfo/key-hash derivation.
//   - CreateEncodedCertificate and the extension encoders (BasicConstraints,
//     ExtendedKeyUsage).
//   - CreateEncodedOCSPResponse driven by an OCSPResponseContext of knobs,
//     including bad-signature and truncated-response variants.
//   - TamperOnce for surgical byte-level mutation of encoded artifacts.
//   - Fixtures: an ASCII distinguished-name parser, a fixed clock, and a
//     forging Context owning the arena and the serial counter.
//
// Every artifact is allocated from a [gc.Arena] and lives exactly as long as
// it. An optional debug sink (see LogDirEnv) mirrors artifacts to disk.
//
// [X.509]: https://grokipedia.com/page/X.509
// [OCSP]: https://grokipedia.com/page/Online_Certificate_Status_Protocol
package forge
