// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs loads externally produced certificate files into raw
// DER. It tolerates PEM wrapping and PKCS7 bundles at the boundary (via
// Cloudflare's [pkcs7] parser) so the CLI can seed trust pools from whatever
// a user has on disk, while everything past this package speaks only DER.
//
// [pkcs7]: https://pkg.go.dev/github.com/cloudflare/cfssl/crypto/pkcs7
package x509certs
