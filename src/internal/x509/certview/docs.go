// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package certview parses DER certificates into the abstract view the chain
// builder works on: structural fields, encoded name bytes, validity as
// engine [der.Time], and the two extensions the builder interprets
// (BasicConstraints and ExtendedKeyUsage). Everything else in a certificate
// passes through untouched as bytes.
package certview
