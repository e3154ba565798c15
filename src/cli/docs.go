// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for pkix-forge.
// It implements a Cobra-based CLI with two workflows: forging a certificate
// chain (and optional OCSP response) from a YAML profile into DER files, and
// verifying a certificate against a pool of anchors with the chain builder.
// Output goes through the logger package; chain summaries render as markdown
// tables.
package cli
