// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// pkix-forge is a command-line tool for forging X.509 test certificate
// chains and OCSP responses, and for building certification paths against a
// pool of trust anchors.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/pkix-forge/cmd/pkix-forge@latest
//
// # Usage
//
//	pkix-forge forge -p PROFILE.yaml [-o OUT_DIR] [--now RFC3339]
//	pkix-forge verify CERT.der [ISSUER.der...] -a ANCHOR.der [FLAGS]
//
// # Forge flags
//
//	-p, --profile  Chain profile YAML file [required]
//	-o, --out      Directory for the forged .der files (default: .)
//	    --now      Forge time as RFC 3339 (default: current time)
//
// # Verify flags
//
//	-a, --anchor   Trust anchor file, repeatable [required]
//	    --time     Verification time as RFC 3339 (default: current time)
//	    --role     Role of the target: end-entity or ca (default: end-entity)
//	    --eku      Required extended key usage (default: server_auth)
//
// # Profile example
//
//	chain:
//	  - name: "CN=Root CA,O=Forge"
//	    path_len: 2
//	  - name: "CN=Intermediate CA,O=Forge"
//	  - name: "CN=example.test"
//	    end_entity: true
//	    eku: [server_auth]
//	validity:
//	  not_before_offset: -86400
//	  not_after_offset: 86400
//	ocsp:
//	  status: good
//
// Setting the PKIX_FORGE_LOG_DIR environment variable to a directory makes
// the encoders mirror every artifact there as numbered .der files.
package main
