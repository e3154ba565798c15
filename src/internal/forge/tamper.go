// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package forge

import "bytes"

// tamperMinPatternLen keeps patterns long enough that a match cannot be an
// accident of DER framing.
const tamperMinPatternLen = 8

// TamperOnce overwrites, in place, the single occurrence of from inside blob
// with to. from and to must have equal length, at least tamperMinPatternLen.
// Zero or more than one occurrence is an error, so a test that tampers knows
// it mutated exactly the field it aimed at.
func TamperOnce(blob, from, to []byte) error {
	if blob == nil || from == nil || to == nil || len(from) != len(to) {
		return ErrInvalidArgs
	}
	if len(from) < tamperMinPatternLen {
		return ErrInvalidArgs
	}

	first := bytes.Index(blob, from)
	if first < 0 {
		return ErrInvalidArgs
	}
	if bytes.Contains(blob[first+len(from):], from) {
		return ErrInvalidArgs
	}
	copy(blob[first:], to)
	return nil
}
