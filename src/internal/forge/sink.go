// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package forge

import (
	"fmt"
	"os"
	"path/filepath"
)

// LogDirEnv names the environment variable holding the debug sink
// directory. When unset, the sink is disabled.
const LogDirEnv = "PKIX_FORGE_LOG_DIR"

// sinkCounter numbers artifacts across the whole process run.
// NOT THREAD-SAFE.
var sinkCounter int

// maybeLogOutput writes one top-level artifact to the debug sink as
// <counter>-<suffix>.der, so generated output can be inspected with external
// DER tooling. Write errors are ignored: the sink is a debugging aid, never
// part of the result.
func maybeLogOutput(result []byte, suffix string) {
	logDir := os.Getenv(LogDirEnv)
	if logDir == "" {
		return
	}
	filename := fmt.Sprintf("%d-%s.der", sinkCounter, suffix)
	sinkCounter++
	_ = os.WriteFile(filepath.Join(logDir, filename), result, 0644)
}
