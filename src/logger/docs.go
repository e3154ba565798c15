// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides the logging interface shared by the pkix-forge
// CLI workflows, with a human-readable implementation for interactive use
// and a structured JSON implementation that stays silent unless explicitly
// pointed at a writer.
package logger
