// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package gc provides reusable byte buffer pooling to reduce garbage collection
// overhead. It abstracts the [bytebufferpool] library behind a small interface
// and layers an [Arena] bump allocator on top of it, which owns every DER
// artifact produced by the certificate and OCSP encoders.
//
// [bytebufferpool]: https://github.com/valyala/bytebufferpool
package gc
