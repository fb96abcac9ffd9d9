// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// compressionLevel trades a little ratio for speed on small JSON bodies.
const compressionLevel = 5

// compressor only touches API envelopes; anything else passes through.
var compressor = chimw.NewCompressor(compressionLevel, "application/json")

// Compression gzips (or deflates) JSON responses for clients that accept it.
func Compression(next http.Handler) http.Handler {
	return compressor.Handler(next)
}
