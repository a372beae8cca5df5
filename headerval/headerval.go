// Package headerval parses and formats the values of specific HTTP/1.1
// header fields: URIs, content negotiation headers, caching directives,
// conditional-request validators, ranges, authentication credentials,
// cookies, and the handful of single-token headers (Expect, Trailer,
// Upgrade, Vary). Each family lives in its own file and exposes a Parse
// function returning a typed value plus a String/Format method that
// reconstructs the wire value — parse∘format is idempotent for every
// family, matching the grammar each is built from.
//
// None of this package touches message framing; it operates purely on
// the string already extracted from a message.Header by the caller.
package headerval

import "github.com/shapestone/shape-httpcodec/message"

func errInvalid(detail string) error { return message.NewInvalidHeaderValue(detail) }
