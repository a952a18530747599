// Package transport is the SDK's network boundary.
//
// A Transport sends one HTTP exchange and reports the status code, headers
// and raw body. Two variants ship:
//
//   - HTTP: the default, built on net/http with configurable timeout, TLS and
//     default headers.
//   - Func: wraps a caller-supplied function so hosts that forbid direct
//     networking can route traffic through their own primitive.
//
// Transports never turn a non-2xx status into an error. Status inspection is
// the request executor's job, so a Func that returns every status unchanged
// behaves exactly like HTTP.
package transport
