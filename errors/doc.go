// Package errors defines the structured error taxonomy returned by the SDK.
//
// Every failure surfaced to a caller is an *Error carrying a Kind:
//
//   - KindTransport: the exchange did not complete (DNS, refused, timeout).
//   - KindAPI: the exchange completed with a non-2xx status. Code and Message
//     hold the decoded wire error payload when the server sent one.
//   - KindProtocol: the reply could not be interpreted (malformed JSON, a
//     batch reply whose length disagrees with the request).
//   - KindValidation: a decoded payload failed its declared shape check.
//   - KindUsage: the SDK was driven incorrectly (e.g. executing a batch twice).
//
// Callers branch with errors.As or the Is* predicates:
//
//	if twerrors.HasCode(err, "INVALID_TOKEN") { ... }
package errors
