// Package request builds and executes single API calls.
//
// The Executor turns a logical call (method, API root, path, token, params)
// into one wire exchange: GET params become the query string, POST params a
// JSON body, both after naming translation. It attaches the bearer token,
// sends through a transport.Transport and normalizes the reply into an
// Envelope. Non-2xx replies fail with a KindAPI error that carries the
// decoded error payload.
//
// A Descriptor captures a call without executing it. Do runs a descriptor
// immediately; the batch package collects descriptors and ships them in one
// physical request:
//
//	sess := request.Session{Executor: exec, BaseURI: "https://api.twist.com/api", Token: token}
//	ch, err := request.Do(ctx, sess, request.Get("v3/channels/getone", request.Params{"id": 7}, validation.Struct[Channel]()))
package request
