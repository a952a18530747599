// Package logger provides structured logging for the SDK using zerolog.
//
// Library components default to Nop so that embedding applications see no
// output unless they pass a configured logger in:
//
//	log := logger.New(&logger.Config{Level: "debug", Format: "json"})
//	exec := request.NewExecutor(transport, request.WithLogger(log))
//
// Components tag their logger with WithComponent and attach fields built with
// Fields, ErrorFields and DurationFields.
package logger
