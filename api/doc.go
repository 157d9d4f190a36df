// Package api exposes the console over HTTP. Every endpoint answers
// with a uniform JSON envelope carrying either a payload or an error
// message, and domain errors are translated into HTTP status codes at
// this boundary only.
package api
