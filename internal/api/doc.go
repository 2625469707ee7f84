// Package api exposes the learner, item, review and session services over HTTP.
// Handlers translate requests into service calls and map domain errors onto
// status codes and safe messages.
package api
