// Package api exposes the scheduling service over HTTP. Handlers decode and
// validate camelCase JSON bodies, check that the authenticated user owns the
// calendar named in the path, and translate schedule errors into status codes
// and sanitized messages.
package api
