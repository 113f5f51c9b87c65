// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, logging and tracing concerns are all
// handled at this layer before requests are forwarded to the service layer.
//
// The note routes are list-shaped: POST accepts either a single object or a
// JSON list (bulk create), PUT/PATCH accept lists only (bulk update), and
// DELETE on the collection URL destroys the records named by the idList
// query parameter. Validation failures are rendered in the same shape the
// payload had: a list of field→message maps for list payloads, one map for
// single objects.
package http
