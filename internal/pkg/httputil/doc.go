// Package httputil provides shared HTTP response/request utilities for the
// JSON API handlers, so every endpoint reports errors with the same envelope.
package httputil
