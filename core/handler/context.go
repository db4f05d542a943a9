package handler

import (
	"context"
	"net/http"
)

// Context is the request-scoped context every handler receives.
// It embeds context.Context so it can be passed straight to stores and clients.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}
