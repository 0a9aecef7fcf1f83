package billing

import (
	"encore.dev/middleware"
)

// idempotencyHeader is the header the mutating endpoints declare on their
// params; the middleware must read the same one.
const idempotencyHeader = "X-Idempotency-Key"

//encore:middleware target=tag:idempotency
func (s *Service) IdempotencyMiddleware(req middleware.Request, next middleware.Next) middleware.Response {
	// Get the idempotency key from the request header. Without one this
	// middleware does nothing.
	idempotencyKey := req.Data().Headers.Get(idempotencyHeader)
	if idempotencyKey == "" || req.Data().Method == "GET" {
		return next(req)
	}

	// The mutating endpoints are already idempotent end to end: contract
	// creation and call/statement inserts are conflict-free on their IDs,
	// and re-signalling a completed workflow is rejected by Temporal. The
	// key is reserved for a response cache in front of that, e.g. Redis:
	// look up the key, return the cached response if present, lock the key
	// while the request runs, store a 2xx response afterwards.
	resp := next(req)

	return resp
}
