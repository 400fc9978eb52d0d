// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides the HTTP plumbing shared by the backend client
and the fake backend used in tests.

# Request Logging

Outbound requests are logged by wrapping the client transport:

	client := &http.Client{Transport: middleware.LoggingTransport{}}

Failures log at warn with the error; completions log at debug with
status and duration_ms.

Handlers can be wrapped the same way:

	mux.HandleFunc("GET /polls", middleware.WithLogging(handler))

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Read them back on the client side:

	if err := middleware.DecodeJSONResponse(resp, &poll); err != nil { ... }
	msg := middleware.ErrorMessage(resp)

# User Header

Mutating requests identify the caller with the X-USER-ID header
(UserIDHeader).
*/
package middleware
