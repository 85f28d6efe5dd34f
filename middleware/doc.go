// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /poll", middleware.WithLogging(handler))

Logs request start (method, path, client_ip) and completion (status,
duration_ms). The wrapped writer still supports hijacking, so websocket
handlers can be logged too.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Reflects the request Origin (or "*"), allows GET, POST and OPTIONS and
answers preflight requests with 204.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "No active poll")

Errors are written as {"error": "<message>"}.

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For (first hop), X-Real-IP and RemoteAddr.
*/
package middleware
