// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the quick-poll API.

# Handler Types

  - PollHandler: create, fetch, vote, reset
  - LiveHandler: websocket stream of poll changes

Handlers are created via constructor functions that accept the poll
service:

	pollHandler := handlers.NewPollHandler(svc)
	liveHandler := handlers.NewLiveHandler(svc, h)

# Poll Lifecycle

There is at most one active poll. Creating a poll replaces it, reset
removes it:

	POST /poll   → CreatePoll (201, {message, poll})
	GET  /poll   → GetPoll    (200 poll, 404 "No active poll")
	POST /vote   → Vote       (200, {message, poll})
	POST /reset  → Reset      (200, {message})

# Error Mapping

Service errors become status codes here and nowhere else:

	ErrInvalidQuestion, ErrInvalidOptions, ErrTooFewOptions → 400
	ErrNoActivePoll                                        → 404
	ErrInvalidOptionID                                     → 400
	anything else (ErrStoreUnavailable)                    → 500

Error bodies are {"error": "<message>"} with the user-facing messages
expected by the browser client.

# Live Updates

	GET /poll/live → Stream

The first message is a poll.snapshot event with the current poll (or a
null poll). Every later message is a poll.created, poll.voted or
poll.reset event broadcast by the hub.
*/
package handlers
