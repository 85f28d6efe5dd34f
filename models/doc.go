// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: question, options (kept raw, see OptionLabels)
  - VoteRequest: optionId (kept raw, see ID)

Raw fields let handlers distinguish a malformed body from a well-formed
body carrying the wrong shape, which the service reports with its own
errors.

# Response Types

  - PollResponse: message, poll
  - MessageResponse: message
  - ErrorResponse: error

# Domain Types

  - Poll: question, ordered options, createdAt, id
  - Option: 1-based id, label, vote counter

Poll and Option carry both json and bson tags; the same struct is stored in
MongoDB and written to clients.
*/
package models
