// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the PulsePoll API.

# Handler Types

Each handler is a struct holding its store/hub/config dependencies:

  - PollHandler: poll lifecycle (create, list, get, close, delete)
  - VotingHandler: vote recording and guest voter tokens
  - ResultsHandler: tallies with percentages
  - LiveHandler: WebSocket subscription to live tally updates

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(st, cfg)

# Poll Lifecycle

Polls open on creation and stay open until closed by their creator:

	POST   /polls            → CreatePoll (returns creator_key)
	POST   /polls/{id}/close → ClosePoll
	DELETE /polls/{id}       → DeletePoll

Creator operations require the X-Creator-Key header.

# Voting Flow

	POST /voters           → VoterToken (guest identity, persisted client-side)
	POST /polls/{id}/vote  → Vote (option_id + voter_id or X-Voter-Token)

An accepted vote responds with the updated tallies and publishes the same
TallyUpdate to live subscribers of the poll. Rejections carry one of the
stable reason codes: NotFound, PollClosed, OptionNotFound, AlreadyVoted,
ValidationError, Unavailable.

# Live Updates

	GET /polls/{id}/live → Subscribe (WebSocket)

The server pushes one JSON TallyUpdate frame per accepted vote, in commit
order per poll. Clients that reconnect re-fetch poll state; there is no
replay.
*/
package handlers
