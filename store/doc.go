// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store owns poll persistence and the vote recorder.

All mutation routes through PollStore; handlers never touch the database
directly. The store guarantees that after every call, successful or not:

	total_votes == sum(option.votes) == count(poll_voter rows)

and, per option on polls with sentiment tracking:

	positive + neutral + negative == votes

# Vote Recording

RecordVote validates in a fixed order - poll exists, poll open, option
belongs to poll, voter unseen - and applies all counter updates plus the
voter insert in a single transaction. The duplicate-voter check is not the
read: it is the PRIMARY KEY (poll_id, voter_id) on poll_voter, which
rejects the second of two racing attempts at commit time. Transient driver
conflicts (SQLITE_BUSY, postgres serialization failures) are retried up to
three times with linear backoff, then surfaced as ErrUnavailable.

# Errors

Callers branch on the sentinel errors:

	ErrNotFound, ErrPollClosed, ErrOptionNotFound, ErrAlreadyVoted,
	ErrInvalidSentiment, ErrUnavailable

Everything else is an internal storage failure, wrapped with context.
*/
package store
