// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation and validation.

# Creator Keys

Creator keys are HMAC-SHA256 signatures of the poll ID using a server-side
salt. They are deterministic, so the server never stores them:

	key := auth.GenerateCreatorKey(pollID, salt)
	err := auth.ValidateCreatorKey(pollID, key, salt)

The key is returned once at poll creation and required (X-Creator-Key
header) for close and delete.

# Voter Tokens

Voter tokens are 192-bit random values identifying guest voters:

	token, err := auth.GenerateVoterToken()

A client stores the token and presents it on every vote, which is how the
one-vote-per-voter invariant extends to participants without accounts.

# IP Hashing

HashIP produces a salted, truncated hash for auditing voter rows without
storing raw addresses.
*/
package auth
