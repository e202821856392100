// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify implements the in-process publish/subscribe hub for live
vote updates.

Topics are poll IDs. Publishing happens after the vote transaction commits;
subscribers that connect later do not see earlier updates and must fetch
current poll state themselves.

# Delivery Semantics

  - Best effort, at most once per event, no replay.
  - Per poll, each subscriber sees updates in publish order (publishes are
    serialized under the hub lock and channels preserve order).
  - No ordering across different polls.
  - A subscriber whose 16-slot buffer is full misses the event rather than
    blocking the publisher.
*/
package notify
