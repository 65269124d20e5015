// Package votingengine implements the vote verification and tallying core
// inside the event-voting context.
//
// The module owns the two-phase vote workflow (request-code, verify-and-commit),
// the expiring verification ledger, the weighted tally, statistics and
// dashboard reads, and the reset operation. Business rules live in the
// application/domain layers; storage, delivery, and weight resolution sit
// behind ports.
package votingengine
