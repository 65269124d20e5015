// Package contestantservice owns contestant lifecycle inside the
// event-voting context: creation, profile updates, soft deletion, and the
// public listing that strips voter emails. Tally mutation is deliberately
// excluded; only the voting engine writes vote totals.
package contestantservice
