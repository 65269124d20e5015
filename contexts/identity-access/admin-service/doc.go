// Package adminservice owns management principals inside the identity-access
// context: credential login with session tokens, vote-weight settings, and
// the weight resolver the voting engine consults at code issuance. Admins are
// not part of the voting ledger itself.
package adminservice
