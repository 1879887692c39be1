// Package credentials generates run-scoped secrets and maintains the
// append-only password log.
//
// The invariant enforced here: a secret is written to the log before the
// caller ever sees it. Downstream consumers (instance root password,
// setup configuration) therefore always have an audit trail.
package credentials
