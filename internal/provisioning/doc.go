// Package provisioning implements the deploy run: create the instance,
// wait for running status, wait for SSH reachability, build and transfer
// the setup configuration, and launch the remote setup process.
//
// The run is a sequential phase pipeline. Each phase reads and writes the
// shared State carried by the Context; the first failing phase aborts the
// rest. There is no partial-success resume: a rerun provisions a new
// instance and opens a new password log.
package provisioning
