// Package ssh provides the transport for the provisioning handoff:
// reachability probing, script and configuration upload over SFTP, remote
// command execution, and the detached launch of the remote setup process.
//
// Security: host key verification is disabled by default. The target is
// always a host this tool just created, so there is no prior trust record
// to verify against; stale known_hosts entries for reused addresses are
// scrubbed with ForgetHost before the first connection.
package ssh
