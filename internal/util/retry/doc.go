// Package retry provides exponential backoff retry logic for transient failures.
//
// The [Do] function retries an operation with configurable max attempts,
// initial delay, and maximum delay. It is used for SSH connection
// establishment against freshly booted instances, where the first dials
// routinely fail until sshd comes up.
package retry
