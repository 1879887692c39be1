// Package linode wraps the Linode API behind a typed Client interface.
//
// Provisioning and the CLI never parse provider tool output; every value
// (instance id, status, address, catalogue entries) arrives as a
// structured field. RealClient is the linodego-backed implementation,
// MockClient the test double.
package linode
