// Package config loads and validates the deploy-run configuration.
//
// Settings come from a YAML file (linup.yaml by default) overlaid with
// environment variables (LINODE_TOKEN, LINUP_*). Validation is eager and
// reports every missing required key at once; a run never starts with a
// partial configuration.
package config
