// Package config loads the environment-sourced invocation configuration:
// the destination bucket, the mailbox user, the object key prefix and the
// OAuth refresh credential. A Config is built once per invocation and passed
// explicitly; nothing in this package holds global state.
package config
