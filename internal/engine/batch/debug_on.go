//go:build batchdebug

package batch

// Built with -tags batchdebug every back-reference write is verified.
const debugChecks = true
