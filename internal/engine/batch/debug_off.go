//go:build !batchdebug

package batch

const debugChecks = false
