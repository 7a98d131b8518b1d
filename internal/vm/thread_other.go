//go:build !unix

package vm

// warnIfStackTooSmall has no portable equivalent outside unix — there
// is no RLIMIT_STACK to query.
func warnIfStackTooSmall() {}
