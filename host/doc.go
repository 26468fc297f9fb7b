// Package host implements the native call boundary of the vector registry:
// a table of named natives taking (vector id, integer arguments) and
// returning a single integer, or a sentinel failure code. A Host is the
// per-session context object: it owns the registry, the debug toggle, the
// logger and the metrics recorder, and serializes every call.
package host
