// Package kv provides an interface for implementing
// kv drivers that back the map service.
//
// A kv plugin is a factory for root store instances. A root store
// contains zero or more named maps and each map is an ordered
// collection of records keyed by non-empty byte strings.
//
//  - Root Store
//    - Map A
//      - key1: abc
//      - key2: def
//    - Map B
//      - keyN: aaa
//      - keyM: xyz
//
// Maps are reached through handles. A handle is safe for concurrent
// use by any number of goroutines, except that Close must have
// exclusive access to it. A map can only be removed once every handle
// to it is closed, so callers must order close before remove.
//
// Expected outcomes (a missing key, a key that already exists, a map
// that already exists) are reported through Status values. Errors are
// reserved for failures of the engine itself.
package kv
