// Package mods defines mod metadata and discovers it on disk.
//
// # Manifest Format
//
// Every mod lives in its own directory containing a mod.toml:
//
//	id = "better-ui"
//	name = "Better UI"
//	version = "1.2.0"
//
//	[[dependencies]]
//	id = "core-lib"
//	order = "after"   # before | after | none
//	optional = false
//
// "before" means the declaring mod loads before the target, "after" means it
// loads after it and "none" only records that the target should exist.
//
// # Discovery
//
// [LoadDir] scans the immediate subdirectories of a mods folder and returns a
// [Set] keyed by mod id. The set is the read-only input of the resolver in
// package resolve; this package does not compute any ordering itself.
package mods
