// Package resolve computes mod load orders.
//
// # Overview
//
// Mods declare relative ordering constraints on each other ("load before X",
// "load after Y"). Users also keep a persisted load order that they may have
// edited by hand. [Resolver.ResolveOrder] merges newly installed mods into
// that order while:
//
//   - keeping the relative order of mods the user already has
//   - dropping mods that are no longer installed
//   - never adding new mods the user disabled
//   - honoring every ordering constraint that can be honored
//
// The function never fails. Problems are reported as [Warning] values and the
// returned order is always usable.
//
// # Pipeline
//
// Resolution runs four steps:
//
//  1. [BuildGraph] turns the declarations of the enabled mods into
//     prerequisite and successor adjacency lists.
//  2. [FindCycles] runs Tarjan's strongly connected components algorithm over
//     the new mods only and reports every group of two or more mods that
//     require each other.
//  3. [InsertNewMods] places every new mod outside a cycle, one at a time in
//     alphabetical order, at the earliest slot returned by
//     [FindInsertPosition].
//  4. Cycle members are appended at the end in alphabetical order.
//
// # Determinism
//
// Map iteration order never leaks into the result: new mods, cycle members
// and adjacency lists are sorted explicitly before they are used.
//
// # Degradation
//
//   - Missing prerequisite: warned about (optional or required), no effect on
//     placement. Missing successors are not checked.
//   - Contradictory constraints: the mod is appended and a
//     ConflictingConstraints warning explains the two constraints involved.
//   - Cycles: members are appended and one CircularDependency warning is
//     emitted per cycle.
package resolve
