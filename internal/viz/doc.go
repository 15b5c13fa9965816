// Package viz renders linkage mechanisms in the terminal.
//
// [Canvas] is a Braille-dot drawing surface; [Frame] projects a
// mechanism snapshot and its trajectories onto one. [Model] is a
// bubbletea program animating a linkage live.
//
// The package only reads snapshots, segments and trajectories; the
// solver never depends on it.
package viz
