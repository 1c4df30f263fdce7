// Package sdf models Simulation Description Format documents: models built
// from rigid-body links with collision and visual geometry, worlds composing
// models by reference, and the model.config manifests that accompany them.
// It provides a strict text codec for the numeric tuple elements (poses,
// sizes, colors), deterministic XML encoding, and validation of the
// structural invariants a simulator's loader expects (unique child names,
// positive geometry dimensions, finite 6-tuple poses, physically plausible
// inertia).
//
// Mesh URIs and material script references are carried as opaque strings;
// resolving them is the consuming simulator's job.
package sdf
