// Package recomb provides core primitives for recombination-history runs.
//
// The package defines the fundamental types shared by the integration
// pipeline:
//
//   - [History]: the free-electron fraction and matter temperature arrays
//     on the uniform log-scale-factor grid
//   - [Model]: the active atomic-physics model, a runtime configuration value
//   - [Mechanism]: the ionization channel requested for a single rate call
//   - [StageState]: the lagged derivative samples carried by the multistep
//     scheme across one stage
//
// # Thread Safety
//
// A history build is strictly sequential; none of these types are safe for
// concurrent mutation. Observers attached to a build are invoked from the
// integration goroutine only.
package recomb
