// Package history builds the recombination history: the free-electron
// fraction xe(z) and matter temperature Tm(z) from z = 8000 down to
// reionization.
//
// The [Builder] walks the fixed log-scale-factor grid through eight ordered
// physical regimes: Saha equilibrium for doubly-ionized helium, post-Saha
// perturbation theory for neutral helium and hydrogen, and explicit
// multistep ODE integration for everything after, first with the matter
// temperature pinned to its Compton steady state and finally evolving it
// alongside xe. Regime switches are one-way; the grid index only advances.
//
// The loop is strictly sequential and deterministic for a given parameter
// set. Context cancellation is checked cooperatively.
package history
