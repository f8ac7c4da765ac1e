// Package atomic supplies the per-mechanism ionization rate kernels and the
// Saha/post-Saha equilibrium solvers consumed by the history builder.
//
// Kernels are selected by two independent choices: the configured physics
// [recomb.Model] and the [recomb.Mechanism] requested per call. A
// [Provider] resolves the pair through a dispatch table, so the model is a
// configuration value and each kernel stays independently testable:
//
//	prov := atomic.NewProvider(recomb.ModelFull)
//	k, err := prov.Kernel(recomb.MechTwoPhoton)
//	dxedlna := k(in)
//
// Rates are d(xe)/dlna; temperatures cross the kernel boundary in eV.
package atomic
