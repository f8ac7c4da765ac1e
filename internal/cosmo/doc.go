// Package cosmo holds the immutable cosmological configuration and the
// closed-form background quantities derived from it: the Hubble expansion
// rate and the exotic energy-injection rate.
//
// All rate functions are pure; they validate nothing and assume a
// [Parameters] value constructed through [New], which enforces the physical
// preconditions.
package cosmo
