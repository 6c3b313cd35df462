// Package growth provides population growth models for cultured cancer
// cell lines. State is one-dimensional: N(t), the cell count derived from
// normalized well area measurements. All models implement sim.Dynamics and
// expose their parameters by name for grid sweeps and fitting.
package growth
