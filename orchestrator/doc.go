// Package orchestrator implements the Translation Orchestrator: given a
// source format, a destination format, and a shader stage, it selects
// and drives the fixed sequence of backend calls per spec.md §4.5, and
// builds runtime GPU-shader handles per spec.md §4.6.
package orchestrator
