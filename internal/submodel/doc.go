// Package submodel provides the physics fragments a battery model is
// assembled from. Each submodel is a stateless value producer: it is
// constructed with an explicit parameter set, invoked once to build its
// contribution (equations, named output variables, events), and
// discarded.
//
// Dependencies between submodels are explicit: an equation-building call
// takes the expressions produced by earlier submodels as typed
// arguments, never as ambient lookups, so the dependency graph is
// visible in the call signatures. The canonical order is interfacial
// current, then particle transport, then electrolyte transport, then
// potential post-processing.
//
//   - [LithiumIonKinetics]: interfacial current and Butler-Volmer rates
//   - [ParticleDiffusion]: radial diffusion in a representative particle
//   - [ElectrolyteDiffusion]: Stefan-Maxwell electrolyte transport
//   - [OhmicElectrode], [ElectrolyteCurrent], [Potential]: explicit
//     potential post-processing (variables only, no equations)
package submodel
