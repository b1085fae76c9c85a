// Package dynamo provides the simulation primitives used to generate
// trajectory data for feature libraries.
//
//   - [State]: vector representing system state
//   - [System]: autonomous ODE dX/dt = f(X, t)
//   - [Integrator]: numerical stepping scheme
//   - [Simulator]: integrates a system and samples a [Trajectory]
//   - [Ensemble]: runs several initial conditions concurrently
//
// # Example
//
//	sys := physics.NewLorenz()
//	sim := dynamo.New(sys, integrators.NewRK4())
//	traj, err := sim.Run(ctx, dynamo.State{8, 27, -7}, cfg)
//	x := traj.Matrix() // n_samples × 3, ready for a feature library
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe: integrators keep scratch buffers.
// Use [Ensemble], which builds one integrator per run.
package dynamo
