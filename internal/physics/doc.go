// Package physics provides dynamical systems used as trajectory sources for
// feature libraries.
//
// Each model implements [dynamo.System] and [dynamo.Configurable]:
//
//   - [Lorenz]: butterfly attractor, the reference SINDy example
//   - [Rossler]: single-lobe chaotic attractor
//   - [VanDerPol]: relaxation oscillator with a limit cycle
//   - [Duffing]: forced cubic oscillator
//
// All right-hand sides are polynomial or trigonometric in the state, so the
// matching feature library can represent them exactly.
package physics
