// Package viz provides terminal-based visualization of simulated shots.
//
// The package implements an interactive replay using the Bubble Tea
// framework plus static asciigraph charts:
//
//   - [Model]: full-screen replay of a shot's dense trajectories
//   - [Canvas]: Braille-based pixel canvas for table rendering
//   - [EnergyPlot], [SpeedPlot]: charts for post-shot analysis
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from the strike
//	[/]   - Scrub backward/forward
//	+/-   - Playback speed
//	?     - Show help overlay
//
// Everything here reads the dense states produced by continuization;
// nothing re-runs physics.
package viz
