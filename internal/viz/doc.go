// Package viz is the terminal surface: a braille canvas, a small perspective
// camera and the Bubble Tea models for the gallery and detail views.
//
//   - [Canvas]: braille dot grid with per-cell colour
//   - [Camera] and [Wireframe]: projection and painter's-order drawing of frames
//   - [Gallery]: scene list with a live thumbnail of the scene under the cursor
//   - [Detail]: one scene with its controls, statistics and GIF recording
//
// Themes are derived from the scene palettes.
//
// # Key Bindings
//
//	Space - Pause/Resume animation
//	R     - Reset parameters to defaults
//	←/→   - Adjust the selected control
//	x/y/z - Orbit the camera
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
package viz
