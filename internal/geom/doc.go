// Package geom defines the geometry buffers exchanged between generators and
// display surfaces.
//
//   - [Vec3]: position, scale and rotation vectors
//   - [Color]: linear RGB in [0,1]
//   - [Frame]: one generated frame of instances, points, polylines and segments
//
// A [Frame] is reused across ticks. Generators append into a frame that has
// been [Frame.Reset]; surfaces must not keep references to its slices past
// the next acquisition of the same pool slot.
package geom
