// Package surface composes the registry, a parameter store, a generator and
// a render loop into the preview and detail views the front ends draw.
//
// A [Session] owns exactly one store and one loop and is driven from a
// single goroutine. Failures to resolve a scene or its generator never
// escape as errors to the display: [Fallback] maps them to a [View] with a
// visible placeholder.
package surface
