// Package artstamps is the core of a small 2D stamp game and level editor:
// affine placement of stamps, and collision of keyboard-driven entities
// against level geometry.
//
// # Transforms
//
// A [Transform] scales, rotates about a pivot and translates, in that order.
// [Transform.Forward] maps local points to world space and
// [Transform.Inverse] maps them back. [Compose] folds a parent transform,
// typically a [Camera] view, into a stamp's own placement:
//
//	screen := artstamps.Compose(cam.View(), shape.Transform)
//
// # Collision
//
// A [Level] is an ordered list of [Shape] stamps. [Level.Intersect] tests a
// probe segment against every stamp outline and returns the displacement
// that pushes the probe's end back out of the first stamp it crosses.
// World-space outlines are memoized in a [GeometryCache]:
//
//	cache := artstamps.NewGeometryCache()
//	delta, hit, err := level.Intersect(a, b, cache)
//
// Corrections at or below [Epsilon] per axis are noise; see
// [Vec2.Significant].
//
// # Sessions
//
// [Session] ties a level, its cache, [Entity] values, a [Camera] and key
// repeat pacing together. A host calls [Session.Update] once per frame with
// an [InputState]; Update reports when the player asked to quit instead of
// exiting the process. The host package provides an Ebitengine host, and
// the ecs package forwards collision events into a Donburi world.
//
// # Levels
//
// Levels load from an SVG subset ([LoadSVG], [WriteSVG]) or YAML
// ([LoadYAML]); [LoadLevel] picks the format by file extension.
package artstamps
