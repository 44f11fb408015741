// Package raster provides the drawing surface shared by the figure generators.
//
// A Canvas is addressed in logical pixels: the pixel grid of the image that is
// finally written. Internally it may be supersampled by an integer factor and
// is downscaled with a Lanczos filter when the image is taken, which gives
// smooth edges to lines, arrows and rounded boxes.
//
// # Coordinate System
//
// Logical pixel coordinates have (0,0) at the top-left corner with X growing
// rightward and Y growing downward. Diagrams are authored in world units with
// Y growing upward; a Viewport maps world coordinates onto a pixel rectangle,
// optionally with equal aspect so that spatial proportions are preserved.
//
// # Filling Rule
//
// Every shape is a set of closed polygons filled by an anti-aliasing
// rasterizer. Polygons are normalised to the same winding before filling so
// overlapping pieces of one stroke union cleanly; rings (outlines) are made
// of an outer polygon and a reversed inner polygon.
//
// # Output
//
// SavePNG writes a PNG carrying a pHYs chunk with the requested DPI.
// SaveGIF writes a looping animated GIF with a uniform frame delay.
// Write failures match ErrWrite.
package raster
