// Package diagram renders fixed-layout explanatory diagrams: the vertical
// processing pipeline flowchart and the top view of the camera setup.
//
// Layouts use explicit world coordinates authored as data (stage and scene
// entity records). There is no layout solver; a Viewport maps the world
// window onto the canvas and everything is drawn at its authored position.
package diagram
