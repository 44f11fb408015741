package diagram

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gaitlab/visualgen/internal/raster"
)

// Role selects how a scene entity is drawn.
type Role int

const (
	RoleBoundary Role = iota
	RoleCamera
	RoleSubject
	RoleDimension
)

func (r Role) String() string {
	switch r {
	case RoleBoundary:
		return "boundary"
	case RoleCamera:
		return "camera"
	case RoleSubject:
		return "subject"
	case RoleDimension:
		return "dimension"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// SceneEntity is one authored element of a scene, in world units (metres).
type SceneEntity struct {
	Role  Role
	Label string
	X, Y  float64 // boundary lower-left corner, camera or subject centre, dimension start
	W, H  float64 // boundary size, or dimension extent from (X, Y)
	Angle float64 // camera facing in degrees, counter-clockwise from +x
	Size  float64 // subject radius or camera ray length

	// LabelX and LabelY anchor the label. Camera and subject labels hang
	// below the anchor; a vertical dimension label starts right of it.
	LabelX, LabelY float64
}

// Scene is a top view drawn with equal axis scaling.
type Scene struct {
	Title         string
	Width, Height float64 // world extent starting at the origin
	Entities      []SceneEntity
}

const (
	sceneWidthIn  = 10
	sceneHeightIn = 8

	cameraRayLen  = 1.5
	cameraSide    = 0.5
	cameraPad     = 0.08
	rayHeadWidth  = 0.2
	rayHeadLength = 0.15
)

// DefaultSceneTitle heads the camera setup diagram.
const DefaultSceneTitle = "4-Camera Setup Configuration (Top View)"

// DefaultScene returns four cameras at a 1.5 m standoff around a 4 x 6 m
// capture volume with the subject at its centre.
func DefaultScene() Scene {
	return Scene{
		Title:  DefaultSceneTitle,
		Width:  8,
		Height: 10,
		Entities: []SceneEntity{
			{Role: RoleBoundary, X: 2, Y: 2, W: 4, H: 6},
			{Role: RoleCamera, Label: "Camera 1\n(Front)", X: 1, Y: 5, Angle: 0, Size: cameraRayLen, LabelX: 1, LabelY: 4.1},
			{Role: RoleCamera, Label: "Camera 2\n(Back)", X: 7, Y: 5, Angle: 180, Size: cameraRayLen, LabelX: 7, LabelY: 4.1},
			{Role: RoleCamera, Label: "Camera 3\n(Side L)", X: 4, Y: 1, Angle: 90, Size: cameraRayLen, LabelX: 4, LabelY: 0.1},
			{Role: RoleCamera, Label: "Camera 4\n(Side R)", X: 4, Y: 9, Angle: 270, Size: cameraRayLen, LabelX: 4, LabelY: 8.1},
			{Role: RoleSubject, Label: "Subject", X: 4, Y: 5, Size: 0.4, LabelX: 4, LabelY: 4.2},
			{Role: RoleDimension, Label: "6.0 m", X: 6.2, Y: 8, H: -6, LabelX: 6.35, LabelY: 6.5},
			{Role: RoleDimension, Label: "4.0 m", X: 6, Y: 1.5, W: -4, LabelX: 5, LabelY: 1},
		},
	}
}

var (
	volumeEdge  = color.RGBA{0, 0, 0, 255}
	volumeFill  = raster.WithAlpha(raster.MustHex("#D3D3D3"), 0.3)
	cameraFill  = raster.MustHex("#4ECDC4")
	cameraRay   = raster.WithAlpha(raster.MustHex("#0000FF"), 0.5)
	subjectFill = raster.MustHex("#FF0000")
	labelPaper  = raster.WithAlpha(color.White, 0.8)
)

// RenderScene draws every entity at its authored position. Boundaries are
// drawn first, then dimensions, subjects and cameras. Measurement labels go
// on last so that no shape covers them.
func RenderScene(s Scene, opts Options) (*Rendered, error) {
	opts = opts.withDefaults()
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("%w: world %gx%g", ErrInvalidScene, s.Width, s.Height)
	}

	c := sheet(sceneWidthIn, sceneHeightIn, opts)
	// Labels of the bottom camera hang below the world window.
	vp := raster.NewViewport(0, 0, s.Width, s.Height, plotArea(c, opts, opts.pt(48)), true)
	drawTitle(c, s.Title, opts.pt(15), opts)

	d := sceneDrawer{c: c, vp: vp, o: opts}
	for _, role := range []Role{RoleBoundary, RoleDimension, RoleSubject, RoleCamera} {
		for _, e := range s.Entities {
			if e.Role == role {
				d.draw(e)
			}
		}
	}
	for _, e := range s.Entities {
		if e.Role == RoleDimension {
			d.dimensionLabel(e)
		}
	}
	return finish(c, vp, opts), nil
}

// WriteScene renders s and writes it to path as PNG.
func WriteScene(s Scene, path string, opts Options) error {
	opts = opts.withDefaults()
	r, err := RenderScene(s, opts)
	if err != nil {
		return err
	}
	return r.Write(path, opts.DPI)
}

type sceneDrawer struct {
	c  *raster.Canvas
	vp raster.Viewport
	o  Options
}

func (d sceneDrawer) draw(e SceneEntity) {
	switch e.Role {
	case RoleBoundary:
		d.boundary(e)
	case RoleCamera:
		d.camera(e)
	case RoleSubject:
		d.subject(e)
	case RoleDimension:
		d.dimension(e)
	}
}

func (d sceneDrawer) boundary(e SceneEntity) {
	r := d.vp.Rect(e.X, e.Y, e.W, e.H)
	d.c.FillRect(r, volumeFill)
	d.c.StrokeRect(r, d.o.pt(3), volumeEdge, d.o.pt(11), d.o.pt(5))
	if e.Label != "" {
		face := d.c.Face(italicFont, d.o.pt(10))
		d.c.Text(face, e.Label, d.vp.Pt(e.LabelX, e.LabelY), raster.Center, raster.Middle, ink)
	}
}

func (d sceneDrawer) camera(e SceneEntity) {
	side := cameraSide + 2*cameraPad
	body := d.vp.Rect(e.X-side/2, e.Y-side/2, side, side)
	radius := d.vp.LenX(cameraPad)
	d.c.Shadow(body, raster.Pt{X: d.o.pt(2), Y: d.o.pt(2)}, d.o.pt(2), func(layer *raster.Canvas) {
		layer.FillRoundedRect(body, radius, shadowInk)
	})
	d.c.FillRoundedRect(body, radius, cameraFill)
	d.c.StrokeRoundedRect(body, radius, d.o.pt(2), ink)

	if e.Label != "" {
		face := d.c.Face(boldFont, d.o.pt(11))
		d.c.Label(face, lines(e.Label), d.vp.Pt(e.LabelX, e.LabelY), raster.Center, raster.Top, ink, raster.LabelStyle{
			Fill:   labelPaper,
			Pad:    d.o.pt(3),
			Radius: d.o.pt(3),
		})
	}

	length := e.Size
	if length <= 0 {
		length = cameraRayLen
	}
	a := e.Angle * math.Pi / 180
	from := d.vp.Pt(e.X, e.Y)
	to := d.vp.Pt(e.X+math.Cos(a)*length, e.Y+math.Sin(a)*length)
	d.c.Arrow(from, to, d.o.pt(2), d.vp.LenX(rayHeadLength), d.vp.LenX(rayHeadWidth), cameraRay)
}

func (d sceneDrawer) subject(e SceneEntity) {
	center := d.vp.Pt(e.X, e.Y)
	r := d.vp.LenX(e.Size)
	d.c.FillCircle(center, r, subjectFill)
	d.c.StrokeCircle(center, r, d.o.pt(2), ink)
	if e.Label != "" {
		face := d.c.Face(boldFont, d.o.pt(12))
		d.c.Text(face, e.Label, d.vp.Pt(e.LabelX, e.LabelY), raster.Center, raster.Top, ink)
	}
}

func (d sceneDrawer) dimension(e SceneEntity) {
	a := d.vp.Pt(e.X, e.Y)
	b := d.vp.Pt(e.X+e.W, e.Y+e.H)
	d.c.DoubleArrow(a, b, d.o.pt(2), d.o.pt(8), d.o.pt(6), ink)
}

func (d sceneDrawer) dimensionLabel(e SceneEntity) {
	if e.Label == "" {
		return
	}

	face := d.c.Face(boldFont, d.o.pt(11))
	at := d.vp.Pt(e.LabelX, e.LabelY)
	if math.Abs(e.W) < math.Abs(e.H) {
		// Rotated text reads bottom to top; its left edge sits at the anchor.
		m := d.c.Measure(face, e.Label)
		at.X += m.Bounds.Dy() / 2
		d.c.TextVertical(face, e.Label, at, ink)
		return
	}
	d.c.Text(face, e.Label, at, raster.Center, raster.Top, ink)
}
