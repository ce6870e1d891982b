package easel

import "math"

// identityMatrix is the identity affine matrix.
var identityMatrix = [6]float64{1, 0, 0, 1, 0, 0}

// Origin anchor fractions. OriginX/OriginY select the point of the object's
// box, as a fraction of its dimensions, that X/Y positions and that rotation
// and scaling pivot around.
const (
	OriginLeft   = 0.0
	OriginTop    = 0.0
	OriginCenter = 0.5
	OriginMiddle = 0.5
	OriginRight  = 1.0
	OriginBottom = 1.0
)

// computeLocalMatrix computes the object's local affine matrix from its
// geometry properties. Returns [a, b, c, d, tx, ty].
//
// Composition order (right to left):
//
//	Translate(-ox, -oy) -> Scale(flip-folded) -> Skew -> Rotate -> Translate(X, Y)
//
// where (ox, oy) is the origin anchor in pixels: (OriginX*Width, OriginY*Height).
// FlipX/FlipY fold into the scale as negative factors, so hit testing and
// inversion need no special casing.
func computeLocalMatrix(o *Object) [6]float64 {
	sx := o.ScaleX
	if o.FlipX {
		sx = -sx
	}
	sy := o.ScaleY
	if o.FlipY {
		sy = -sy
	}

	sin, cos := math.Sincos(o.Rotation)

	var tanSkewX, tanSkewY float64
	if o.SkewX != 0 {
		tanSkewX = math.Tan(o.SkewX)
	}
	if o.SkewY != 0 {
		tanSkewY = math.Tan(o.SkewY)
	}

	// After Scale * Translate(-origin):
	//   a=sx, b=0, c=0, d=sy, tx=-ox*sx, ty=-oy*sy
	//
	// After Skew:
	a := sx
	b := tanSkewY * sx
	c := tanSkewX * sy
	d := sy

	ox := o.OriginX * o.Width
	oy := o.OriginY * o.Height
	preTx := -ox*sx - tanSkewX*oy*sy
	preTy := -tanSkewY*ox*sx - oy*sy

	// After Rotate:
	ra := cos*a - sin*b
	rb := sin*a + cos*b
	rc := cos*c - sin*d
	rd := sin*c + cos*d
	rtx := cos*preTx - sin*preTy
	rty := sin*preTx + cos*preTy

	// After Translate(X, Y):
	return [6]float64{ra, rb, rc, rd, rtx + o.X, rty + o.Y}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityMatrix
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// transformVector applies only the linear part of an affine matrix,
// ignoring translation. Used for converting deltas between spaces.
func transformVector(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y, m[1]*x + m[3]*y
}

// updateWorldTransforms recomputes an object's worldMatrix and worldOpacity.
// parentRecomputed indicates whether the parent was recomputed this frame,
// which forces recomputation of this object even if it's not dirty.
func updateWorldTransforms(o *Object, parentMatrix [6]float64, parentOpacity float64, parentRecomputed bool) {
	recompute := o.geometryDirty || parentRecomputed
	if recompute {
		local := computeLocalMatrix(o)
		o.worldMatrix = multiplyAffine(parentMatrix, local)
		o.worldOpacity = parentOpacity * o.Opacity
		o.geometryDirty = false
		o.coordsValid = false
	}

	for _, child := range o.children {
		updateWorldTransforms(child, o.worldMatrix, o.worldOpacity, recompute)
	}
}

// worldMatrixNow computes the object's current world matrix from the live
// property values, walking the parent chain. Unlike the cached worldMatrix
// refreshed once per frame, this is always current, so transform actions and
// hit tests never act on stale geometry. The result is stored in worldMatrix
// but dirty flags are left alone; the per-frame pass still propagates to
// children.
func (o *Object) worldMatrixNow() [6]float64 {
	local := computeLocalMatrix(o)
	if o.Parent != nil {
		o.worldMatrix = multiplyAffine(o.Parent.worldMatrixNow(), local)
	} else {
		o.worldMatrix = local
	}
	return o.worldMatrix
}

// --- Geometry property setters ---
//
// Setters route through the property plumbing in sideeffect.go: assigning a
// different value marks geometry dirty, invalidates the canvas, and invokes
// any reactors watching that key. Assigning an equal value is a no-op.

// SetPosition sets the object's X and Y.
func (o *Object) SetPosition(x, y float64) {
	o.setGeometry(PropX, &o.X, x)
	o.setGeometry(PropY, &o.Y, y)
}

// SetSize sets the object's untransformed Width and Height.
func (o *Object) SetSize(w, h float64) {
	o.setGeometry(PropWidth, &o.Width, w)
	o.setGeometry(PropHeight, &o.Height, h)
}

// SetScale sets the object's ScaleX and ScaleY.
func (o *Object) SetScale(sx, sy float64) {
	o.setGeometry(PropScaleX, &o.ScaleX, sx)
	o.setGeometry(PropScaleY, &o.ScaleY, sy)
}

// SetRotation sets the object's rotation (in radians).
func (o *Object) SetRotation(r float64) {
	o.setGeometry(PropRotation, &o.Rotation, r)
}

// SetSkew sets the object's SkewX and SkewY (in radians).
func (o *Object) SetSkew(sx, sy float64) {
	o.setGeometry(PropSkewX, &o.SkewX, sx)
	o.setGeometry(PropSkewY, &o.SkewY, sy)
}

// SetOrigin sets the object's origin anchor fractions.
func (o *Object) SetOrigin(ox, oy float64) {
	o.setGeometry(PropOriginX, &o.OriginX, ox)
	o.setGeometry(PropOriginY, &o.OriginY, oy)
}

// SetFlip sets the object's FlipX and FlipY mirroring flags.
func (o *Object) SetFlip(fx, fy bool) {
	o.setGeometryBool(PropFlipX, &o.FlipX, fx)
	o.setGeometryBool(PropFlipY, &o.FlipY, fy)
}

// SetOpacity sets the object's opacity in [0, 1].
func (o *Object) SetOpacity(a float64) {
	o.setGeometry(PropOpacity, &o.Opacity, a)
}

// MarkDirty marks the object's geometry as dirty, forcing world matrix
// recomputation on the next frame, and invalidates the canvas. Useful after
// bulk-setting fields directly (animations do this every frame).
func (o *Object) MarkDirty() {
	o.geometryDirty = true
	if c := o.canvasRef(); c != nil {
		c.requestRender()
	}
}

// --- Coordinate conversion ---

// SceneToLocal converts a scene-space point to this object's local coordinate
// space, where the untransformed body spans (0, 0) to (Width, Height).
func (o *Object) SceneToLocal(sx, sy float64) (lx, ly float64) {
	inv := invertAffine(o.worldMatrixNow())
	return transformPoint(inv, sx, sy)
}

// LocalToScene converts a local-space point to scene space.
func (o *Object) LocalToScene(lx, ly float64) (sx, sy float64) {
	return transformPoint(o.worldMatrixNow(), lx, ly)
}

// AnchorPoint returns the scene-space position of the fractional anchor
// (ax, ay), where (0, 0) is the top-left of the untransformed body and
// (1, 1) the bottom-right.
func (o *Object) AnchorPoint(ax, ay float64) Vec2 {
	x, y := o.LocalToScene(ax*o.Width, ay*o.Height)
	return Vec2{x, y}
}

// moveAnchorTo repositions the object so the fractional anchor (ax, ay)
// lands on the scene point p, preserving every other geometry property.
// Scaling and skewing actions use this to hold their fixed corner in place.
func (o *Object) moveAnchorTo(ax, ay float64, p Vec2) {
	q := o.AnchorPoint(ax, ay)
	dx, dy := p.X-q.X, p.Y-q.Y
	if o.Parent != nil {
		inv := invertAffine(o.Parent.worldMatrixNow())
		dx, dy = transformVector(inv, dx, dy)
	}
	o.SetPosition(o.X+dx, o.Y+dy)
}

// worldRotation returns the rotation of the object's world matrix in radians.
// For objects without skew this is the accumulated rotation of the parent
// chain plus the object's own.
func (o *Object) worldRotation() float64 {
	m := o.worldMatrixNow()
	return math.Atan2(m[1], m[0])
}

// --- Corner coordinates ---

// SetCoords recomputes the cached scene-space corner coordinates and bounding
// box from the object's current geometry. The transform machine calls this
// after every mutation an action handler completes, so control hit testing
// and bounding queries observe mid-gesture geometry. Call it manually after
// assigning geometry fields directly.
func (o *Object) SetCoords() {
	m := o.worldMatrixNow()
	w, h := o.Width, o.Height
	x0, y0 := transformPoint(m, 0, 0)
	x1, y1 := transformPoint(m, w, 0)
	x2, y2 := transformPoint(m, w, h)
	x3, y3 := transformPoint(m, 0, h)
	o.coords[0] = Vec2{x0, y0}
	o.coords[1] = Vec2{x1, y1}
	o.coords[2] = Vec2{x2, y2}
	o.coords[3] = Vec2{x3, y3}

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))
	o.aabb = Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
	o.coordsValid = true
}

// Corners returns the scene-space positions of the object's four body
// corners in order top-left, top-right, bottom-right, bottom-left (of the
// untransformed box; rotation may place them anywhere).
func (o *Object) Corners() [4]Vec2 {
	if !o.coordsValid {
		o.SetCoords()
	}
	return o.coords
}

// AABB returns the object's scene-space axis-aligned bounding box.
func (o *Object) AABB() Rect {
	if !o.coordsValid {
		o.SetCoords()
	}
	return o.aabb
}

// WorldMatrix returns the object's local-to-scene affine matrix
// [a, b, c, d, tx, ty], recomputing it if the geometry is dirty. Hosts
// compose this with the canvas ViewMatrix to draw the object.
func (o *Object) WorldMatrix() [6]float64 {
	return o.worldMatrixNow()
}

// WorldOpacity returns the object's effective opacity, the product of its
// own Opacity and every ancestor's. Walks the parent chain so the value is
// current even before the per-frame pass runs.
func (o *Object) WorldOpacity() float64 {
	a := o.Opacity
	for p := o.Parent; p != nil; p = p.Parent {
		a *= p.Opacity
	}
	return a
}

// boxPoint interpolates a fractional box position (u, v) from the cached
// corner coordinates. (0, 0) is the top-left corner, (1, 1) the bottom-right.
// Exact for affine transforms, so no matrix math is needed per control.
func (o *Object) boxPoint(u, v float64) Vec2 {
	if !o.coordsValid {
		o.SetCoords()
	}
	c := o.coords
	topX := c[0].X + u*(c[1].X-c[0].X)
	topY := c[0].Y + u*(c[1].Y-c[0].Y)
	botX := c[3].X + u*(c[2].X-c[3].X)
	botY := c[3].Y + u*(c[2].Y-c[3].Y)
	return Vec2{topX + v*(botX-topX), topY + v*(botY-topY)}
}

// nearestRightAngle returns the multiple of 90 degrees closest to r.
func nearestRightAngle(r float64) float64 {
	const quarter = math.Pi / 2
	return math.Round(r/quarter) * quarter
}
