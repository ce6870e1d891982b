package easel

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// AnimGroup animates up to 4 float64 fields on an Object simultaneously.
// Create one via the convenience constructors (AnimatePosition, AnimateScale,
// AnimateRotation, AnimateOpacity) and either call Update(dt) each tick or
// hand it to Canvas.Animate. The group writes values directly and marks the
// object dirty. If the target object is disposed, the group stops
// immediately.
type AnimGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Object
	Done   bool

	// OnComplete runs once, when every tween finishes. It does not run when
	// the group stops early because the target was disposed.
	OnComplete func()
}

// Update advances all tweens by dt seconds, writes values to the target
// fields, and marks the object dirty. If the target object has been
// disposed, Done is set to true and no writes occur.
func (g *AnimGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}

	if g.target != nil {
		g.target.MarkDirty()
	}

	if allDone {
		g.Done = true
		if g.OnComplete != nil {
			g.OnComplete()
		}
	}
}

// AnimatePosition creates an AnimGroup that animates the object's X and Y to
// the given coordinates over the specified duration using the easing function.
func AnimatePosition(o *Object, toX, toY float64, duration float32, fn ease.TweenFunc) *AnimGroup {
	g := &AnimGroup{count: 2, target: o}
	g.tweens[0] = gween.New(float32(o.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(o.Y), float32(toY), duration, fn)
	g.fields[0] = &o.X
	g.fields[1] = &o.Y
	return g
}

// AnimateScale creates an AnimGroup that animates the object's ScaleX and
// ScaleY to the given values over the specified duration using the easing
// function.
func AnimateScale(o *Object, toSX, toSY float64, duration float32, fn ease.TweenFunc) *AnimGroup {
	g := &AnimGroup{count: 2, target: o}
	g.tweens[0] = gween.New(float32(o.ScaleX), float32(toSX), duration, fn)
	g.tweens[1] = gween.New(float32(o.ScaleY), float32(toSY), duration, fn)
	g.fields[0] = &o.ScaleX
	g.fields[1] = &o.ScaleY
	return g
}

// AnimateRotation creates an AnimGroup that animates the object's Rotation to
// the target value over the specified duration using the easing function.
func AnimateRotation(o *Object, to float64, duration float32, fn ease.TweenFunc) *AnimGroup {
	g := &AnimGroup{count: 1, target: o}
	g.tweens[0] = gween.New(float32(o.Rotation), float32(to), duration, fn)
	g.fields[0] = &o.Rotation
	return g
}

// AnimateOpacity creates an AnimGroup that animates the object's Opacity to
// the target value over the specified duration using the easing function.
func AnimateOpacity(o *Object, to float64, duration float32, fn ease.TweenFunc) *AnimGroup {
	g := &AnimGroup{count: 1, target: o}
	g.tweens[0] = gween.New(float32(o.Opacity), float32(to), duration, fn)
	g.fields[0] = &o.Opacity
	return g
}

// Straighten snaps the object's rotation to the nearest right angle through
// the property plumbing.
func (o *Object) Straighten() {
	o.SetRotation(nearestRightAngle(o.Rotation))
	o.SetCoords()
}

// FxStraighten animates the object's rotation to the nearest right angle.
// The group is stepped by Canvas.Update; the exact final angle lands through
// SetRotation at the end, so reactors observe the settled rotation.
func (c *Canvas) FxStraighten(o *Object, duration float32) *AnimGroup {
	target := nearestRightAngle(o.Rotation)
	g := AnimateRotation(o, target, duration, ease.OutQuad)
	g.OnComplete = func() {
		o.SetRotation(target)
		o.SetCoords()
	}
	c.Animate(g)
	return g
}

// FxRemove fades the object out, then removes it from the canvas. The object
// keeps its faded opacity if a listener vetoes the removal.
func (c *Canvas) FxRemove(o *Object, duration float32) *AnimGroup {
	g := AnimateOpacity(o, 0, duration, ease.OutQuad)
	g.OnComplete = func() {
		c.Remove(o)
	}
	c.Animate(g)
	return g
}
