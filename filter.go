package easel

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Filter is the interface for visual effects applied to an object's rendered
// output. The canvas core never invokes filters; the host's renderer applies
// them when it rasterizes an object, expanding its offscreen buffer by
// Padding() pixels on each side first.
type Filter interface {
	// Apply renders src into dst with the filter effect.
	Apply(src, dst *ebiten.Image)
	// Padding returns the extra pixels needed around the source to
	// accommodate the effect. Zero means no padding.
	Padding() int
}

// --- Kage shader sources ---
// All shaders use //kage:unit pixels as required by Ebitengine.
// Ebitengine uses premultiplied alpha; shaders un-premultiply before
// processing and re-premultiply output where needed.

const removeColorShaderSrc = `//kage:unit pixels
package main

var TargetColor vec4
var Distance float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a == 0 {
		return vec4(0)
	}
	// Un-premultiply alpha.
	c.rgb /= c.a
	// Per-channel threshold test against the target color.
	d := abs(c.rgb - TargetColor.rgb)
	if d.r <= Distance && d.g <= Distance && d.b <= Distance {
		return vec4(0)
	}
	// Re-premultiply.
	return vec4(c.rgb*c.a, c.a)
}
`

const brightnessShaderSrc = `//kage:unit pixels
package main

var Brightness float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a == 0 {
		return vec4(0)
	}
	// Un-premultiply alpha.
	c.rgb /= c.a
	c.rgb = clamp(c.rgb+Brightness, 0, 1)
	// Re-premultiply.
	return vec4(c.rgb*c.a, c.a)
}
`

// --- Lazy shader compilation (no sync.Once — easel is single-threaded) ---

var (
	removeColorShader *ebiten.Shader
	brightnessShader  *ebiten.Shader
)

func ensureRemoveColorShader() *ebiten.Shader {
	if removeColorShader == nil {
		s, err := ebiten.NewShader([]byte(removeColorShaderSrc))
		if err != nil {
			panic("easel: failed to compile remove color shader: " + err.Error())
		}
		removeColorShader = s
	}
	return removeColorShader
}

func ensureBrightnessShader() *ebiten.Shader {
	if brightnessShader == nil {
		s, err := ebiten.NewShader([]byte(brightnessShaderSrc))
		if err != nil {
			panic("easel: failed to compile brightness shader: " + err.Error())
		}
		brightnessShader = s
	}
	return brightnessShader
}

// --- RemoveColorFilter ---

// RemoveColorFilter makes pixels transparent when every RGB channel is within
// Distance of the target color. Distance is in [0, 1]; 0 removes exact
// matches only.
type RemoveColorFilter struct {
	Color      Color
	Distance   float64
	uniforms   map[string]any
	colorF32   [4]float32 // persistent buffer to avoid per-frame slice escape
	colorSlice []float32  // persistent slice header pointing into colorF32
	shaderOp   ebiten.DrawRectShaderOptions
}

// NewRemoveColorFilter creates a filter that removes the given color.
func NewRemoveColorFilter(c Color, distance float64) *RemoveColorFilter {
	f := &RemoveColorFilter{
		Color:    c,
		Distance: distance,
		uniforms: make(map[string]any, 2),
	}
	f.colorSlice = f.colorF32[:]
	f.uniforms["TargetColor"] = f.colorSlice
	return f
}

// Apply renders src into dst with matching pixels made transparent.
func (f *RemoveColorFilter) Apply(src, dst *ebiten.Image) {
	shader := ensureRemoveColorShader()
	// Write in-place, no alloc. The shader compares un-premultiplied values,
	// so the target color is passed straight.
	f.colorF32[0] = float32(f.Color.R)
	f.colorF32[1] = float32(f.Color.G)
	f.colorF32[2] = float32(f.Color.B)
	f.colorF32[3] = float32(f.Color.A)
	// Scalar float32 boxing is unavoidable with Ebitengine's uniform API.
	f.uniforms["Distance"] = float32(f.Distance)
	bounds := src.Bounds()
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &f.shaderOp)
}

// Padding returns 0; removing colors never expands the image bounds.
func (f *RemoveColorFilter) Padding() int { return 0 }

// --- BrightnessFilter ---

// BrightnessFilter adds Brightness to every RGB channel. The value is in
// [-1, 1]; negative darkens, positive lightens, 0 is a passthrough.
type BrightnessFilter struct {
	Brightness float64
	uniforms   map[string]any
	shaderOp   ebiten.DrawRectShaderOptions
}

// NewBrightnessFilter creates a brightness filter with the given offset.
func NewBrightnessFilter(b float64) *BrightnessFilter {
	return &BrightnessFilter{
		Brightness: b,
		uniforms:   make(map[string]any, 1),
	}
}

// Apply renders src into dst with the brightness offset applied.
func (f *BrightnessFilter) Apply(src, dst *ebiten.Image) {
	shader := ensureBrightnessShader()
	f.uniforms["Brightness"] = float32(f.Brightness)
	bounds := src.Bounds()
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &f.shaderOp)
}

// Padding returns 0; brightness only recolors existing pixels.
func (f *BrightnessFilter) Padding() int { return 0 }
