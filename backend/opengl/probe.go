package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/surface"
)

// PixelProbe answers opaque-hit queries from the last presented frame.
// It reads the front buffer, so it sees what the user saw when the
// pointer event was generated. It must be used on the GL thread.
type PixelProbe struct {
	window *glfw.Window
}

// NewPixelProbe creates a probe reading window's framebuffer.
func NewPixelProbe(window *glfw.Window) *PixelProbe {
	return &PixelProbe{window: window}
}

// OpaqueAt reports whether the pixel under pos, in window coordinates, has
// non-zero alpha. Points outside the framebuffer are transparent.
func (p *PixelProbe) OpaqueAt(pos surface.Vec2) bool {
	ww, wh := p.window.GetSize()
	fw, fh := p.window.GetFramebufferSize()
	if ww == 0 || wh == 0 {
		return false
	}

	// Window units to framebuffer pixels, origin at the bottom left.
	x := int32(pos.X * float32(fw) / float32(ww))
	y := int32(fh) - 1 - int32(pos.Y*float32(fh)/float32(wh))
	if x < 0 || y < 0 || x >= int32(fw) || y >= int32(fh) {
		return false
	}

	var px [4]uint8
	gl.ReadBuffer(gl.FRONT)
	gl.ReadPixels(x, y, 1, 1, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&px[0]))
	gl.ReadBuffer(gl.BACK)
	return px[3] > 0
}
