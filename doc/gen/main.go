// Command gen renders every scene in doc/scenes through the OpenGL
// renderer, captures framebuffer pixels, and saves JPEG screenshots to
// doc/imgs/. A scene foo.yaml with a foo.script.yaml next to it is
// captured after the script has been replayed.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/surface"
	"github.com/go-theft-auto/surface/backend/opengl"
	"github.com/go-theft-auto/surface/scene"
)

// The hidden window is larger than every scene.
const (
	canvasWidth  = 800
	canvasHeight = 600
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(canvasWidth, canvasHeight, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(canvasWidth, canvasHeight)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	masks, err := scene.NewMaskCache(scene.DefaultMaskCacheSize)
	if err != nil {
		return err
	}

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	paths, err := filepath.Glob(filepath.Join("doc", "scenes", "*.yaml"))
	if err != nil {
		return err
	}

	n := 0
	for _, path := range paths {
		if strings.HasSuffix(path, ".script.yaml") {
			continue
		}
		name := strings.TrimSuffix(filepath.Base(path), ".yaml")
		img, err := render(path, masks)
		if err != nil {
			return fmt.Errorf("render %s: %w", name, err)
		}
		b := img.Bounds()
		if b.Dx() > canvasWidth || b.Dy() > canvasHeight {
			return fmt.Errorf("render %s: %dx%d exceeds the canvas", name, b.Dx(), b.Dy())
		}
		if err := capture(renderer, img, filepath.Join(outDir, name+".jpg")); err != nil {
			return fmt.Errorf("capture %s: %w", name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", name, b.Dx(), b.Dy())
		n++
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", n, outDir)
	return nil
}

// render loads a scene, replays its script if there is one, and paints it.
func render(path string, masks *scene.MaskCache) (*image.RGBA, error) {
	sc, err := scene.Load(path, scene.WithMasks(masks))
	if err != nil {
		return nil, err
	}

	steps, err := scene.LoadScript(strings.TrimSuffix(path, ".yaml") + ".script.yaml")
	if errors.Is(err, os.ErrNotExist) {
		return sc.Snapshot(nil), nil
	}
	if err != nil {
		return nil, err
	}

	host := surface.NewManualHost()
	engine, err := surface.NewEngine(
		surface.WithRoot(sc.Root()),
		surface.WithSurface(sc),
		surface.WithHost(host),
	)
	if err != nil {
		return nil, err
	}
	defer engine.Close()
	sc.Attach(engine)

	r := &scene.Runner{Scene: sc, Engine: engine, Host: host}
	if _, err := r.Run(steps); err != nil {
		return nil, err
	}
	return sc.Snapshot(engine.Focused()), nil
}

func capture(renderer *opengl.Renderer, frame *image.RGBA, path string) error {
	width, height := frame.Bounds().Dx(), frame.Bounds().Dy()

	// Only update the renderer projection. GLFW processes window resizes
	// asynchronously, which would leave the framebuffer mismatched.
	renderer.Resize(width, height)

	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if err := renderer.Draw(frame); err != nil {
		return err
	}

	// Read pixels
	pixels := make([]byte, width*height*4)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < height/2; y++ {
		top := y * rowLen
		bot := (height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}
