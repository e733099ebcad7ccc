// Example opens a window on a scene and routes live input through the
// engine. Every widget callback is printed as it happens.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell                        # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/                   # run with the built-in scene
//	go run ./example/ doc/scenes/form.yaml
//
// Press Tab to walk focus, Enter to activate, drag the handle around.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"gopkg.in/yaml.v3"

	"github.com/go-theft-auto/surface"
	"github.com/go-theft-auto/surface/backend/opengl"
	"github.com/go-theft-auto/surface/scene"
)

const windowTitle = "surface example"

const defaultScene = `
size: {x: 800, y: 600}
widgets:
  - name: panel
    group: true
    rect: {x: 40, y: 40, w: 320, h: 200}
    default_action: ok
    loop: true
  - name: ok
    parent: panel
    rect: {x: 60, y: 80, w: 120, h: 40}
  - name: cancel
    parent: panel
    rect: {x: 200, y: 80, w: 120, h: 40}
  - name: handle
    rect: {x: 480, y: 260, w: 60, h: 60}
    drag:
      input: {x: 0, y: 0, w: 800, h: 600}
      target: {x: 0, y: 0, w: 740, h: 540}
`

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// readScene returns the document named by args, or the built-in one,
// with the directory its mask paths are relative to.
func readScene(args []string) (scene.Doc, string, error) {
	var doc scene.Doc
	src, dir := []byte(defaultScene), "."
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return doc, "", err
		}
		src, dir = data, filepath.Dir(args[0])
	}
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return doc, "", err
	}
	return doc, dir, nil
}

func run() error {
	doc, dir, err := readScene(os.Args[1:])
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}
	size := doc.Size

	// Initialize GLFW.
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(int(size.X), int(size.Y), windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	// Initialize OpenGL.
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	masks, err := scene.NewMaskCache(scene.DefaultMaskCacheSize)
	if err != nil {
		return err
	}
	// Opaque-hit widgets without a mask are tested against what is on screen.
	sc, err := scene.New(doc,
		scene.WithDir(dir),
		scene.WithMasks(masks),
		scene.WithProbe(opengl.NewPixelProbe(window)),
	)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	renderer, err := opengl.NewRenderer(int(size.X), int(size.Y))
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	host := opengl.NewFrameHost()
	engine, err := surface.NewEngine(
		surface.WithRoot(sc.Root()),
		surface.WithSurface(sc),
		surface.WithHost(host),
	)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	defer engine.Close()
	sc.Attach(engine)

	input := opengl.NewGLFWInputAdapter(window, engine)
	input.OnError = func(err error) { fmt.Fprintln(os.Stderr, err) }

	// Main loop.
	for !window.ShouldClose() {
		host.Wait()
		host.Tick()
		for _, c := range sc.Drain() {
			fmt.Println(c)
		}

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		if err := renderer.Draw(sc.Snapshot(engine.Focused())); err != nil {
			return fmt.Errorf("draw: %w", err)
		}

		window.SwapBuffers()
	}

	return nil
}
