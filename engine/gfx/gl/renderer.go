// Package glbackend draws renderer2d batches with OpenGL 3.3. Every call must
// happen on the thread that owns the GL context.
package glbackend

import (
	"fmt"
	"image"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/hubastard/iui/engine/assets"
	"github.com/hubastard/iui/engine/core"
	"github.com/hubastard/iui/engine/gfx/renderer2d"
	"github.com/hubastard/iui/engine/scene"
	"github.com/hubastard/iui/engine/ui"
)

type RendererGL struct {
	program uint32
	vao     uint32
	vbo     uint32
	ebo     uint32
	tex     uint32
	uVP     int32
	uAtlas  int32

	cam      *scene.PixelCamera
	fbW, fbH int32
}

// NewRendererGL needs the window's context to be current.
func NewRendererGL(_ core.Window, _ core.Config) (*RendererGL, error) {
	r := &RendererGL{cam: scene.NewPixelCamera(1, 1)}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	vs, err := assets.Shader("ui.vert")
	if err != nil {
		return err
	}
	fs, err := assets.Shader("ui.frag")
	if err != nil {
		return err
	}
	r.program, err = makeProgram(vs, fs)
	if err != nil {
		return err
	}
	r.uVP = gl.GetUniformLocation(r.program, gl.Str("uVP\x00"))
	r.uAtlas = gl.GetUniformLocation(r.program, gl.Str("uAtlas\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	// layout: pos2 color4 uv2
	const stride = renderer2d.VertexStride * 4
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, stride, 2*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.BindVertexArray(0)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	return nil
}

func (r *RendererGL) Shutdown() {
	if r.tex != 0 {
		gl.DeleteTextures(1, &r.tex)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

func (r *RendererGL) Resize(w, h int) {
	r.fbW, r.fbH = int32(w), int32(h)
	gl.Viewport(0, 0, r.fbW, r.fbH)
	r.cam.SetViewport(w, h)
}

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.Disable(gl.SCISSOR_TEST)
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Info reports the driver strings.
func (r *RendererGL) Info() (vendor, renderer, version string) {
	return gl.GoStr(gl.GetString(gl.VENDOR)), gl.GoStr(gl.GetString(gl.RENDERER)), gl.GoStr(gl.GetString(gl.VERSION))
}

// ----- renderer2d.Submitter -----

func (r *RendererGL) UploadAtlas(img *image.RGBA) error {
	if img == nil || img.Stride != 4*img.Rect.Dx() {
		return fmt.Errorf("glbackend: atlas must be a tightly packed RGBA image")
	}
	if r.tex == 0 {
		gl.GenTextures(1, &r.tex)
	}
	gl.BindTexture(gl.TEXTURE_2D, r.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(img.Rect.Dx()), int32(img.Rect.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("glbackend: upload atlas: gl error 0x%x", code)
	}
	return nil
}

func (r *RendererGL) Draw(b renderer2d.Batch) {
	if len(b.Indices) == 0 {
		return
	}
	r.scissor(b.Clip)

	gl.UseProgram(r.program)
	vp := r.cam.VP()
	gl.UniformMatrix4fv(r.uVP, 1, false, &vp[0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.tex)
	gl.Uniform1i(r.uAtlas, 0)

	gl.BindVertexArray(r.vao)
	// Orphan and refill: the buffers are rewritten every batch.
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(b.Vertices)*4, gl.Ptr(b.Vertices), gl.STREAM_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(b.Indices)*4, gl.Ptr(b.Indices), gl.STREAM_DRAW)
	gl.DrawElements(gl.TRIANGLES, int32(len(b.Indices)), gl.UNSIGNED_INT, unsafe.Pointer(nil))
	gl.BindVertexArray(0)
}

// scissor converts a top-left clip to GL's bottom-left scissor box.
func (r *RendererGL) scissor(c ui.ClipRect) {
	if c == ui.FullClip {
		gl.Disable(gl.SCISSOR_TEST)
		return
	}
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(int32(c.X), r.fbH-int32(c.Y)-int32(c.H), int32(c.W), int32(c.H))
}

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}
