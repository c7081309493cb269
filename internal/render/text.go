package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"lanerush/internal/scene"
)

// initText uploads the font atlas and sets up the text pipeline.
func (r *Renderer) initText(atlas *scene.Atlas) error {
	r.atlas = atlas
	b := atlas.Image.Bounds()

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(atlas.Image.Pix))
	r.fontTex = tex

	prog, err := linkProgram(textVertSrc, textFragSrc)
	if err != nil {
		return err
	}
	r.textProg = prog
	gl.UseProgram(prog)
	r.textURes = gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))
	r.textUFontTex = gl.GetUniformLocation(prog, gl.Str("uFontTex\x00"))
	gl.Uniform1i(r.textUFontTex, 2) // texture unit 2

	// Text VAO/VBO: per-vertex pos(2) + uv(2) + color(4) = 8 floats.
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	stride := int32(8 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, 512*6*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0) // aPos
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1) // aUV
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2) // aColor
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(4*4))

	r.textVAO = vao
	r.textVBO = vbo
	gl.BindVertexArray(0)
	return nil
}

// DrawChar queues a single character as a textured quad in screen pixel space.
func (r *Renderer) DrawChar(ch rune, sx, sy, scale float32, col mgl32.Vec3) {
	u0, v0, u1, v1, ok := r.atlas.Cell(ch)
	if !ok {
		return
	}
	w := float32(r.atlas.CellW) * scale
	h := float32(r.atlas.CellH) * scale
	cr, cg, cb := col[0], col[1], col[2]

	// Two triangles: TL, TR, BL then TR, BR, BL.
	r.textBuf = append(r.textBuf,
		sx, sy, u0, v0, cr, cg, cb, 1,
		sx+w, sy, u1, v0, cr, cg, cb, 1,
		sx, sy+h, u0, v1, cr, cg, cb, 1,
		sx+w, sy, u1, v0, cr, cg, cb, 1,
		sx+w, sy+h, u1, v1, cr, cg, cb, 1,
		sx, sy+h, u0, v1, cr, cg, cb, 1,
	)
}

// DrawString queues a string at screen pixel position (sx, sy) with given scale.
func (r *Renderer) DrawString(text string, sx, sy int, scale float32, col mgl32.Vec3) {
	advance := float32(r.atlas.CellW) * scale
	lineAdvance := float32(r.atlas.CellH) * scale
	baseX := float32(sx)
	x := float32(sx)
	y := float32(sy)
	for _, ch := range text {
		if ch == '\n' {
			x = baseX
			y += lineAdvance
			continue
		}
		r.DrawChar(ch, x, y, scale, col)
		x += advance
	}
}

// DrawHUD places each line by its anchor and flushes the text batch.
func (r *Renderer) DrawHUD(lines []scene.TextLine, fbW, fbH int) {
	const margin = 10
	leftY := margin
	for _, l := range lines {
		w := r.atlas.TextWidth(l.Text, l.Scale)
		h := int(float32(r.atlas.CellH) * l.Scale)
		var x, y int
		switch l.Anchor {
		case scene.TopLeft:
			x, y = margin, leftY
			leftY += h + 4
		case scene.TopCenter:
			x, y = fbW/2-w/2, margin
		case scene.TopRight:
			x, y = fbW-w-margin, margin
		case scene.Center:
			x, y = fbW/2-w/2, fbH/2-h
		case scene.BelowCenter:
			x, y = fbW/2-w/2, fbH/2+h
		}
		r.DrawString(l.Text, x, y, l.Scale, l.Color)
	}
	r.FlushText(fbW, fbH)
}

// FlushText draws all buffered text quads and clears the buffer.
func (r *Renderer) FlushText(fbW, fbH int) {
	if len(r.textBuf) == 0 {
		return
	}

	gl.UseProgram(r.textProg)
	gl.BindVertexArray(r.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)

	gl.Uniform2f(r.textURes, float32(fbW), float32(fbH))

	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTex)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	count := len(r.textBuf) / 8
	gl.BufferData(gl.ARRAY_BUFFER, len(r.textBuf)*4, gl.Ptr(r.textBuf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))

	gl.Disable(gl.BLEND)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(0)
	r.textBuf = r.textBuf[:0]
}
