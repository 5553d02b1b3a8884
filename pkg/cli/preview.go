package cli

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Fepozopo/shockwave/pkg/shockwave"
)

// Terminal preview for the kitty graphics protocol and the iTerm2 inline-image protocol
// (also spoken by WezTerm, Warp, Tabby, VSCode and others), with chafa as a character-cell
// fallback. PREVIEW_BACKEND=kitty|inline|chafa forces a backend first.

// Previewer writes image previews to a terminal.
type Previewer struct {
	Out io.Writer
	Log zerolog.Logger
}

// NewPreviewer returns a Previewer writing to stdout.
func NewPreviewer(log zerolog.Logger) *Previewer {
	return &Previewer{Out: os.Stdout, Log: log.With().Str("component", "preview").Logger()}
}

func isKitty() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	// ghostty speaks the kitty protocol
	return strings.Contains(term, "kitty") || strings.Contains(term, "ghostty")
}

func isInlineImageCapable() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "Tabby", "Bobcat":
		return true
	}
	if os.Getenv("ITERM_SESSION_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "wezterm") || strings.Contains(term, "tabby")
}

func hasChafa() bool {
	if os.Getenv("NO_CHAFA") == "1" {
		return false
	}
	_, err := exec.LookPath("chafa")
	return err == nil
}

// PreviewSupported reports whether some preview backend is likely to work.
func PreviewSupported() bool {
	return isKitty() || isInlineImageCapable() || hasChafa()
}

// PreviewSize is a placement in terminal cells plus its approximate pixel size.
type PreviewSize struct {
	Cols        int
	Rows        int
	PixelWidth  int
	PixelHeight int
}

// computePreviewSize fits the image into at most 80x40 cells of 8x16 pixels without
// scaling up, keeping the aspect ratio.
func computePreviewSize(img image.Image) PreviewSize {
	const (
		charW   = 8
		charH   = 16
		minCols = 6
		minRows = 3
		maxCols = 80
		maxRows = 40
	)
	w := float64(img.Bounds().Dx())
	h := float64(img.Bounds().Dy())
	scale := math.Min(1, math.Min(maxCols*charW/w, maxRows*charH/h))
	cols := clampCells(int(math.Round(w*scale/charW)), minCols, maxCols)
	rows := clampCells(int(math.Round(h*scale/charH)), minRows, maxRows)
	return PreviewSize{Cols: cols, Rows: rows, PixelWidth: cols * charW, PixelHeight: rows * charH}
}

func clampCells(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// postImageNewlines is the padding printed after an image so the prompt lands below it.
func postImageNewlines(rows int) int {
	switch {
	case rows <= 2:
		return 1
	case rows <= 6:
		return 2
	case rows <= 20:
		return 3
	default:
		return 4
	}
}

// Preview encodes img (PNG, or JPEG when format asks for it and the backend is not kitty)
// and sends it to the terminal.
func (p *Previewer) Preview(img image.Image, format string) error {
	if img == nil || img.Bounds().Empty() {
		return fmt.Errorf("nil image")
	}
	backend := strings.ToLower(os.Getenv("PREVIEW_BACKEND"))
	f := shockwave.FormatPNG
	if pf, err := shockwave.ParseFormat(format); err == nil && pf == shockwave.FormatJPEG {
		f = pf
	}
	if backend == "kitty" || (backend == "" && isKitty()) {
		p.Log.Debug().Msg("forcing png encoding for kitty")
		f = shockwave.FormatPNG
	}
	var buf bytes.Buffer
	if err := shockwave.Encode(&buf, img, f); err != nil {
		return err
	}
	return p.previewBytes(buf.Bytes(), f, computePreviewSize(img), backend)
}

func (p *Previewer) previewBytes(blob []byte, f shockwave.Format, size PreviewSize, backend string) error {
	if len(blob) == 0 {
		return fmt.Errorf("empty image blob")
	}
	if backend != "" {
		var err error
		switch backend {
		case "kitty":
			err = p.sendKitty(blob, size)
		case "inline", "iterm", "wezterm":
			err = p.sendInline(blob, f, size)
		case "chafa":
			err = p.sendChafa(blob, size)
		default:
			err = fmt.Errorf("unknown backend")
		}
		if err == nil {
			return nil
		}
		p.Log.Debug().Err(err).Str("backend", backend).Msg("forced backend failed")
	}

	switch {
	case isInlineImageCapable():
		p.Log.Debug().Msg("using inline protocol")
		return p.sendInline(blob, f, size)
	case isKitty():
		p.Log.Debug().Msg("using kitty protocol")
		return p.sendKitty(blob, size)
	case hasChafa():
		p.Log.Debug().Msg("using chafa")
		return p.sendChafa(blob, size)
	}
	return fmt.Errorf("no preview protocol matched")
}

// sendKitty transmits PNG bytes with the kitty graphics protocol in base64 chunks of at most
// 4096 bytes. The first chunk carries the placement; q=2 suppresses terminal replies.
func (p *Previewer) sendKitty(data []byte, size PreviewSize) error {
	const chunkSize = 4096
	enc := base64.StdEncoding.EncodeToString(data)
	p.Log.Debug().Int("bytes", len(data)).Int("cols", size.Cols).Int("rows", size.Rows).Msg("kitty transmit")
	for pos := 0; pos < len(enc); pos += chunkSize {
		end := min(pos+chunkSize, len(enc))
		more := 0
		if end < len(enc) {
			more = 1
		}
		var seq string
		if pos == 0 {
			seq = fmt.Sprintf("\x1b_Ga=T,f=100,t=d,q=2,c=%d,r=%d,m=%d;%s\x1b\\", size.Cols, size.Rows, more, enc[pos:end])
		} else {
			seq = fmt.Sprintf("\x1b_Gm=%d;%s\x1b\\", more, enc[pos:end])
		}
		if _, err := io.WriteString(p.Out, seq); err != nil {
			return err
		}
	}
	p.pad(size.Rows)
	return nil
}

// sendInline emits the OSC 1337 inline file sequence.
func (p *Previewer) sendInline(data []byte, f shockwave.Format, size PreviewSize) error {
	name := "preview" + f.Extension()
	meta := fmt.Sprintf("size=%d;", len(data))
	if size.PixelWidth > 0 && size.PixelHeight > 0 {
		meta += fmt.Sprintf("width=%dpx;height=%dpx;", size.PixelWidth, size.PixelHeight)
	}
	seq := "\x1b]1337;File=name=" + base64.StdEncoding.EncodeToString([]byte(name)) + ";inline=1;" + meta + ":" +
		base64.StdEncoding.EncodeToString(data) + "\a"
	n, err := io.WriteString(p.Out, seq)
	p.Log.Debug().Int("written", n).Err(err).Msg("inline transmit")
	if err != nil {
		return err
	}
	p.pad(0)
	return nil
}

// sendChafa pipes the image through the external chafa renderer.
func (p *Previewer) sendChafa(data []byte, size PreviewSize) error {
	if !hasChafa() {
		return fmt.Errorf("chafa not available")
	}
	cmd := exec.Command("chafa", "--fill=block", "--symbols=block", "-s", fmt.Sprintf("%dx%d", size.Cols, size.Rows), "-")
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = p.Out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("chafa failed: %w", err)
	}
	p.pad(size.Rows)
	return nil
}

func (p *Previewer) pad(rows int) {
	for i := 0; i < postImageNewlines(rows); i++ {
		fmt.Fprintln(p.Out)
	}
}
