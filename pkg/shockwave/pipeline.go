package shockwave

import (
	"image"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/Fepozopo/shockwave/pkg/stdimg"
)

// Stage names reported to loggers and stage hooks, in run order.
const (
	StageGray      = "grayscale"
	StageContrast  = "contrast"
	StageVariant   = "variant"
	StageCLAHE     = "clahe"
	StageEdges     = "laplacian"
	StageThreshold = "threshold"
	StageDilate    = "dilate"
	StageContours  = "contours"
	StageOverlay   = "overlay"
	StageEqualize  = "equalize"
)

// Result is the outcome of one run.
type Result struct {
	Output   *image.Gray      // overlaid, luma-reduced, globally equalized raster
	Contours []stdimg.Contour // external contours of the dilated edge mask
	Variant  Variant          // branch taken by noise reduction
}

// StageHook observes the raster produced by each stage. The raster must not be modified.
type StageHook func(stage string, img image.Image)

// Pipeline runs the boundary detector. The zero value is not usable; build one with New.
// A Pipeline is immutable and safe for concurrent use.
type Pipeline struct {
	log  zerolog.Logger
	hook StageHook
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for per-stage debug events.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.log = l.With().Str("component", "pipeline").Logger() }
}

// WithStageHook registers a callback invoked after every stage.
func WithStageHook(h StageHook) Option {
	return func(p *Pipeline) { p.hook = h }
}

// New returns a Pipeline with the given options applied.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{log: zerolog.Nop()}
	for _, o := range opts {
		o(p)
	}
	return p
}

var defaultPipeline = New()

// Run processes src with the default pipeline.
func Run(src image.Image, params Params) (*Result, error) {
	return defaultPipeline.Run(src, params)
}

// Process decodes r, runs the pipeline and encodes the output raster to w in format.
// The output is not written when decoding fails.
func Process(r io.Reader, w io.Writer, params Params, format Format) (*Result, error) {
	return defaultPipeline.Process(r, w, params, format)
}

// Process is the Pipeline counterpart of the package-level Process.
func (p *Pipeline) Process(r io.Reader, w io.Writer, params Params, format Format) (*Result, error) {
	src, err := Decode(r)
	if err != nil {
		return nil, err
	}
	res, err := p.Run(src, params)
	if err != nil {
		return nil, err
	}
	if err := Encode(w, res.Output, format); err != nil {
		return res, err
	}
	return res, nil
}

// Run executes every stage on src. A nil or empty src is a *DecodeError; any other input
// produces a result.
func (p *Pipeline) Run(src image.Image, params Params) (*Result, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, &DecodeError{Err: errEmptyRaster}
	}
	orig := stdimg.ToNRGBA(src)
	start := time.Now()
	p.log.Debug().
		Int("width", orig.Rect.Dx()).
		Int("height", orig.Rect.Dy()).
		Float64("contrast", params.Contrast).
		Float64("sharpness", params.Sharpness).
		Msg("run started")

	t := time.Now()
	gray := stdimg.ToGray(orig)
	p.stage(StageGray, gray, t).Msg("stage finished")

	t = time.Now()
	gray = stdimg.AdjustContrast(gray, params.Contrast)
	p.stage(StageContrast, gray, t).Msg("stage finished")

	t = time.Now()
	prepared := Prepare(gray, params.Sharpness)
	p.stage(StageVariant, prepared.Image, t).Stringer("variant", prepared.Variant).Msg("stage finished")

	t = time.Now()
	enhanced := stdimg.CLAHE(prepared.Image, stdimg.DefaultCLAHEClipLimit, stdimg.DefaultCLAHETiles, stdimg.DefaultCLAHETiles)
	p.stage(StageCLAHE, enhanced, t).Msg("stage finished")

	t = time.Now()
	strength := stdimg.EdgeStrength(enhanced)
	p.stage(StageEdges, strength, t).Msg("stage finished")

	t = time.Now()
	mask := stdimg.EdgeThreshold(strength, stdimg.DefaultThresholdBlock, stdimg.DefaultThresholdBias)
	p.stage(StageThreshold, mask, t).Msg("stage finished")

	t = time.Now()
	mask = stdimg.Dilate(mask, 1)
	p.stage(StageDilate, mask, t).Msg("stage finished")

	t = time.Now()
	contours := stdimg.FindExternalContours(mask)
	p.stage(StageContours, mask, t).Int("contours", len(contours)).Msg("stage finished")

	t = time.Now()
	overlay := stdimg.DrawContours(orig, contours, stdimg.HighlightColor, stdimg.DefaultLineWidth)
	p.stage(StageOverlay, overlay, t).Msg("stage finished")

	t = time.Now()
	out := stdimg.Equalize(stdimg.ToGray(overlay))
	p.stage(StageEqualize, out, t).Msg("stage finished")

	p.log.Debug().
		Dur("elapsed", time.Since(start)).
		Int("contours", len(contours)).
		Stringer("variant", prepared.Variant).
		Msg("run finished")
	return &Result{Output: out, Contours: contours, Variant: prepared.Variant}, nil
}

// stage reports a finished stage to the hook and returns its pending debug event.
func (p *Pipeline) stage(name string, img image.Image, started time.Time) *zerolog.Event {
	if p.hook != nil {
		p.hook(name, img)
	}
	return p.log.Debug().Str("stage", name).Dur("elapsed", time.Since(started))
}
