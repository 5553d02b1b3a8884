package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Fepozopo/shockwave/pkg/shockwave"
	"github.com/Fepozopo/shockwave/pkg/stdimg"
)

// Options are the resolved settings of one invocation.
type Options struct {
	Config
	Output      string
	Interactive bool
	Preview     bool
	DumpStages  string
	Update      bool
	Version     bool
	Input       string
}

// ParseArgs resolves defaults, .env, environment and then command-line flags.
func ParseArgs(args []string, stderr io.Writer) (Options, error) {
	cfg, err := LoadConfig(".env")
	if err != nil {
		return Options{}, err
	}
	opts := Options{Config: cfg}
	fs := flag.NewFlagSet("shockwave", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: shockwave [flags] <image>")
		fmt.Fprintln(stderr, "Detects shockwave boundaries and writes processed_<image> next to the input.")
		fs.PrintDefaults()
	}
	fs.Float64Var(&opts.Params.Contrast, "contrast", cfg.Params.Contrast, "linear contrast gain")
	fs.Float64Var(&opts.Params.Sharpness, "sharpness", cfg.Params.Sharpness, "unsharp-mask weight (0 disables sharpening)")
	fs.StringVar(&opts.Output, "o", "", "output path (default processed_<input> beside the input)")
	fs.StringVar(&opts.Format, "format", cfg.Format, "output format: png, jpeg, bmp or tiff")
	fs.StringVar(&opts.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.BoolVar(&opts.Interactive, "i", false, "interactive mode")
	fs.BoolVar(&opts.Preview, "preview", false, "preview the result in the terminal")
	fs.StringVar(&opts.DumpStages, "dump-stages", "", "directory receiving one PNG per pipeline stage")
	fs.BoolVar(&opts.Update, "update", false, "check for a newer release and update")
	fs.BoolVar(&opts.Version, "version", false, "print the version and exit")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		opts.Input = fs.Arg(0)
	default:
		return opts, fmt.Errorf("expected one input image, got %d arguments", fs.NArg())
	}
	if opts.Format != "" {
		if _, err := shockwave.ParseFormat(opts.Format); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// Run is the command entry point; it returns the process exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := ParseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "shockwave: %v\n", err)
		return 2
	}
	log, err := NewLogger(stderr, opts.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "shockwave: %v\n", err)
		return 2
	}

	in := bufio.NewReader(stdin)
	switch {
	case opts.Version:
		fmt.Fprintln(stdout, Version)
		return 0
	case opts.Update:
		confirm := func(prompt string) (string, error) { return promptLine(in, stdout, prompt) }
		if err := CheckForUpdates(stdout, runtime.GOOS, runtime.GOARCH, confirm); err != nil {
			fmt.Fprintf(stderr, "update check error: %v\n", err)
			return 1
		}
		return 0
	case opts.Interactive:
		s := newSession(opts, log, in, stdout, stderr)
		if opts.Input != "" {
			if err := s.open(opts.Input); err != nil {
				fmt.Fprintf(stderr, "failed to read image %s: %v\n", opts.Input, err)
				return 1
			}
		}
		s.loop()
		return 0
	case opts.Input == "":
		fmt.Fprintln(stderr, "shockwave: no input image (use -i for interactive mode)")
		return 2
	}

	if err := runBatch(opts, log, stdout); err != nil {
		fmt.Fprintf(stderr, "failed to process %s: %v\n", opts.Input, err)
		return 1
	}
	return 0
}

// runBatch processes one file and writes the result.
func runBatch(opts Options, log zerolog.Logger, stdout io.Writer) error {
	format, err := ResolveFormat(opts.Format, opts.Output, opts.Input)
	if err != nil {
		return err
	}
	out := opts.Output
	if out == "" {
		out = DefaultOutputPath(opts.Input, format)
	}
	src, _, err := LoadImage(opts.Input)
	if err != nil {
		return err
	}
	p, err := newPipeline(log, opts.DumpStages)
	if err != nil {
		return err
	}
	res, err := p.Run(src, opts.Params)
	if err != nil {
		return err
	}
	if err := SaveImage(out, res.Output, string(format)); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	log.Info().
		Str("input", opts.Input).
		Str("output", out).
		Int("contours", len(res.Contours)).
		Stringer("variant", res.Variant).
		Msg("processed")
	fmt.Fprintln(stdout, out)
	if opts.Preview {
		if err := NewPreviewer(log).Preview(res.Output, string(format)); err != nil {
			log.Warn().Err(err).Msg("preview unavailable")
		}
	}
	return nil
}

// newPipeline builds the pipeline, writing every stage raster into dumpDir when set.
func newPipeline(log zerolog.Logger, dumpDir string) (*shockwave.Pipeline, error) {
	opts := []shockwave.Option{shockwave.WithLogger(log)}
	if dumpDir != "" {
		if err := os.MkdirAll(dumpDir, 0o755); err != nil {
			return nil, err
		}
		n := 0
		opts = append(opts, shockwave.WithStageHook(func(stage string, img image.Image) {
			n++
			path := filepath.Join(dumpDir, fmt.Sprintf("%02d_%s.png", n, stage))
			if err := SaveImage(path, img, "png"); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("stage dump failed")
			}
		}))
	}
	return shockwave.New(opts...), nil
}

// session is the interactive editor state. source is the opened image and is never
// modified; cur is the working image that stage commands and runs replace.
type session struct {
	opts     Options
	log      zerolog.Logger
	in       *bufio.Reader
	out      io.Writer
	errOut   io.Writer
	store    *StdMetaStore
	pipeline *shockwave.Pipeline
	preview  *Previewer
	useFzf   bool

	path   string
	format string
	source *image.NRGBA
	cur    image.Image
}

func newSession(opts Options, log zerolog.Logger, in *bufio.Reader, out, errOut io.Writer) *session {
	pv := NewPreviewer(log)
	pv.Out = out
	return &session{
		opts:     opts,
		log:      log,
		in:       in,
		out:      out,
		errOut:   errOut,
		store:    NewMetaStoreFromStdimg(stdimg.Commands),
		pipeline: shockwave.New(shockwave.WithLogger(log)),
		preview:  pv,
		useFzf:   fzfAvailable(),
	}
}

func (s *session) usage() {
	fmt.Fprintln(s.out, "Commands available:")
	fmt.Fprintln(s.out, "  /  - apply a single stage command (e.g. '/clahe 3 8')")
	fmt.Fprintln(s.out, "  r  - run the full pipeline on the opened image")
	fmt.Fprintln(s.out, "  p  - set contrast and sharpness (e.g. 'p 1.4 0.5')")
	fmt.Fprintln(s.out, "  z  - reset to the opened image")
	fmt.Fprintln(s.out, "  o  - open another image")
	fmt.Fprintln(s.out, "  s  - save current image")
	fmt.Fprintln(s.out, "  i  - show image info")
	fmt.Fprintln(s.out, "  u  - check for updates")
	fmt.Fprintln(s.out, "  h  - show this help message")
	fmt.Fprintln(s.out, "  q  - quit")
}

func (s *session) prompt(label string) (string, error) {
	return promptLine(s.in, s.out, label)
}

func (s *session) loop() {
	fmt.Fprintln(s.out, "Shockwave boundary detector")
	s.usage()
	for {
		line, err := s.prompt("> ")
		if err != nil {
			if err != io.EOF {
				fmt.Fprintf(s.errOut, "read input error: %v\n", err)
			}
			return
		}
		if line == "" {
			continue
		}
		cmd, rest := line[:1], strings.TrimSpace(line[1:])
		switch cmd {
		case "/":
			s.stage(rest)
		case "r":
			s.run()
		case "p":
			s.setParams(rest)
		case "z":
			if s.requireImage() {
				s.cur = s.source
				s.show()
			}
		case "o":
			s.openPrompt(rest)
		case "s":
			s.save(rest)
		case "i":
			if s.requireImage() {
				s.info()
			}
		case "u":
			confirm := func(p string) (string, error) { return s.prompt(p) }
			if err := CheckForUpdates(s.out, runtime.GOOS, runtime.GOARCH, confirm); err != nil {
				fmt.Fprintf(s.errOut, "update check error: %v\n", err)
			}
		case "h":
			s.usage()
		case "q":
			fmt.Fprintln(s.out, "Exiting...")
			return
		default:
			fmt.Fprintf(s.out, "unknown key %q, press h for help\n", cmd)
		}
	}
}

func (s *session) requireImage() bool {
	if s.cur == nil {
		fmt.Fprintln(s.out, "No image loaded. Press 'o' to open an image first, or provide an image path as the argument.")
		return false
	}
	return true
}

func (s *session) open(path string) error {
	img, format, err := LoadImage(path)
	if err != nil {
		return err
	}
	s.path, s.format, s.source, s.cur = path, format, img, img
	fmt.Fprintf(s.out, "Opened %s\n", path)
	s.show()
	return nil
}

func (s *session) openPrompt(path string) {
	if path == "" && s.useFzf {
		if sel, err := SelectFileWithFzf("."); err == nil {
			path = sel
		}
	}
	if path == "" {
		path, _ = s.prompt("Enter path to image to open (leave empty to cancel): ")
	}
	if path == "" {
		fmt.Fprintln(s.out, "open cancelled")
		return
	}
	if err := s.open(path); err != nil {
		fmt.Fprintf(s.errOut, "failed to read image %s: %v\n", path, err)
	}
}

func (s *session) show() {
	if s.opts.Preview {
		if err := s.preview.Preview(s.cur, s.format); err != nil {
			s.log.Debug().Err(err).Msg("preview unavailable")
		}
	}
	s.info()
}

func (s *session) info() {
	if info, err := GetImageInfoImage(s.cur, s.format); err == nil {
		fmt.Fprintln(s.out, info)
	}
}

func (s *session) run() {
	if !s.requireImage() {
		return
	}
	res, err := s.pipeline.Run(s.source, s.opts.Params)
	if err != nil {
		fmt.Fprintf(s.errOut, "pipeline error: %v\n", err)
		return
	}
	s.cur = res.Output
	fmt.Fprintf(s.out, "Processed with contrast=%g sharpness=%g: %d contours (%s)\n",
		s.opts.Params.Contrast, s.opts.Params.Sharpness, len(res.Contours), res.Variant)
	s.show()
}

func (s *session) setParams(rest string) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		c, _ := s.prompt(fmt.Sprintf("contrast [%g]: ", s.opts.Params.Contrast))
		sh, _ := s.prompt(fmt.Sprintf("sharpness [%g]: ", s.opts.Params.Sharpness))
		fields = []string{c, sh}
	}
	next := s.opts.Params
	targets := []*float64{&next.Contrast, &next.Sharpness}
	for i, f := range fields {
		if i >= len(targets) {
			fmt.Fprintln(s.errOut, "expected at most two values: contrast sharpness")
			return
		}
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			fmt.Fprintf(s.errOut, "invalid number %q\n", f)
			return
		}
		*targets[i] = v
	}
	s.opts.Params = next
	fmt.Fprintf(s.out, "contrast=%g sharpness=%g\n", next.Contrast, next.Sharpness)
}

func (s *session) stage(rest string) {
	if !s.requireImage() {
		return
	}
	fields := strings.Fields(rest)
	var name string
	var args []string
	if len(fields) > 0 {
		n, err := s.store.Resolve(fields[0])
		if err != nil {
			fmt.Fprintln(s.errOut, err)
			return
		}
		name, args = n, fields[1:]
	} else {
		n, err := s.selectCommand()
		if err != nil {
			fmt.Fprintln(s.out, err)
			return
		}
		name = n
		args = s.promptArgs(name)
	}

	norm, err := NormalizeArgsFromStd(s.store, name, args)
	if err != nil {
		fmt.Fprintf(s.errOut, "input validation error: %v\n", err)
		return
	}
	next, err := stdimg.ApplyCommandStdlib(s.cur, name, norm)
	if err != nil {
		fmt.Fprintf(s.errOut, "apply command error: %v\n", err)
		return
	}
	if next != nil {
		s.cur = next
		fmt.Fprintf(s.out, "Applied %s\n", name)
	}
	s.show()
}

func (s *session) selectCommand() (string, error) {
	if s.useFzf {
		if name, err := SelectCommandWithFzfStd(stdimg.Commands); err == nil {
			return name, nil
		}
	}
	fmt.Fprintln(s.out, "Command selection:")
	for i, c := range stdimg.Commands {
		fmt.Fprintf(s.out, "  %d) %s - %s\n", i+1, c.Name, c.Description)
	}
	sel, err := s.prompt("Enter number or command name (leave empty to cancel): ")
	if err != nil || sel == "" {
		return "", fmt.Errorf("selection cancelled")
	}
	return s.store.Resolve(sel)
}

func (s *session) promptArgs(name string) []string {
	c, _ := s.store.Lookup(name)
	if tip, _, err := s.store.GetCommandHelp(name); err == nil {
		fmt.Fprintln(s.out, "\n"+tip+"\n")
	}
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		label := a.Type
		if a.Type == "enum" {
			label = "enum(" + a.Description + ")"
		}
		args[i], _ = s.prompt(fmt.Sprintf("%s (%s): ", a.Name, label))
	}
	return args
}

func (s *session) save(path string) {
	if !s.requireImage() {
		return
	}
	if path == "" {
		path, _ = s.prompt("Enter output filename: ")
	}
	if path == "" {
		fmt.Fprintln(s.out, "no filename provided")
		return
	}
	if err := SaveImage(path, s.cur, ""); err != nil {
		fmt.Fprintf(s.errOut, "failed to write image: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Saved to %s\n", path)
}
