// Package stdimg: authoritative registry of stdlib engine commands.
//
// This file mirrors the commands implemented in ApplyCommandStdlib in
// pkg/stdimg/engine.go. Keep this list up-to-date when you add or
// modify commands so callers (CLI, docs, help text) can read a single
// source of truth.

package stdimg

// ArgSpec describes a single argument for a command. Fields are textual
// and intended for help/validation UI rather than machine-enforced typing.
type ArgSpec struct {
	Name        string // human name
	Type        string // "int", "float", "enum"
	Required    bool
	Default     string // textual default (for help only)
	Description string
}

// CommandSpec defines a single command and its expected arguments.
type CommandSpec struct {
	Name        string
	Args        []ArgSpec
	Usage       string // short usage string
	Description string // brief description
}

// Commands is the authoritative list of commands implemented by the stdlib engine.
// Keep this synchronized with ApplyCommandStdlib in pkg/stdimg/engine.go.
var Commands = []CommandSpec{
	{
		Name:        "grayscale",
		Args:        []ArgSpec{},
		Usage:       "grayscale",
		Description: "Reduce to luma (0.299 R + 0.587 G + 0.114 B).",
	},
	{
		Name:        "contrast",
		Args:        []ArgSpec{{"gain", "float", true, "1.0", "linear gain, saturating at 0 and 255"}},
		Usage:       "contrast <gain>",
		Description: "Multiply intensities by a gain with no offset.",
	},
	{
		Name:        "smooth",
		Args:        []ArgSpec{},
		Usage:       "smooth",
		Description: "Fixed 5x5 Gaussian noise reduction.",
	},
	{
		Name:        "gaussian",
		Args:        []ArgSpec{{"sigma", "float", true, "", "gaussian sigma"}, {"ksize", "int", false, "0", "odd aperture; 0 derives it from sigma"}},
		Usage:       "gaussian <sigma> [ksize]",
		Description: "Separable Gaussian blur with reflect-101 borders.",
	},
	{
		Name:        "sharpen",
		Args:        []ArgSpec{{"amount", "float", true, "", "unsharp-mask weight"}},
		Usage:       "sharpen <amount>",
		Description: "Unsharp mask against a sigma 3.0 blur.",
	},
	{
		Name:        "clahe",
		Args:        []ArgSpec{{"clipLimit", "float", false, "2.0", "clip limit as a multiple of the mean bin count"}, {"tiles", "int", false, "8", "tiles per axis"}},
		Usage:       "clahe [clipLimit] [tiles]",
		Description: "Contrast-limited adaptive histogram equalization.",
	},
	{
		Name:        "laplacian",
		Args:        []ArgSpec{},
		Usage:       "laplacian",
		Description: "Absolute Laplacian response (edge strength).",
	},
	{
		Name:        "adaptiveThreshold",
		Args:        []ArgSpec{{"blockSize", "int", false, "11", "odd neighborhood size"}, {"bias", "float", false, "2", "subtracted from the local mean"}, {"method", "enum", false, "gaussian", "gaussian|mean"}},
		Usage:       "adaptiveThreshold [blockSize] [bias] [method]",
		Description: "Binarize against the local mean.",
	},
	{
		Name:        "edgeThreshold",
		Args:        []ArgSpec{},
		Usage:       "edgeThreshold",
		Description: "Gaussian adaptive threshold (11, 2) that never keeps zero-strength pixels.",
	},
	{
		Name:        "dilate",
		Args:        []ArgSpec{{"iterations", "int", false, "1", "number of 3x3 dilations"}},
		Usage:       "dilate [iterations]",
		Description: "Morphological dilation with a 3x3 square.",
	},
	{
		Name:        "contours",
		Args:        []ArgSpec{},
		Usage:       "contours",
		Description: "Outline the external contours of the non-zero regions.",
	},
	{
		Name:        "equalize",
		Args:        []ArgSpec{},
		Usage:       "equalize",
		Description: "Global histogram equalization.",
	},
	{
		Name:        "histogram",
		Args:        []ArgSpec{{"width", "int", false, "512", "output width"}, {"height", "int", false, "120", "output height"}},
		Usage:       "histogram [width] [height]",
		Description: "Render the intensity histogram.",
	},
	{
		Name:        "identify",
		Args:        []ArgSpec{},
		Usage:       "identify",
		Description: "Print image information; returns nil image.",
	},
}
