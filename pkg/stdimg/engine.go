package stdimg

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// ApplyCommandStdlib applies one pipeline stage, selected by name, to img and returns a new image.
// Stages that operate on intensity first reduce img to grayscale with the luma weights, so the
// commands can be chained to inspect the boundary detector step by step.
// identify returns a nil image.
func ApplyCommandStdlib(img image.Image, commandName string, args []string) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("source image is nil")
	}
	switch commandName {
	case "grayscale":
		return ToGray(img), nil

	case "contrast":
		if len(args) != 1 {
			return nil, fmt.Errorf("contrast requires 1 arg: gain")
		}
		gain, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid gain: %w", err)
		}
		return AdjustContrast(ToGray(img), gain), nil

	case "smooth":
		return Smooth(ToGray(img)), nil

	case "gaussian":
		// gaussian <sigma> [ksize]
		if len(args) < 1 {
			return nil, fmt.Errorf("gaussian requires 1 arg: sigma")
		}
		sigma, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid sigma: %w", err)
		}
		ksize := 0
		if len(args) >= 2 && args[1] != "" {
			if ksize, err = strconv.Atoi(args[1]); err != nil {
				return nil, fmt.Errorf("invalid ksize: %w", err)
			}
		}
		if ksize <= 0 && !(sigma > 0) {
			return nil, fmt.Errorf("gaussian needs a positive sigma or ksize")
		}
		return SeparableGaussianBlur(ToGray(img), ksize, sigma, BorderReflect101), nil

	case "sharpen":
		if len(args) != 1 {
			return nil, fmt.Errorf("sharpen requires 1 arg: amount")
		}
		amount, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amount: %w", err)
		}
		return UnsharpMask(ToGray(img), amount), nil

	case "clahe":
		// clahe [clipLimit] [tiles]
		clip := DefaultCLAHEClipLimit
		tiles := DefaultCLAHETiles
		if len(args) >= 1 && args[0] != "" {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid clipLimit: %w", err)
			}
			clip = v
		}
		if len(args) >= 2 && args[1] != "" {
			v, err := strconv.Atoi(args[1])
			if err != nil || v <= 0 {
				return nil, fmt.Errorf("invalid tiles: %q", args[1])
			}
			tiles = v
		}
		return CLAHE(ToGray(img), clip, tiles, tiles), nil

	case "laplacian":
		return EdgeStrength(ToGray(img)), nil

	case "adaptiveThreshold":
		// adaptiveThreshold [blockSize] [bias] [method]
		block := DefaultThresholdBlock
		bias := DefaultThresholdBias
		method := AdaptiveGaussian
		if len(args) >= 1 && args[0] != "" {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, fmt.Errorf("invalid blockSize: %w", err)
			}
			block = v
		}
		if len(args) >= 2 && args[1] != "" {
			v, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid bias: %w", err)
			}
			bias = v
		}
		if len(args) >= 3 && args[2] != "" {
			switch strings.ToLower(args[2]) {
			case "gaussian":
				method = AdaptiveGaussian
			case "mean":
				method = AdaptiveMean
			default:
				return nil, fmt.Errorf("invalid method: %q", args[2])
			}
		}
		return AdaptiveThreshold(ToGray(img), method, block, bias), nil

	case "edgeThreshold":
		return EdgeThreshold(ToGray(img), DefaultThresholdBlock, DefaultThresholdBias), nil

	case "dilate":
		// dilate [iterations]
		iterations := 1
		if len(args) >= 1 && args[0] != "" {
			if v, err := strconv.Atoi(args[0]); err == nil && v > 0 {
				iterations = v
			}
		}
		return Dilate(ToGray(img), iterations), nil

	case "contours":
		// trace the non-zero regions of the current image and outline them on it
		contours := FindExternalContours(ToGray(img))
		return DrawContours(img, contours, HighlightColor, DefaultLineWidth), nil

	case "equalize":
		return Equalize(ToGray(img)), nil

	case "histogram":
		// histogram [width] [height]
		width, height := 512, 120
		if len(args) >= 1 && args[0] != "" {
			if v, err := strconv.Atoi(args[0]); err == nil && v > 0 {
				width = v
			}
		}
		if len(args) >= 2 && args[1] != "" {
			if v, err := strconv.Atoi(args[1]); err == nil && v > 0 {
				height = v
			}
		}
		return RenderHistogramImage(ComputeHistogram(ToGray(img)), width, height), nil

	case "identify":
		return nil, nil

	default:
		return nil, fmt.Errorf("unsupported command in stdlib engine: %s", commandName)
	}
}
