package cli

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Fepozopo/shockwave/pkg/stdimg"
)

// fzfAvailable reports whether the fzf binary is on PATH.
func fzfAvailable() bool {
	_, err := exec.LookPath("fzf")
	return err == nil
}

// SelectCommandWithFzfStd displays the stage commands in fzf and returns the selected name.
func SelectCommandWithFzfStd(commands []stdimg.CommandSpec) (string, error) {
	var b strings.Builder
	for _, c := range commands {
		fmt.Fprintf(&b, "%s: %s\n", c.Name, c.Description)
	}

	cmd := exec.Command("fzf", "--prompt=Stage> ")
	cmd.Stdin = strings.NewReader(b.String())
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running fzf: %w", err)
	}

	name, _, _ := strings.Cut(strings.TrimSpace(out.String()), ":")
	if name = strings.TrimSpace(name); name == "" {
		return "", fmt.Errorf("no command selected")
	}
	return name, nil
}

// SelectFileWithFzf lists the decodable images under startDir in fzf and returns the chosen
// path. The preview pane uses kitty icat or imgcat when the terminal speaks those protocols
// and chafa otherwise. Requires find, bash and fzf on PATH.
func SelectFileWithFzf(startDir string) (string, error) {
	const chafa = "chafa --fill=block --symbols=block -s 80x40 {} 2>/dev/null"
	previewCmd := chafa
	switch {
	case isKitty():
		previewCmd = "printf \"\\x1b_Ga=d\\x1b\\\\\"; kitty +kitten icat --silent {} 2>/dev/null || " + chafa
	case isInlineImageCapable():
		previewCmd = "imgcat {} 2>/dev/null || " + chafa
	}

	cmdStr := fmt.Sprintf(
		"find %s -type f \\( -iname '*.jpg' -o -iname '*.jpeg' -o -iname '*.png' -o -iname '*.gif' -o -iname '*.bmp' -o -iname '*.tif' -o -iname '*.tiff' -o -iname '*.webp' \\) | fzf --height 100%% --border --prompt='Files> ' --ansi --preview=%q --preview-window='right:60%%'",
		strconv.Quote(startDir),
		previewCmd,
	)
	cmd := exec.Command("bash", "-lc", cmdStr)
	var out bytes.Buffer
	cmd.Stdout = &out
	err := cmd.Run()
	// the previewer may leave kitty images behind
	clearKittyImages()
	if err != nil {
		return "", fmt.Errorf("error running fzf for files: %w", err)
	}

	selection := strings.TrimSpace(out.String())
	if selection == "" {
		return "", fmt.Errorf("no file selected")
	}
	return selection, nil
}

// clearKittyImages emits the kitty graphics "delete" control sequence.
// Terminals that don't understand it will ignore it.
func clearKittyImages() {
	if isKitty() {
		fmt.Fprint(os.Stdout, "\x1b_Ga=d\x1b\\")
	}
}
