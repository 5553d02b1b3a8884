// Command shockwave outlines shockwave boundaries in an image.
//
//	shockwave [-contrast 1.0] [-sharpness 0] [-o out.png] image.jpg
//	shockwave -i [image.jpg]
package main

import (
	"os"

	"github.com/Fepozopo/shockwave/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
