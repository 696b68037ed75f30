// cubestate - CLI for the 3x3 cube state engine.
package main

import (
	"github.com/SeamusWaldron/cubestate/internal/cli"
)

func main() {
	cli.Execute()
}
