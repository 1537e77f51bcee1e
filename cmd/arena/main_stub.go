//go:build !ebiten

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "The GUI build of contagion requires the ebiten build tag.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/arena` or build with `-tags ebiten`.")
	fmt.Fprintln(os.Stderr, "For a headless run try ./cmd/arena-report or ./cmd/arena-tui.")
	os.Exit(2)
}
