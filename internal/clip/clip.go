// Package clip copies text to the system clipboard.
package clip

import (
	"os"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// Copy writes text to the system clipboard. When no native clipboard
// helper is available (headless hosts, SSH sessions) it falls back to an
// OSC 52 escape sequence on stderr and lets the terminal do the copy.
func Copy(text string) error {
	if err := clipboard.WriteAll(text); err == nil {
		return nil
	}
	_, err := osc52.New(text).WriteTo(os.Stderr)
	return err
}
