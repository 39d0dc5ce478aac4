package display

import (
	"fmt"
	"os"

	"github.com/backmassage/icongrab/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, ` ___                 ____           _
|_ _|___ ___  _ __  / ___|_ __ __ _| |__
 | |/ __/ _ \| '_ \| |  _| '__/ _`+"`"+` | '_ \
 | | (_| (_) | | | | |_| | | | (_| | |_) |
|___\___\___/|_| |_|\____|_|  \__,_|_.__/
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
