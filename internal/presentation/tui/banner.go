package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"      _        _                              ",
	"  ___| |_ __ _| |_ _   _ ___ _ __ ___   __ _ _ __  ",
	" / __| __/ _` | __| | | / __| '_ ` _ \\ / _` | '_ \\ ",
	" \\__ \\ || (_| | |_| |_| \\__ \\ | | | | | (_| | |_) |",
	" |___/\\__\\__,_|\\__|\\__,_|___/_| |_| |_|\\__,_| .__/ ",
	"                                            |_|    ",
}

// Using a subtle gradient-like color scheme (Indigo/Violet)
var bannerColors = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6", "#fb7185"}

// PrintBanner outputs the ASCII banner with the version. Nothing is printed
// when w is not a terminal.
func PrintBanner(w io.Writer, version string) {
	if !IsTerminal(w) {
		return
	}

	p := termenv.EnvColorProfile()
	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line).Foreground(p.Color(bannerColors[i])))
	}
	fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
