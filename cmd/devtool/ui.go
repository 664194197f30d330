package main

import (
	"fmt"
	"os"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

// colorEnabled honors the NO_COLOR convention for CI logs.
var colorEnabled = os.Getenv("NO_COLOR") == ""

func paint(color, s string) string {
	if !colorEnabled {
		return s
	}
	return color + s + colorReset
}

func status(color, mark, format string, a ...interface{}) {
	fmt.Println(paint(color, mark+" "+fmt.Sprintf(format, a...)))
}

func PrintInfo(format string, a ...interface{})    { status(colorBlue, "ℹ", format, a...) }
func PrintSuccess(format string, a ...interface{}) { status(colorGreen, "✓", format, a...) }
func PrintWarning(format string, a ...interface{}) { status(colorYellow, "⚠", format, a...) }
func PrintError(format string, a ...interface{})   { status(colorRed, "✗", format, a...) }

func PrintHeader(title string) {
	fmt.Println()
	fmt.Println(paint(colorYellow, "=== "+title+" ==="))
}
