// Copyright 2026 The Filmdash Authors
// SPDX-License-Identifier: MIT

package report

import (
	"github.com/fatih/color"
)

// Shared color printers for report sections. The revenue series colors
// approximate the chart colors in a 16-color terminal.
var (
	colorAverage  = color.New(color.FgMagenta)
	colorSelected = color.New(color.FgCyan)
	colorMarker   = color.New(color.FgRed, color.Bold)
	colorMuted    = color.New(color.Faint)
	colorBold     = color.New(color.Bold)
)

// SectionTitle renders a bold section title.
func SectionTitle(title string) string {
	return colorBold.Sprint(title)
}

// colorCount dims zero counts so the non-empty cells stand out.
func colorCount(val string) string {
	if val == "0" {
		return colorMuted.Sprint(val)
	}
	return val
}

// colorMarked highlights the selected movie's year bin.
func colorMarked(bin string) ColorFunc {
	return func(val string) string {
		if val == bin {
			return colorMarker.Sprint(val)
		}
		return val
	}
}
