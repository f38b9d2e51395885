// Package assets embeds the ASCII sprite sheet and slices it into
// per-frame cells. The sheet mirrors the atlas geometry: one row per
// behavior, eight frame columns, fixed-size character cells.
package assets

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/sawyerbutton/Cyber-Cat/internal/atlas"
	"github.com/sawyerbutton/Cyber-Cat/internal/pet"
)

//go:embed sheet.txt
var embedded embed.FS

const (
	// CellWidth is the width of one sprite cell in characters.
	CellWidth = 12
	// CellHeight is the height of one sprite cell in lines.
	CellHeight = 6
)

// Sheet is a parsed sprite sheet: a grid of character cells addressed by
// sheet row and frame column.
type Sheet struct {
	cells [atlas.SheetRows][atlas.SheetColumns][]string
}

// Load parses the embedded sheet. The embed is checked at build time, so
// a malformed sheet is a packaging bug and Load panics.
func Load() *Sheet {
	data, err := embedded.ReadFile("sheet.txt")
	if err != nil {
		panic(fmt.Sprintf("embedded sprite sheet missing: %v", err))
	}
	sheet, err := Parse(string(data))
	if err != nil {
		panic(fmt.Sprintf("embedded sprite sheet malformed: %v", err))
	}
	return sheet
}

// LoadFrom parses a sheet from a file on disk, for trying out alternate
// art without rebuilding.
func LoadFrom(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sprite sheet: %w", err)
	}
	return Parse(string(data))
}

// Parse slices raw sheet text into cells. The text must be exactly
// SheetRows*CellHeight lines of SheetColumns*CellWidth characters.
func Parse(data string) (*Sheet, error) {
	lines := strings.Split(strings.TrimRight(data, "\n"), "\n")

	wantLines := atlas.SheetRows * CellHeight
	if len(lines) != wantLines {
		return nil, fmt.Errorf("sprite sheet has %d lines, want %d", len(lines), wantLines)
	}
	wantWidth := atlas.SheetColumns * CellWidth
	for i, line := range lines {
		if len(line) != wantWidth {
			return nil, fmt.Errorf("sprite sheet line %d is %d chars, want %d", i+1, len(line), wantWidth)
		}
	}

	var sheet Sheet
	for row := 0; row < atlas.SheetRows; row++ {
		for col := 0; col < atlas.SheetColumns; col++ {
			cell := make([]string, CellHeight)
			for y := 0; y < CellHeight; y++ {
				line := lines[row*CellHeight+y]
				cell[y] = line[col*CellWidth : (col+1)*CellWidth]
			}
			sheet.cells[row][col] = cell
		}
	}
	return &sheet, nil
}

// Cell returns the CellHeight lines of the cell at the given sheet row
// and frame column. Out-of-range indexes wrap, so a caller advancing a
// frame counter never reads outside the sheet.
func (s *Sheet) Cell(row, col int) []string {
	row = wrap(row, atlas.SheetRows)
	col = wrap(col, atlas.SheetColumns)
	return s.cells[row][col]
}

// Frame returns the cell for a behavior's frame, using the atlas row and
// frame-count for that behavior.
func (s *Sheet) Frame(b pet.Behavior, frame int) []string {
	spec := atlas.SpecFor(b)
	return s.Cell(spec.Row, wrap(frame, spec.FrameCount))
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
