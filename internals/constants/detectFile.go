package constants

import (
	"path/filepath"
	"strings"
)

const (
	SheetUnknown = iota
	SheetCSV
	SheetXLSX
)

// DetectSheetType classifies an uploaded register by file extension.
func DetectSheetType(filename string) int {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return SheetCSV
	case ".xlsx":
		return SheetXLSX
	default:
		return SheetUnknown
	}
}
