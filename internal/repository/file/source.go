package file

import (
	"path/filepath"
	"strings"

	"github.com/nearest-service/internal/domain/repository"
)

// IsWorkbook reports whether name looks like an Excel workbook.
func IsWorkbook(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return true
	}
	return false
}

// NewSource picks the CSV or XLSX source by file extension.
func NewSource(path, sheet string) repository.TableSource {
	if IsWorkbook(path) {
		return NewXLSXSource(path, sheet)
	}
	return NewCSVSource(path)
}
