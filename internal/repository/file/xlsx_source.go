package file

import (
	"context"
	"fmt"
	"io"

	"github.com/nearest-service/internal/domain"
	"github.com/nearest-service/internal/domain/repository"
	apperrors "github.com/nearest-service/internal/pkg/errors"
	"github.com/xuri/excelize/v2"
)

type xlsxSource struct {
	path  string
	sheet string
}

// NewXLSXSource reads one sheet of an Excel workbook. An empty sheet name
// means the first sheet.
func NewXLSXSource(path, sheet string) repository.TableSource {
	return &xlsxSource{path: path, sheet: sheet}
}

func (s *xlsxSource) Describe() string {
	if s.sheet == "" {
		return "xlsx:" + s.path
	}
	return fmt.Sprintf("xlsx:%s#%s", s.path, s.sheet)
}

func (s *xlsxSource) Read(ctx context.Context) (*domain.Table, error) {
	f, err := openFile(s.path, "Workbook")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadXLSX(ctx, f, s.sheet)
}

// ReadXLSX reads one sheet of a workbook. The first row is the header.
func ReadXLSX(ctx context.Context, r io.Reader, sheet string) (*domain.Table, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	if sheet == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return &domain.Table{}, nil
		}
		sheet = sheets[0]
	}
	if idx, err := wb.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, apperrors.ErrSourceNotFound.
			WithMessage("Sheet '%s' not found. Available: %v", sheet, wb.GetSheetList()).
			WithDetails(map[string]interface{}{"sheet": sheet})
	}

	rows, err := wb.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	defer rows.Close()

	table := &domain.Table{}
	first := true
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cols, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("read sheet %s row: %w", sheet, err)
		}
		if first {
			table.Columns = normalizeHeader(cols)
			first = false
			continue
		}
		table.Rows = append(table.Rows, cols)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	return table, nil
}
