package file

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/nearest-service/internal/domain"
	"github.com/nearest-service/internal/domain/repository"
	apperrors "github.com/nearest-service/internal/pkg/errors"
)

const utf8BOM = "\ufeff"

type csvSource struct {
	path string
}

// NewCSVSource reads a CSV file whose first row is the header.
func NewCSVSource(path string) repository.TableSource {
	return &csvSource{path: path}
}

func (s *csvSource) Describe() string {
	return "csv:" + s.path
}

func (s *csvSource) Read(ctx context.Context) (*domain.Table, error) {
	f, err := openFile(s.path, "CSV")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadCSV(ctx, f)
}

// ReadCSV parses comma separated values with a header row. Rows may have fewer
// or more fields than the header.
func ReadCSV(ctx context.Context, r io.Reader) (*domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &domain.Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	table := &domain.Table{Columns: normalizeHeader(header)}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(table.Rows)+2, err)
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

func normalizeHeader(header []string) []string {
	cols := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		cols[i] = strings.TrimSpace(h)
	}
	return cols
}

func openFile(path, kind string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.ErrSourceNotFound.
			WithMessage("%s not found at %s. Set DATASET_PATH or place the file next to the binary", kind, path).
			WithDetails(map[string]interface{}{"path": path}).
			Wrap(err)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
