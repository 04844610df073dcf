package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Options controls CSV loading behavior.
type Options struct {
	// MaxRows limits rows loaded; 0 means unlimited.
	MaxRows int
	// Delimiter for CSV. If 0, sniffed from the file extension.
	Delimiter rune
	// Numeric parsing locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune // optional; if 0, strip common separators (',' '.' space)
}

// DefaultOptions returns reasonable defaults for dataset loading.
func DefaultOptions() Options {
	return Options{MaxRows: 100000}
}

// ReadCSV loads a CSV or TSV file into a Dataset. The first record is the
// header; short records are padded with missing cells. Column kinds are
// inferred from the predominant cell type.
func ReadCSV(path string, opt Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.ReuseRecord = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Dataset{Name: filepath.Base(path)}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	ncol := len(header)
	if ncol == 0 {
		return &Dataset{Name: filepath.Base(path)}, nil
	}

	cols := make([]Column, ncol)
	numCnt := make([]int, ncol)
	txtCnt := make([]int, ncol)
	for i := range header {
		cols[i].Name = strings.TrimSpace(header[i])
	}

	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	rows := 0
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", rows+1, err)
		}
		if rows >= maxRows {
			break
		}
		rows++
		for j := 0; j < ncol; j++ {
			var v string
			if j < len(rec) {
				v = strings.TrimSpace(rec[j])
			}
			if v == "" {
				cols[j].Cells = append(cols[j].Cells, Missing)
				continue
			}
			if x, ok := parseNumeric(v, opt); ok {
				numCnt[j]++
				cols[j].Cells = append(cols[j].Cells, Cell{Raw: v, Num: x, Numeric: true})
				continue
			}
			txtCnt[j]++
			cols[j].Cells = append(cols[j].Cells, Text(v))
		}
	}

	for j := range cols {
		switch {
		case numCnt[j] > 0 && numCnt[j] >= txtCnt[j]:
			cols[j].Kind = KindNumeric
		case txtCnt[j] > 0:
			cols[j].Kind = KindText
		default:
			cols[j].Kind = KindEmpty
		}
	}
	return &Dataset{Name: filepath.Base(path), Columns: cols}, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// parseNumeric parses a cell as a float, tolerating locale-specific decimal
// and thousands separators.
func parseNumeric(s string, opt Options) (float64, bool) {
	raw := strings.TrimSpace(strings.ReplaceAll(s, "\u00A0", " "))
	dec := opt.DecimalSeparator
	thou := opt.ThousandsSeparator
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		switch {
		case cpos >= 0 && dpos >= 0 && cpos > dpos:
			dec, thou = ',', '.'
		case cpos >= 0 && dpos >= 0:
			dec, thou = '.', ','
		case cpos >= 0:
			dec = ','
		default:
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
