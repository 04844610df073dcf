package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestReadCSVInfersKinds(t *testing.T) {
	path := writeTempFile(t, "sales.csv",
		"region,revenue,notes\n"+
			"north,1000,ok\n"+
			"south,2500.5,\n"+
			"east,900,late\n")
	ds, err := ReadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if ds.Name != "sales.csv" {
		t.Fatalf("unexpected dataset name %q", ds.Name)
	}
	if len(ds.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(ds.Columns))
	}
	if ds.Columns[0].Kind != KindText {
		t.Fatalf("region kind = %v, want text", ds.Columns[0].Kind)
	}
	if ds.Columns[1].Kind != KindNumeric {
		t.Fatalf("revenue kind = %v, want numeric", ds.Columns[1].Kind)
	}
	if v, ok := ds.Columns[1].Float(1); !ok || v != 2500.5 {
		t.Fatalf("revenue[1] = %v, %v", v, ok)
	}
	if _, ok := ds.Columns[2].Float(1); ok {
		t.Fatalf("empty cell should be missing")
	}
}

func TestReadCSVPadsShortRecords(t *testing.T) {
	path := writeTempFile(t, "ragged.csv",
		"a,b,c\n"+
			"1,2,3\n"+
			"4\n")
	ds, err := ReadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if ds.Rows() != 2 {
		t.Fatalf("Rows() = %d, want 2", ds.Rows())
	}
	for _, name := range []string{"b", "c"} {
		col, _ := ds.Column(name)
		if col.Cells[1].Numeric || col.Cells[1].Raw != "" {
			t.Fatalf("column %q row 1 should be missing, got %+v", name, col.Cells[1])
		}
	}
}

func TestReadCSVMaxRows(t *testing.T) {
	path := writeTempFile(t, "big.csv",
		"v\n1\n2\n3\n4\n5\n")
	ds, err := ReadCSV(path, Options{MaxRows: 3})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if ds.Rows() != 3 {
		t.Fatalf("Rows() = %d, want 3", ds.Rows())
	}
}

func TestReadCSVSniffsTSV(t *testing.T) {
	path := writeTempFile(t, "data.tsv",
		"a\tb\n1\t2\n")
	ds, err := ReadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(ds.Columns) != 2 || ds.Columns[0].Name != "a" || ds.Columns[1].Name != "b" {
		t.Fatalf("tab delimiter not sniffed: %+v", ds.Columns)
	}
}

func TestReadCSVExplicitDelimiter(t *testing.T) {
	path := writeTempFile(t, "semi.csv", "a;b\n1;2\n")
	ds, err := ReadCSV(path, Options{Delimiter: ';'})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(ds.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(ds.Columns))
	}
	if v, ok := ds.Columns[1].Float(0); !ok || v != 2 {
		t.Fatalf("b[0] = %v, %v", v, ok)
	}
}

func TestReadCSVEmptyFile(t *testing.T) {
	path := writeTempFile(t, "empty.csv", "")
	ds, err := ReadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(ds.Columns) != 0 || ds.Rows() != 0 {
		t.Fatalf("expected empty dataset, got %+v", ds)
	}
}

func TestReadCSVMissingFile(t *testing.T) {
	if _, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"), DefaultOptions()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseNumericLocales(t *testing.T) {
	cases := []struct {
		in   string
		opt  Options
		want float64
		ok   bool
	}{
		{"1234.56", Options{}, 1234.56, true},
		{"1,234.56", Options{}, 1234.56, true},
		{"1.234,56", Options{}, 1234.56, true},
		{"-42", Options{}, -42, true},
		{"1 234.5", Options{}, 1234.5, true},
		{"12,5", Options{DecimalSeparator: ','}, 12.5, true},
		{"1.234.567", Options{DecimalSeparator: ',', ThousandsSeparator: '.'}, 1234567, true},
		{"n/a", Options{}, 0, false},
		{"", Options{}, 0, false},
	}
	for _, tc := range cases {
		got, ok := parseNumeric(tc.in, tc.opt)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("parseNumeric(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
