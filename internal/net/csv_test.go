package net

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeCSV(t *testing.T, rows [][]string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "data.csv")
	file, err := os.Create(filename)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	writer := csv.NewWriter(file)
	writer.WriteAll(rows)
	file.Close()
	return filename
}

func TestCSVLoader(t *testing.T) {
	filename := writeCSV(t, [][]string{
		{"f1", "f2", "l1", "f3", "l2"},
		{"1.0", "2.0", "0.0", "3.0", "1.0"},
		{"4.0", "5.0", "1.0", "6.0", "0.0"},
	})

	dataset, err := LoadCSV(filename, []int{4, 2}, true)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}

	expectedSamples := [][]float64{
		{1.0, 2.0, 3.0},
		{4.0, 5.0, 6.0},
	}
	if !reflect.DeepEqual(dataset.Samples, expectedSamples) {
		t.Errorf("expected samples %v, got %v", expectedSamples, dataset.Samples)
	}

	expectedLabels := [][]float64{
		{1.0, 0.0},
		{0.0, 1.0},
	}
	if !reflect.DeepEqual(dataset.Labels, expectedLabels) {
		t.Errorf("expected labels %v, got %v", expectedLabels, dataset.Labels)
	}
}

func TestCSVLoaderErrors(t *testing.T) {
	if _, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv"), nil, false); err == nil {
		t.Error("expected error for a missing file")
	}

	headerOnly := writeCSV(t, [][]string{{"a", "b"}})
	if _, err := LoadCSV(headerOnly, nil, true); err == nil {
		t.Error("expected error for a file without data rows")
	}

	bad := writeCSV(t, [][]string{{"1", "x"}})
	if _, err := LoadCSV(bad, nil, false); err == nil {
		t.Error("expected error for a non-numeric value")
	}

	ok := writeCSV(t, [][]string{{"1", "2"}})
	if _, err := LoadCSV(ok, []int{5}, false); err == nil {
		t.Error("expected error for an out-of-range label column")
	}
}

func TestDatasetNormalize(t *testing.T) {
	d := &Dataset{Samples: [][]float64{{0, 5, 2}, {10, 5, -2}, {5, 5, 0}}}
	d.Normalize()

	want := [][]float64{{0, 0, 1}, {1, 0, 0}, {0.5, 0, 0.5}}
	if !reflect.DeepEqual(d.Samples, want) {
		t.Errorf("Normalize() = %v, want %v", d.Samples, want)
	}
}
