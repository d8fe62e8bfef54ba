package net

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Dataset represents a collection of samples and labels.
type Dataset struct {
	Samples [][]float64
	Labels  [][]float64
}

// LoadCSV loads data from a CSV file.
// labelCols specifies the indices of columns to be used as labels.
// All other columns are used as features.
// hasHeader skips the first line if true.
func LoadCSV(filename string, labelCols []int, hasHeader bool) (*Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	startRow := 0
	if hasHeader {
		startRow = 1
	}
	if len(records) <= startRow {
		return nil, fmt.Errorf("csv file has no data rows")
	}

	numCols := len(records[0])
	isLabelCol := make(map[int]bool)
	for _, col := range labelCols {
		if col < 0 || col >= numCols {
			return nil, fmt.Errorf("label column %d out of range for %d columns", col, numCols)
		}
		isLabelCol[col] = true
	}

	numSamples := len(records) - startRow
	samples := make([][]float64, numSamples)
	labels := make([][]float64, numSamples)

	for i := startRow; i < len(records); i++ {
		record := records[i]
		sampleRow := make([]float64, 0, numCols-len(isLabelCol))
		labelValues := make(map[int]float64, len(isLabelCol))

		for j, valStr := range record {
			val, err := strconv.ParseFloat(valStr, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse value at row %d, col %d: %w", i, j, err)
			}
			if isLabelCol[j] {
				labelValues[j] = val
			} else {
				sampleRow = append(sampleRow, val)
			}
		}

		// Labels keep the order given in labelCols.
		labelRow := make([]float64, 0, len(labelCols))
		for _, col := range labelCols {
			labelRow = append(labelRow, labelValues[col])
		}

		samples[i-startRow] = sampleRow
		labels[i-startRow] = labelRow
	}

	return &Dataset{
		Samples: samples,
		Labels:  labels,
	}, nil
}

// Normalize performs min-max normalization on the samples.
func (d *Dataset) Normalize() {
	if len(d.Samples) == 0 {
		return
	}

	numFeatures := len(d.Samples[0])
	lo := make([]float64, numFeatures)
	hi := make([]float64, numFeatures)
	copy(lo, d.Samples[0])
	copy(hi, d.Samples[0])

	for _, sample := range d.Samples {
		for i, val := range sample {
			lo[i] = min(lo[i], val)
			hi[i] = max(hi[i], val)
		}
	}

	for _, sample := range d.Samples {
		for i := range sample {
			if diff := hi[i] - lo[i]; diff != 0 {
				sample[i] = (sample[i] - lo[i]) / diff
			} else {
				sample[i] = 0
			}
		}
	}
}
