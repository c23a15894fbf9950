package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/nghiaugust/ballot-processing-system/internal/ballot"
)

// LabelSource loads the ground-truth label tables of a dataset.
type LabelSource interface {
	Load(ctx context.Context, dataset string) (ballot.LabelSet, error)
}

type labelEntry struct {
	DongY      flagValue `json:"dong_y"`
	KhongDongY flagValue `json:"khong_dong_y"`
}

// DecodeLabels parses a label file: an object mapping ballot IDs to arrays of
// flag labels, position i labelling sequence number i+1.
func DecodeLabels(data []byte) (ballot.LabelSet, error) {
	var raw map[string][]labelEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode label file: %w", err)
	}
	set := make(ballot.LabelSet, len(raw))
	for id, entries := range raw {
		table := make(ballot.LabelTable, 0, len(entries))
		for _, e := range entries {
			table = append(table, ballot.Flags{Agree: bool(e.DongY), Disagree: bool(e.KhongDongY)})
		}
		set[id] = table
	}
	return set, nil
}

// FileLabelSource reads one label JSON file; the dataset name is ignored.
type FileLabelSource struct {
	Path string
}

func (s FileLabelSource) Load(_ context.Context, _ string) (ballot.LabelSet, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read label file: %w", err)
	}
	return DecodeLabels(data)
}
