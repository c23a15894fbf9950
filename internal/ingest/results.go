package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nghiaugust/ballot-processing-system/internal/ballot"
	"github.com/nghiaugust/ballot-processing-system/internal/ingest/collector"
)

const ResultSuffix = "_result.json"

type resultEntry struct {
	Stt        seqValue  `json:"stt"`
	DongY      flagValue `json:"dong_y"`
	KhongDongY flagValue `json:"khong_dong_y"`
	ChiTiet    *struct {
		HoTenOCR *string `json:"ho_ten_ocr"`
	} `json:"chi_tiet"`
}

func (e resultEntry) line() ballot.Line {
	l := ballot.Line{
		Seq:   int(e.Stt),
		Flags: ballot.Flags{Agree: bool(e.DongY), Disagree: bool(e.KhongDongY)},
	}
	if e.ChiTiet != nil && e.ChiTiet.HoTenOCR != nil {
		l.Name = *e.ChiTiet.HoTenOCR
	}
	return l
}

// BallotID strips the result suffix from a result file name.
func BallotID(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ResultSuffix)
}

// DecodeResult parses the content of one result file.
func DecodeResult(id string, data []byte) (ballot.Ballot, error) {
	var entries []resultEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return ballot.Ballot{}, fmt.Errorf("decode result file: %w", err)
	}
	b := ballot.Ballot{ID: id, Lines: make([]ballot.Line, 0, len(entries))}
	for _, e := range entries {
		b.Lines = append(b.Lines, e.line())
	}
	return b, nil
}

// ResultCollector streams the ballots of every result file in a directory,
// in file name order.
type ResultCollector struct {
	dir string
}

func NewResultCollector(dir string) *ResultCollector {
	return &ResultCollector{dir: dir}
}

// Files lists the result files of the directory, sorted.
func (c *ResultCollector) Files() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(c.dir, "*"+ResultSuffix))
	if err != nil {
		return nil, fmt.Errorf("list result files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

func (c *ResultCollector) Collect(ctx context.Context) (<-chan collector.Result[ballot.Ballot], error) {
	if _, err := os.Stat(c.dir); err != nil {
		return nil, fmt.Errorf("open results directory: %w", err)
	}
	files, err := c.Files()
	if err != nil {
		return nil, err
	}

	out := make(chan collector.Result[ballot.Ballot])
	go func() {
		defer close(out)
		for _, path := range files {
			res := collector.Result[ballot.Ballot]{Source: path}
			data, err := os.ReadFile(path)
			if err != nil {
				res.Err = fmt.Errorf("read result file: %w", err)
			} else {
				res.Result, res.Err = DecodeResult(BallotID(path), data)
			}

			select {
			case out <- res:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
