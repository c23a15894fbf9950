// Package pg reads ground-truth ballot labels from Postgres. The store is read
// only; nothing computed by a run is written back.
package pg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/nghiaugust/ballot-processing-system/internal/ballot"
)

const selectLabelsSQL = `
	SELECT ballot_id, seq, agree, disagree
	FROM ballot_labels
	WHERE dataset = $1
	ORDER BY ballot_id, seq
`

type labelRow struct {
	BallotID string `db:"ballot_id"`
	Seq      int    `db:"seq"`
	Agree    bool   `db:"agree"`
	Disagree bool   `db:"disagree"`
}

// Source implements ingest.LabelSource over the ballot_labels table.
type Source struct {
	pool *ConnectionPool
}

func NewSource(pool *ConnectionPool) *Source {
	return &Source{pool: pool}
}

func (s *Source) Load(ctx context.Context, dataset string) (ballot.LabelSet, error) {
	rows, err := s.pool.GetConn().Query(ctx, selectLabelsSQL, dataset)
	if err != nil {
		return nil, fmt.Errorf("query labels: %w", err)
	}
	labelRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[labelRow])
	if err != nil {
		return nil, fmt.Errorf("scan labels: %w", err)
	}

	set := buildLabelSet(labelRows)
	slog.Info("Labels loaded from postgres", "dataset", dataset, "rows", len(labelRows), "ballots", len(set))
	return set, nil
}

// buildLabelSet turns rows ordered by (ballot_id, seq) into label tables. A
// table stops at its first missing sequence number, so later lines of that
// ballot fall outside the table.
func buildLabelSet(rows []labelRow) ballot.LabelSet {
	set := make(ballot.LabelSet)
	truncated := make(map[string]bool)
	for _, r := range rows {
		table := set[r.BallotID]
		if table == nil {
			table = ballot.LabelTable{}
		}
		if truncated[r.BallotID] || r.Seq != len(table)+1 {
			if r.Seq > len(table)+1 {
				truncated[r.BallotID] = true
			}
			set[r.BallotID] = table
			continue
		}
		set[r.BallotID] = append(table, ballot.Flags{Agree: r.Agree, Disagree: r.Disagree})
	}
	return set
}
