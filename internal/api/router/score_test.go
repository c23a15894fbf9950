package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nghiaugust/ballot-processing-system/internal/apperr"
	"github.com/nghiaugust/ballot-processing-system/internal/ballot"
	"github.com/nghiaugust/ballot-processing-system/internal/report"
)

type stubLabels struct {
	set ballot.LabelSet
	err error
}

func (s stubLabels) Load(context.Context, string) (ballot.LabelSet, error) {
	return s.set, s.err
}

func newTestEcho(opts ...ScoreRouterOption) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	NewScoreRouter(e, opts...).Bind()
	return e
}

func post(t *testing.T, e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestScoreText(t *testing.T) {
	e := newTestEcho()

	t.Run("one substitution", func(t *testing.T) {
		rec := post(t, e, "/v1/text/score", `{"reference": "OLIVER JOHNSON", "hypothesis": "oliver  johnsom"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp TextScoreResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Char.Substitutions)
		assert.Equal(t, 14, resp.Char.RefLength)
		assert.InDelta(t, 1.0/14.0, resp.CER, 1e-12)
		assert.InDelta(t, 0.5, resp.WER, 1e-12)
		assert.False(t, resp.ExactMatch)
		assert.Equal(t, strings.Repeat("=", 13)+"S", resp.CharOps)
		assert.Equal(t, "=S", resp.WordOps)
	})

	t.Run("null reference", func(t *testing.T) {
		rec := post(t, e, "/v1/text/score", `{"reference": null, "hypothesis": "A"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp TextScoreResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Char.Insertions)
		assert.Zero(t, resp.Char.RefLength)
		assert.Zero(t, resp.CER)
		assert.Equal(t, "I", resp.CharOps)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := post(t, e, "/v1/text/score", `{"reference": `)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

const evaluateBody = `{
  "roster": ["OLIVER JOHNSON", "SOPHIA MILLER"],
  "ballots": [
    {"id": "b1",
     "lines": [
       {"stt": 1, "name": "OLIVER JOHNSON", "agree": true},
       {"stt": 2, "name": "SOPHIA MILER", "disagree": true}
     ],
     "labels": [{"agree": true}, {"disagree": true}]},
    {"id": "b2", "lines": [{"stt": 1, "name": null}]}
  ]
}`

func TestEvaluate(t *testing.T) {
	e := newTestEcho()
	rec := post(t, e, "/v1/ballots/evaluate", evaluateBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var rpt report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rpt))
	require.Len(t, rpt.Datasets, 1)

	d := rpt.Datasets[0]
	assert.Equal(t, RequestDataset, d.Name)
	assert.Equal(t, 2, d.Stats.TotalBallots)
	assert.Equal(t, 1, d.Stats.ScoredBallots)
	assert.Equal(t, []string{"b2"}, d.Stats.SkippedBallots)

	require.NotNil(t, d.Text)
	assert.Equal(t, 3, d.Text.Sequences)
	require.NotNil(t, d.Lines)
	assert.Equal(t, 2, d.Lines.TotalLines)
	assert.Equal(t, 1, d.Lines.CorrectLines)
	require.NotNil(t, d.Flags)
	assert.Equal(t, 2, d.Flags.Pooled.TP)
	assert.Nil(t, d.Flags.Agree)
}

func TestEvaluate_ModeAndSeparateFlags(t *testing.T) {
	e := newTestEcho()
	body := strings.Replace(evaluateBody, `"roster"`, `"mode": "flags", "separate_flags": true, "roster"`, 1)
	rec := post(t, e, "/v1/ballots/evaluate", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var rpt report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rpt))
	d := rpt.Datasets[0]
	assert.Nil(t, d.Text)
	assert.Nil(t, d.Lines)
	require.NotNil(t, d.Flags)
	require.NotNil(t, d.Flags.Agree)
	assert.Equal(t, 1, d.Flags.Agree.TP)
}

func TestEvaluate_DefaultRoster(t *testing.T) {
	body := `{"ballots": [{"id": "b1", "lines": [{"stt": 1, "name": "A", "agree": true}], "labels": [{"agree": true}]}]}`

	t.Run("configured", func(t *testing.T) {
		e := newTestEcho(WithRoster(ballot.NewRoster([]string{"A"})))
		rec := post(t, e, "/v1/ballots/evaluate", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var rpt report.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rpt))
		assert.InDelta(t, 1.0, rpt.Datasets[0].Lines.LineAccuracy, 1e-12)
	})

	t.Run("missing", func(t *testing.T) {
		e := newTestEcho()
		rec := post(t, e, "/v1/ballots/evaluate", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "no default roster")
	})
}

func TestEvaluate_StoredLabels(t *testing.T) {
	body := `{"roster": ["A"], "dataset": "Data1", "ballots": [{"id": "b1", "lines": [{"stt": 1, "name": "A", "agree": true}]}]}`

	t.Run("from store", func(t *testing.T) {
		e := newTestEcho(WithLabelSource(stubLabels{set: ballot.LabelSet{"b1": {{Agree: true}}}}))
		rec := post(t, e, "/v1/ballots/evaluate", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var rpt report.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rpt))
		assert.Equal(t, 1, rpt.Datasets[0].Stats.ScoredBallots)
	})

	t.Run("empty inline labels fall back to store", func(t *testing.T) {
		withEmpty := strings.Replace(body, `"agree": true}]}`, `"agree": true}], "labels": []}`, 1)
		require.Contains(t, withEmpty, `"labels": []`)
		e := newTestEcho(WithLabelSource(stubLabels{set: ballot.LabelSet{"b1": {{Agree: true}}}}))
		rec := post(t, e, "/v1/ballots/evaluate", withEmpty)
		require.Equal(t, http.StatusOK, rec.Code)
		var rpt report.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rpt))
		assert.Equal(t, 1, rpt.Datasets[0].Stats.ScoredBallots)
		assert.Empty(t, rpt.Datasets[0].Stats.SkippedBallots)
	})

	t.Run("no store", func(t *testing.T) {
		rec := post(t, newTestEcho(), "/v1/ballots/evaluate", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		e := newTestEcho(WithLabelSource(stubLabels{err: errors.New("connection refused")}))
		rec := post(t, e, "/v1/ballots/evaluate", body)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestEvaluate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "no ballots", body: `{"roster": ["A"], "ballots": []}`, wantErr: "no ballots"},
		{name: "missing id", body: `{"roster": ["A"], "ballots": [{"lines": []}]}`, wantErr: "index 0 has no id"},
		{name: "duplicate id", body: `{"roster": ["A"], "ballots": [{"id": "x"}, {"id": "x"}]}`, wantErr: "appears twice"},
		{name: "bad mode", body: `{"roster": ["A"], "mode": "cer", "ballots": [{"id": "x"}]}`, wantErr: "unknown report mode"},
		{name: "bad json", body: `{"ballots": [`, wantErr: "invalid request body"},
	}

	e := newTestEcho()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, e, "/v1/ballots/evaluate", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantErr)
		})
	}
}
