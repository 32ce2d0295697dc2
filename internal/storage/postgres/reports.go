package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/checkup/internal/evaluator"
	"github.com/cory-johannsen/checkup/internal/report"
	"github.com/cory-johannsen/checkup/internal/save"
)

// ErrReportNotFound is returned when no summary matches a lookup.
var ErrReportNotFound = errors.New("report not found")

// SectionCount is the satisfied/total achievement tally of one section.
type SectionCount struct {
	Satisfied int `json:"satisfied"`
	Total     int `json:"total"`
}

// Summary is the persisted digest of one generated report.
type Summary struct {
	ID           uuid.UUID
	Farmer       string
	Farm         string
	Year         int
	Season       string
	Day          int
	GrandpaScore int
	Candles      int
	Counts       map[report.Category]SectionCount
	CreatedAt    time.Time
}

// SummaryFromReport digests full, generated from s, into a Summary.
//
// Precondition: full must have been generated from s.
// Postcondition: ID and CreatedAt are zero; Save assigns them.
func SummaryFromReport(s *save.Snapshot, full report.Full) Summary {
	d := s.Date()
	sum := Summary{
		Farmer: s.FarmerName(),
		Farm:   s.FarmName(),
		Year:   d.Year,
		Season: d.Season,
		Day:    d.Day,
		Counts: make(map[report.Category]SectionCount, len(full.Sections)),
	}
	for _, sec := range full.Sections {
		sat, total := sec.Counts()
		sum.Counts[sec.Category] = SectionCount{Satisfied: sat, Total: total}
	}
	if g, ok := full.Section(report.Grandpa); ok {
		sum.GrandpaScore = evaluator.GrandpaScore(g)
	}
	sum.Candles = evaluator.Candles(sum.GrandpaScore)
	return sum
}

// ReportRepository persists report summaries.
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a ReportRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

// Save inserts sum, assigning a new ID when it has none.
//
// Precondition: sum.Farmer and sum.Farm must be non-empty.
// Postcondition: Returns sum with ID and CreatedAt set.
func (r *ReportRepository) Save(ctx context.Context, sum Summary) (Summary, error) {
	if sum.Farmer == "" || sum.Farm == "" {
		return Summary{}, fmt.Errorf("saving report: farmer and farm must be non-empty")
	}
	if sum.ID == uuid.Nil {
		sum.ID = uuid.New()
	}
	if sum.Counts == nil {
		sum.Counts = map[report.Category]SectionCount{}
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO report_summaries
			(id, farmer, farm, year, season, day, grandpa_score, candles, counts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`,
		sum.ID, sum.Farmer, sum.Farm, sum.Year, sum.Season, sum.Day,
		sum.GrandpaScore, sum.Candles, sum.Counts,
	).Scan(&sum.CreatedAt)
	if err != nil {
		return Summary{}, fmt.Errorf("inserting report summary: %w", err)
	}
	return sum, nil
}

// ListByFarmer returns every summary for farmer on farm, newest first.
//
// Postcondition: Returns a non-nil slice, empty when nothing is stored.
func (r *ReportRepository) ListByFarmer(ctx context.Context, farmer, farm string) ([]Summary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, farmer, farm, year, season, day, grandpa_score, candles, counts, created_at
		FROM report_summaries
		WHERE farmer = $1 AND farm = $2
		ORDER BY created_at DESC, id`,
		farmer, farm,
	)
	if err != nil {
		return nil, fmt.Errorf("listing report summaries: %w", err)
	}
	defer rows.Close()

	out := make([]Summary, 0)
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning report summary: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Latest returns the newest summary for farmer on farm.
//
// Postcondition: Returns ErrReportNotFound when nothing is stored.
func (r *ReportRepository) Latest(ctx context.Context, farmer, farm string) (Summary, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, farmer, farm, year, season, day, grandpa_score, candles, counts, created_at
		FROM report_summaries
		WHERE farmer = $1 AND farm = $2
		ORDER BY created_at DESC, id
		LIMIT 1`,
		farmer, farm,
	)
	sum, err := scanSummary(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Summary{}, ErrReportNotFound
		}
		return Summary{}, fmt.Errorf("querying latest report summary: %w", err)
	}
	return sum, nil
}

func scanSummary(row pgx.Row) (Summary, error) {
	var sum Summary
	err := row.Scan(
		&sum.ID, &sum.Farmer, &sum.Farm, &sum.Year, &sum.Season, &sum.Day,
		&sum.GrandpaScore, &sum.Candles, &sum.Counts, &sum.CreatedAt,
	)
	return sum, err
}
