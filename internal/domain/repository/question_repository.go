package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"quizzical/internal/common"
	"quizzical/internal/domain/model"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// QuestionRepository accesses the question table. ReadAll loads the whole
// table on every call; Append adds one row. Implementations must keep rows
// in stable append order, which the query engine's truncation depends on.
type QuestionRepository interface {
	ReadAll(ctx context.Context) ([]model.Question, error)
	Append(ctx context.Context, q *model.Question) error
}

var questionColumns = []string{
	"question", "subject", "use", "correct",
	"responseA", "responseB", "responseC", "responseD", "remark",
}

type excelQuestionRepository struct {
	path string
	mu   sync.Mutex // guards the read-modify-write cycle against concurrent writers
}

func NewExcelQuestionRepository(path string) QuestionRepository {
	return &excelQuestionRepository{path: path}
}

func (r *excelQuestionRepository) ReadAll(ctx context.Context) ([]model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("excelQuestionRepository.ReadAll: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetList()[0]
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("excelQuestionRepository.ReadAll: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("question sheet has no header row: %w", common.ErrStoreIntegrity)
	}

	col, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	questions := make([]model.Question, 0, len(rows)-1)
	for _, row := range rows[1:] {
		questions = append(questions, model.Question{
			Question:  cell(row, col["question"]),
			Subject:   cell(row, col["subject"]),
			Use:       cell(row, col["use"]),
			Correct:   cell(row, col["correct"]),
			ResponseA: cell(row, col["responseA"]),
			ResponseB: cell(row, col["responseB"]),
			ResponseC: cell(row, col["responseC"]),
			ResponseD: optionalCell(row, col["responseD"]),
			Remark:    optionalCell(row, col["remark"]),
		})
	}
	return questions, nil
}

func (r *excelQuestionRepository) Append(ctx context.Context, q *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return fmt.Errorf("excelQuestionRepository.Append: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetList()[0]
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("excelQuestionRepository.Append: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("question sheet has no header row: %w", common.ErrStoreIntegrity)
	}
	if _, err := headerIndex(rows[0]); err != nil {
		return err
	}

	cellName, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return fmt.Errorf("excelQuestionRepository.Append: %w", err)
	}
	row := []interface{}{
		q.Question, q.Subject, q.Use, q.Correct,
		q.ResponseA, q.ResponseB, q.ResponseC,
		deref(q.ResponseD), deref(q.Remark),
	}
	if err := f.SetSheetRow(sheet, cellName, &row); err != nil {
		return fmt.Errorf("excelQuestionRepository.Append: %w", err)
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("excelQuestionRepository.Append: %w", err)
	}
	return nil
}

func headerIndex(header []string) (map[string]int, error) {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range questionColumns {
		if name == "responseD" || name == "remark" {
			continue // optional columns
		}
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("question sheet is missing column %q: %w", name, common.ErrStoreIntegrity)
		}
	}
	return col, nil
}

// cell tolerates short rows: GetRows trims trailing empty cells.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func optionalCell(row []string, i int) *string {
	s := cell(row, i)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type pgQuestionRepository struct {
	db *sql.DB
}

func NewPgQuestionRepository(db *sql.DB) QuestionRepository {
	return &pgQuestionRepository{db: db}
}

func (r *pgQuestionRepository) ReadAll(ctx context.Context) ([]model.Question, error) {
	query := `SELECT question, subject, use, correct,
	                 response_a, response_b, response_c, response_d, remark
	          FROM questions ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.ReadAll: %w", err)
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		var responseD, remark sql.NullString
		if err := rows.Scan(&q.Question, &q.Subject, &q.Use, &q.Correct,
			&q.ResponseA, &q.ResponseB, &q.ResponseC, &responseD, &remark); err != nil {
			return nil, fmt.Errorf("pgQuestionRepository.ReadAll: %w", err)
		}
		if responseD.Valid {
			q.ResponseD = &responseD.String
		}
		if remark.Valid {
			q.Remark = &remark.String
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.ReadAll: %w", err)
	}
	return questions, nil
}

func (r *pgQuestionRepository) Append(ctx context.Context, q *model.Question) error {
	query := `INSERT INTO questions (id, question, subject, use, correct,
	                                 response_a, response_b, response_c, response_d, remark)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query, uuid.NewString(),
		q.Question, q.Subject, q.Use, q.Correct,
		q.ResponseA, q.ResponseB, q.ResponseC, nullable(q.ResponseD), nullable(q.Remark))
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.Append: %w", err)
	}
	return nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
