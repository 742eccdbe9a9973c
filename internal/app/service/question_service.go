package service

import (
	"context"
	"fmt"
	"math/rand"

	"quizzical/internal/common"
	"quizzical/internal/domain/model"
	"quizzical/internal/domain/repository"
)

// Counts a caller may request from Ask.
var allowedCounts = map[int]bool{5: true, 10: true, 20: true}

type QuestionService struct {
	questionRepo repository.QuestionRepository

	// uniformSample switches Ask from the historical truncate-then-shuffle
	// (a permutation of the first n matches in table order) to a uniform
	// random sample of all matches.
	uniformSample bool
}

func NewQuestionService(questionRepo repository.QuestionRepository, uniformSample bool) *QuestionService {
	return &QuestionService{questionRepo: questionRepo, uniformSample: uniformSample}
}

// Ask returns up to n questions matching the optional use/subject filters,
// in random order. n must be 5, 10 or 20; anything else fails before the
// store is read.
func (s *QuestionService) Ask(ctx context.Context, n int, use, subject string) ([]model.Question, error) {
	if !allowedCounts[n] {
		return nil, fmt.Errorf("number of questions generated should be 5, 10 or 20: %w", common.ErrBadRequest)
	}

	questions, err := s.questionRepo.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		if use != "" && q.Use != use {
			continue
		}
		if subject != "" && q.Subject != subject {
			continue
		}
		results = append(results, q)
	}

	if s.uniformSample {
		shuffle(results)
		if len(results) > n {
			results = results[:n]
		}
		return results, nil
	}

	if len(results) > n {
		results = results[:n]
	}
	shuffle(results)
	return results, nil
}

func shuffle(questions []model.Question) {
	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
}

// Add validates a question payload and appends it to the store. No
// uniqueness check is performed; duplicates are accepted.
func (s *QuestionService) Add(ctx context.Context, q *model.Question) error {
	if err := validateQuestion(q); err != nil {
		return err
	}
	return s.questionRepo.Append(ctx, q)
}

func validateQuestion(q *model.Question) error {
	required := []struct {
		name, value string
	}{
		{"question", q.Question},
		{"subject", q.Subject},
		{"use", q.Use},
		{"responseA", q.ResponseA},
		{"responseB", q.ResponseB},
		{"responseC", q.ResponseC},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("field %q is required: %w", f.name, common.ErrValidation)
		}
	}
	if !q.ValidCorrect() {
		return fmt.Errorf("correct must be one of A, B, C or D, got %q: %w", q.Correct, common.ErrValidation)
	}
	return nil
}

// Uses lists the distinct use tags present in the store, in first-appearance order.
func (s *QuestionService) Uses(ctx context.Context) ([]string, error) {
	questions, err := s.questionRepo.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return distinct(questions, func(q model.Question) string { return q.Use }), nil
}

// Subjects lists the distinct subject tags present in the store, in first-appearance order.
func (s *QuestionService) Subjects(ctx context.Context) ([]string, error) {
	questions, err := s.questionRepo.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return distinct(questions, func(q model.Question) string { return q.Subject }), nil
}

func distinct(questions []model.Question, key func(model.Question) string) []string {
	seen := make(map[string]struct{}, len(questions))
	values := make([]string, 0, len(questions))
	for _, q := range questions {
		k := key(q)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		values = append(values, k)
	}
	return values
}
