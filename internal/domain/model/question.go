package model

// Letters a correct answer may reference.
const (
	AnswerA = "A"
	AnswerB = "B"
	AnswerC = "C"
	AnswerD = "D"
)

// Question is one multiple-choice row. Questions carry no identity of their
// own; duplicates are permitted.
type Question struct {
	Question  string  `json:"question"`
	Subject   string  `json:"subject"`
	Use       string  `json:"use"`
	Correct   string  `json:"correct"`
	ResponseA string  `json:"responseA"`
	ResponseB string  `json:"responseB"`
	ResponseC string  `json:"responseC"`
	ResponseD *string `json:"responseD"` // Some questions have only 3 options
	Remark    *string `json:"remark,omitempty"`
}

// ValidCorrect reports whether the correct-answer letter is one of A-D.
// Whether the referenced response text is non-empty is deliberately not
// checked, matching the behavior clients rely on.
func (q *Question) ValidCorrect() bool {
	switch q.Correct {
	case AnswerA, AnswerB, AnswerC, AnswerD:
		return true
	}
	return false
}
