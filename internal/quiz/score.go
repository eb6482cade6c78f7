package quiz

// Score returns the percentage of questions whose answer matches the
// correct letter. Missing or unknown answers count as wrong. An empty
// question list scores 0 with ErrNoQuestions.
func Score(questions []QuestionRecord, answers map[int]Letter) (float64, error) {
	if len(questions) == 0 {
		return 0, ErrNoQuestions
	}
	return 100 * float64(CountCorrect(questions, answers)) / float64(len(questions)), nil
}

// CountCorrect returns how many answers match their question's key.
func CountCorrect(questions []QuestionRecord, answers map[int]Letter) int {
	correct := 0
	for i, q := range questions {
		if a, ok := answers[i]; ok && a == q.Correct {
			correct++
		}
	}
	return correct
}
