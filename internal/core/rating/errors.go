package rating

// ErrEmptyInput is returned when Fit is called with no matches.
type ErrEmptyInput struct{}

func (ErrEmptyInput) Error() string { return "rating: empty input: no matches supplied" }

// ErrDegenerate is returned when fewer than 2 distinct teams appear in
// the training set.
type ErrDegenerate struct{ TeamCount int }

func (e ErrDegenerate) Error() string {
	return "rating: degenerate input: fewer than 2 distinct teams"
}
