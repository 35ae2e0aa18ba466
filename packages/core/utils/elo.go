package utils

import "math"

const (
	// KFactor controls rating volatility and is fixed for all matches.
	KFactor = 32.0

	// DefaultEloRating is the starting rating for a (player, sport) pair
	// that has never played.
	DefaultEloRating = 1000.0
)

// Numeric match results as seen from one side.
const (
	ResultWin  = 1.0
	ResultDraw = 0.5
	ResultLoss = 0.0
)

// Rate returns the updated rating for one side using the standard logistic
// ELO formula. result is 1 for a win, 0.5 for a draw and 0 for a loss.
// Ratings are kept as unrounded floats so a draw between equal opponents
// moves nobody.
func Rate(ratingSelf, ratingOpponent, result float64) float64 {
	expected := 1.0 / (1.0 + math.Pow(10, (ratingOpponent-ratingSelf)/400))
	return ratingSelf + KFactor*(result-expected)
}

// UpdateElo rates both sides of a match at once given side A's result.
func UpdateElo(ratingA, ratingB, resultA float64) (newA, newB float64) {
	newA = Rate(ratingA, ratingB, resultA)
	newB = Rate(ratingB, ratingA, 1-resultA)
	return newA, newB
}

// TeamAverageElo is a side's effective rating: the mean over its members,
// so a solo team is simply its single member's rating.
func TeamAverageElo(ratings []float64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range ratings {
		sum += r
	}
	return sum / float64(len(ratings))
}

// ResultFromScores maps a score comparison to the numeric result for the
// side that scored teamScore.
func ResultFromScores(teamScore, oppScore int) float64 {
	switch {
	case teamScore > oppScore:
		return ResultWin
	case teamScore < oppScore:
		return ResultLoss
	default:
		return ResultDraw
	}
}
