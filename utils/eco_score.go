package utils

import "math"

// CalculateEcoScore is the engagement score shown on the dashboard. Streak
// dominates so that starting challenges regularly beats hoarding points.
func CalculateEcoScore(currentStreak, completedChallenges, points int) float64 {
	streakScore := math.Pow(float64(currentStreak), 2) * 0.3
	challengeScore := float64(completedChallenges) * 1.0
	pointsScore := float64(points) * 0.05

	return streakScore + challengeScore + pointsScore
}
