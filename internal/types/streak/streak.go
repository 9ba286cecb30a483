package streak

// Streak counts consecutive challenge-starting actions. LongestStreak never
// drops below CurrentStreak.
type Streak struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}
