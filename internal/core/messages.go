package core

import "math/rand/v2"

// Encouragements are shown after visualizing or converting a file.
var Encouragements = []string{
	"Great job! Every small step adds up. 🚀",
	"Mistakes are proof that you are trying! Keep learning. 💡",
	"Data cleaning is an art, and you are mastering it! 🎨",
	"Challenge yourself! Try exploring new insights. 📊",
	"Keep pushing! Growth happens outside the comfort zone. 🔥",
}

// Insights are the canned hints returned by the insight action.
var Insights = []string{
	"Consider normalizing numerical columns for better analysis.",
	"Removing outliers can improve your dataset quality.",
	"Try encoding categorical variables for machine learning models.",
	"Check if there are correlated features for better feature selection.",
	"Exploring different visualization methods can unlock hidden patterns.",
}

// CommunityWelcome greets a user who joins the community. Joining earns no XP.
const CommunityWelcome = "Welcome to the Growth Mindset Community! Keep learning and innovating! 🌍"

// Chooser picks an index in [0, n). n is always positive.
type Chooser func(n int) int

// RandomChooser picks uniformly at random.
func RandomChooser(n int) int { return rand.IntN(n) }

// FixedChooser always picks i, wrapped into range. Useful for tests and the CLI.
func FixedChooser(i int) Chooser {
	return func(n int) int { return i % n }
}

// pick returns an element of options chosen by c.
func (c Chooser) pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	if c == nil {
		c = RandomChooser
	}
	i := c(len(options))
	if i < 0 || i >= len(options) {
		i = 0
	}
	return options[i]
}
