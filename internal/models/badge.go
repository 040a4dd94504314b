package models

// Badge describes an achievement in the fixed catalog. The catalog is code,
// not data: badge identifiers are stored on the ledger row, metadata lives
// here so clients render from a single source.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Badge identifiers. FirstFive, PointMaster and WeekStreak are granted by
// completion events; QuizExpert and CalculatorUser are listed for display
// but currently have no grant path.
const (
	BadgeFirstFive      = "first_five"
	BadgePointMaster    = "point_master"
	BadgeWeekStreak     = "week_streak"
	BadgeQuizExpert     = "quiz_expert"
	BadgeCalculatorUser = "calculator_user"
)

// BadgeCatalog is the fixed set of achievements, in display order.
var BadgeCatalog = []Badge{
	{ID: BadgeFirstFive, Name: "Getting Started", Description: "Complete 5 learning units", Icon: "trophy"},
	{ID: BadgePointMaster, Name: "Point Master", Description: "Earn 1000 points", Icon: "star"},
	{ID: BadgeWeekStreak, Name: "On a Roll", Description: "Reach a 7 completion streak", Icon: "flame"},
	{ID: BadgeQuizExpert, Name: "Quiz Expert", Description: "Ace every course quiz", Icon: "brain"},
	{ID: BadgeCalculatorUser, Name: "Number Cruncher", Description: "Use every calculator", Icon: "calculator"},
}

// BadgeByID looks up a catalog entry; ok is false for unknown identifiers.
func BadgeByID(id string) (Badge, bool) {
	for _, b := range BadgeCatalog {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}
