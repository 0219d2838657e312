package domain

type GradeOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Grades lists school classes followed by university courses, in display order.
var Grades = []GradeOption{
	{Value: "1", Label: "1 класс"},
	{Value: "2", Label: "2 класс"},
	{Value: "3", Label: "3 класс"},
	{Value: "4", Label: "4 класс"},
	{Value: "5", Label: "5 класс"},
	{Value: "6", Label: "6 класс"},
	{Value: "7", Label: "7 класс"},
	{Value: "8", Label: "8 класс"},
	{Value: "9", Label: "9 класс"},
	{Value: "10", Label: "10 класс"},
	{Value: "11", Label: "11 класс"},
	{Value: "1_course", Label: "1 курс"},
	{Value: "2_course", Label: "2 курс"},
	{Value: "3_course", Label: "3 курс"},
	{Value: "4_course", Label: "4 курс"},
}

func IsKnownGrade(value string) bool {
	for _, g := range Grades {
		if g.Value == value {
			return true
		}
	}
	return false
}

// Values a fresh draft starts with.
const (
	DefaultDraftName     = "Аноним"
	DefaultDraftGrade    = "1"
	DefaultDraftMinPrice = 0
	DefaultDraftMaxPrice = 1000
)
