package model

// Category groups learning content and quizzes.
type Category struct {
	CategoryCode string `json:"categoryCode"`
	CategoryName string `json:"categoryName"`
	IsActive     bool   `json:"isActive"`
}

func (c Category) RecordID() string { return c.CategoryCode }
func (c Category) Active() bool     { return c.IsActive }

func (c Category) DisplayField(name string) string {
	if name == "categoryName" {
		return c.CategoryName
	}
	return ""
}
