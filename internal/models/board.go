package models

// Board categories
const (
	BoardCategoryNormal    = "normal"
	BoardCategoryAnonymous = "anonymous"
)

// Board represents a posting board. Posts on a board with the anonymous
// category have their author identity masked in every derived display,
// notifications included.
type Board struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;size:50"`
	Category    string `json:"category" gorm:"size:20;default:normal"`
	Description string `json:"description"`
}
