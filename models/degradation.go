package models

// DegradationLevel classifies the state of a property's soil.
// Properties reference a level; the level cannot be removed while referenced.
type DegradationLevel struct {
	ID                uint   `json:"id" gorm:"primaryKey"`
	Code              string `json:"code" gorm:"size:20;unique;not null"`
	Description       string `json:"description" gorm:"size:150;not null"`
	NumericLevel      int    `json:"numericLevel" gorm:"not null"`
	CorrectiveActions string `json:"correctiveActions" gorm:"size:500"`
}

type CreateDegradationLevelInput struct {
	Code              string `json:"code" binding:"required,max=20"`
	Description       string `json:"description" binding:"required,max=150"`
	NumericLevel      int    `json:"numericLevel" binding:"required,gte=1,lte=5"`
	CorrectiveActions string `json:"correctiveActions" binding:"omitempty,max=500"`
}
