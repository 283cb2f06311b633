package models

import "time"

// Producer is a rural producer owning one or more properties.
type Producer struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	FullName     string     `json:"fullName" gorm:"size:100;not null"`
	CpfCnpj      *string    `json:"cpfCnpj" gorm:"size:18"`
	Email        string     `json:"email" gorm:"size:100;unique;not null"`
	Phone        *string    `json:"phone" gorm:"size:15"`
	Password     string     `json:"-" gorm:"size:100"`
	RegisteredAt time.Time  `json:"registeredAt" gorm:"autoCreateTime"`
	Properties   []Property `json:"properties,omitempty" gorm:"foreignKey:ProducerID"`
}

type CreateProducerInput struct {
	FullName string  `json:"fullName" binding:"required,max=100"`
	CpfCnpj  *string `json:"cpfCnpj" binding:"omitempty,max=18"`
	Email    string  `json:"email" binding:"required,email,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,max=15"`
	Password string  `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
