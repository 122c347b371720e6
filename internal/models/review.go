package models

import "time"

type Review struct {
	ID      string  `json:"_id" gorm:"primaryKey;size:36"`
	Name    string  `json:"name" gorm:"size:100"`
	Photo   *string `json:"photo,omitempty" gorm:"size:500"`
	Rating  int     `json:"rating" gorm:"not null;default:5;check:rating >= 1 AND rating <= 5"`
	Details string  `json:"details" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt"`
}

func (Review) TableName() string {
	return "reviews"
}
