package models

import (
	"gorm.io/gorm"
)

// SchoolClass 表示一個班級，分數在各回合間累計
type SchoolClass struct {
	gorm.Model
	Name     string    `gorm:"uniqueIndex;not null" json:"name"`
	Score    int       `json:"score"`
	Students []Student `gorm:"foreignKey:ClassID" json:"students,omitempty"`
}

// Student 表示一位學生，每位學生屬於一個班級
type Student struct {
	gorm.Model
	Nickname string `json:"nickname"`
	ClassID  uint   `json:"class_id"`
}
