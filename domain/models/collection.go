package models

import (
	"time"
)

// CollectionColor คือสีของ collection ที่ผู้ใช้เลือกได้
type CollectionColor string

const (
	ColorSunset  CollectionColor = "sunset"
	ColorPoppy   CollectionColor = "poppy"
	ColorRosebud CollectionColor = "rosebud"
)

// CollectionColors lists every accepted color in display order.
var CollectionColors = []CollectionColor{ColorSunset, ColorPoppy, ColorRosebud}

var collectionGradients = map[CollectionColor]string{
	ColorSunset:  "bg-gradient-to-r from-red-500 to-orange-500",
	ColorPoppy:   "bg-gradient-to-r from-rose-400 to-red-500",
	ColorRosebud: "bg-gradient-to-r from-violet-500 to-purple-500",
}

// IsValid ตรวจสอบว่าเป็นสีที่รองรับ
func (c CollectionColor) IsValid() bool {
	_, ok := collectionGradients[c]
	return ok
}

// Gradient returns the CSS gradient classes clients paint the collection header with.
func (c CollectionColor) Gradient() string {
	return collectionGradients[c]
}

type Collection struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    string          `gorm:"size:255;not null;index"`
	Name      string          `gorm:"size:100;not null"`
	Color     CollectionColor `gorm:"size:20;not null"`
	CreatedAt time.Time

	// Relations
	Tasks []Task `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
}

func (Collection) TableName() string {
	return "collections"
}

// TasksDone นับจำนวน task ที่ทำเสร็จแล้ว
func (c *Collection) TasksDone() int {
	done := 0
	for _, task := range c.Tasks {
		if task.Done {
			done++
		}
	}
	return done
}

// Progress returns the completed share of tasks as a percentage (0-100).
// A collection without tasks reports 0.
func (c *Collection) Progress() float64 {
	total := len(c.Tasks)
	if total == 0 {
		return 0
	}
	return float64(c.TasksDone()) / float64(total) * 100
}
