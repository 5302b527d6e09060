package models

import "time"

// Product represents an item on the menu. Products are deleted physically;
// order items keep their own denormalized copy of the name so history
// survives a deletion.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100)"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	ImagePath   string    `json:"image_path"`
	Category    string    `json:"category" gorm:"type:varchar(50);default:Other"`
	CreatedAt   time.Time `json:"created_at"`
}
