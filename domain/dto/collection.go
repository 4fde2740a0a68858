package dto

import (
	"time"
)

// ชื่อ collection 4-20 ตัวอักษร ให้พอดีกับ card บน dashboard
type CreateCollectionRequest struct {
	Name  string `json:"name" validate:"required,min=4,max=20"`
	Color string `json:"color" validate:"required,oneof=sunset poppy rosebud"`
}

type CollectionResponse struct {
	ID        uint           `json:"id"`
	UserID    string         `json:"userId"`
	Name      string         `json:"name"`
	Color     string         `json:"color"`
	CreatedAt time.Time      `json:"createdAt"`
	Tasks     []TaskResponse `json:"tasks"`
}
