package dto

import "time"

// DashboardResponse is the view model of the collection list page.
type DashboardResponse struct {
	Welcome     WelcomeMessage   `json:"welcome"`
	IsEmpty     bool             `json:"isEmpty"`
	Collections []CollectionCard `json:"collections"`
}

type WelcomeMessage struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// CollectionCard สรุปข้อมูลของแต่ละ collection สำหรับแสดงผล
type CollectionCard struct {
	ID         uint           `json:"id"`
	Name       string         `json:"name"`
	Color      string         `json:"color"`
	Gradient   string         `json:"gradient"`
	CreatedAt  time.Time      `json:"createdAt"`
	TasksTotal int            `json:"tasksTotal"`
	TasksDone  int            `json:"tasksDone"`
	Progress   float64        `json:"progress"`
	Tasks      []TaskResponse `json:"tasks"`
}
