package dto

import (
	"time"

	"tasklist-api/domain/models"
)

func UserToUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Avatar:       user.Avatar,
		Role:         user.Role,
		IsGoogleUser: user.IsGoogleUser(),
		CreatedAt:    user.CreatedAt,
	}
}

func TaskToTaskResponse(task *models.Task, now time.Time) *TaskResponse {
	if task == nil {
		return nil
	}
	return &TaskResponse{
		ID:              task.ID,
		UserID:          task.UserID,
		CollectionID:    task.CollectionID,
		Content:         task.Content,
		Done:            task.Done,
		ExpiresAt:       task.ExpiresAt,
		ExpirationLevel: string(task.ExpirationLevelAt(now)),
		CreatedAt:       task.CreatedAt,
	}
}

func tasksToResponses(tasks []models.Task, now time.Time) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = *TaskToTaskResponse(&tasks[i], now)
	}
	return responses
}

func CollectionToCollectionResponse(collection *models.Collection, now time.Time) *CollectionResponse {
	if collection == nil {
		return nil
	}
	return &CollectionResponse{
		ID:        collection.ID,
		UserID:    collection.UserID,
		Name:      collection.Name,
		Color:     string(collection.Color),
		CreatedAt: collection.CreatedAt,
		Tasks:     tasksToResponses(collection.Tasks, now),
	}
}

func CollectionToCollectionCard(collection *models.Collection, now time.Time) *CollectionCard {
	if collection == nil {
		return nil
	}
	return &CollectionCard{
		ID:         collection.ID,
		Name:       collection.Name,
		Color:      string(collection.Color),
		Gradient:   collection.Color.Gradient(),
		CreatedAt:  collection.CreatedAt,
		TasksTotal: len(collection.Tasks),
		TasksDone:  collection.TasksDone(),
		Progress:   collection.Progress(),
		Tasks:      tasksToResponses(collection.Tasks, now),
	}
}

func CreateCollectionRequestToCollection(req *CreateCollectionRequest, userID string) *models.Collection {
	return &models.Collection{
		UserID: userID,
		Name:   req.Name,
		Color:  models.CollectionColor(req.Color),
	}
}

func CreateTaskRequestToTask(req *CreateTaskRequest, userID string) *models.Task {
	task := &models.Task{
		UserID:    userID,
		ExpiresAt: req.ExpiresAt,
	}
	if req.CollectionID != nil {
		task.CollectionID = uint(*req.CollectionID)
	}
	if req.Content != nil {
		task.Content = *req.Content
	}
	return task
}
