package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tasklist-api/domain/models"
	"tasklist-api/domain/repositories"
)

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) CreateInCollection(ctx context.Context, task *models.Task) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// collection ต้องเป็นของ user เดียวกับ task
		var count int64
		if err := tx.Model(&models.Collection{}).
			Scopes(ownedBy(task.CollectionID, task.UserID)).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Create(task).Error
	})
	return translateError(err)
}

func (r *TaskRepositoryImpl) UpdateDone(ctx context.Context, id uint, userID string, done bool) (*models.Task, error) {
	var task models.Task

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Task{}).
			Scopes(ownedBy(id, userID)).
			Update("done", done)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Scopes(ownedBy(id, userID)).First(&task).Error
	})
	if err != nil {
		return nil, translateError(err)
	}

	return &task, nil
}

func (r *TaskRepositoryImpl) DeleteByIDAndUserID(ctx context.Context, id uint, userID string) (*models.Task, error) {
	var task models.Task

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(ownedBy(id, userID)).First(&task).Error; err != nil {
			return err
		}

		result := tx.Scopes(ownedBy(id, userID)).Delete(&models.Task{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, translateError(err)
	}

	return &task, nil
}

func (r *TaskRepositoryImpl) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Where("done = ? AND expires_at IS NOT NULL AND expires_at > ? AND expires_at <= ?", false, from, to).
		Order("user_id ASC, expires_at ASC").
		Find(&tasks).Error
	return tasks, err
}
