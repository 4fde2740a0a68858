package postgres

import (
	"context"

	"gorm.io/gorm"

	"tasklist-api/domain/models"
	"tasklist-api/domain/repositories"
)

type CollectionRepositoryImpl struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) repositories.CollectionRepository {
	return &CollectionRepositoryImpl{db: db}
}

func orderTasks(db *gorm.DB) *gorm.DB {
	return db.Order("tasks.id ASC")
}

// ownedBy จำกัด query ให้เหลือ row ของ user ใน statement เดียวกับ primary key
func ownedBy(id uint, userID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ? AND user_id = ?", id, userID)
	}
}

func (r *CollectionRepositoryImpl) Create(ctx context.Context, collection *models.Collection) error {
	return r.db.WithContext(ctx).Create(collection).Error
}

func (r *CollectionRepositoryImpl) ListByUserID(ctx context.Context, userID string) ([]*models.Collection, error) {
	var collections []*models.Collection
	err := r.db.WithContext(ctx).
		Preload("Tasks", orderTasks).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&collections).Error
	return collections, err
}

func (r *CollectionRepositoryImpl) DeleteByIDAndUserID(ctx context.Context, id uint, userID string) (*models.Collection, error) {
	var collection models.Collection

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Tasks", orderTasks).
			Scopes(ownedBy(id, userID)).
			First(&collection).Error; err != nil {
			return err
		}

		// ลบ tasks ก่อน เผื่อ storage ไม่ได้บังคับ foreign key cascade
		if err := tx.Where("collection_id = ? AND user_id = ?", id, userID).
			Delete(&models.Task{}).Error; err != nil {
			return err
		}

		result := tx.Scopes(ownedBy(id, userID)).Delete(&models.Collection{})
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

	return &collection, nil
}
