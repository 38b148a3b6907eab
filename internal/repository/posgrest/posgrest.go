package posgrest

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// repository is a generic GORM-backed store. ID is the primary-key type of T
// (int64 for accounts, string for payment requests). Lookups filter on the
// model's declared primary key, resolved from the gorm schema, so models
// whose key column is not "id" still work.
type repository[T interface{}, ID comparable] struct {
	db *gorm.DB
}

func New[T interface{}, ID comparable](db *gorm.DB) *repository[T, ID] {
	return &repository[T, ID]{
		db,
	}
}

func byPrimaryKey[ID comparable](id ID) clause.Eq {
	return clause.Eq{Column: clause.PrimaryColumn, Value: id}
}

func (r *repository[T, ID]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(&entity).Error
}

func (r *repository[T, ID]) GetAll(ctx context.Context) (*[]T, error) {
	var entities []T
	err := r.db.WithContext(ctx).Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return &entities, nil
}

func (r *repository[T, ID]) GetByID(ctx context.Context, id ID) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).Where(byPrimaryKey(id)).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *repository[T, ID]) Update(ctx context.Context, entity *T, id ID) error {
	// Select("*") so zero values persist; an account debited to 0 must be written.
	return r.db.WithContext(ctx).Model(entity).Where(byPrimaryKey(id)).Select("*").Updates(entity).Error
}

func (r *repository[T, ID]) Delete(ctx context.Context, id ID) error {
	var entity T
	return r.db.WithContext(ctx).Where(byPrimaryKey(id)).Delete(&entity).Error
}
