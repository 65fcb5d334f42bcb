package pagination

import (
	"context"

	"gorm.io/gorm"
)

type gormSource[M any] struct {
	db    *gorm.DB
	order string
}

// FromGorm exposes the rows of model M matched by db as a Source. The order
// clause applies to windows only; counting ignores it.
func FromGorm[M any](db *gorm.DB, order string) Source[M] {
	return &gormSource[M]{db: db.Session(&gorm.Session{}), order: order}
}

func (s *gormSource[M]) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(new(M)).Count(&n).Error
	return n, err
}

func (s *gormSource[M]) Window(ctx context.Context, offset, limit int) ([]M, error) {
	var rows []M
	q := s.db.WithContext(ctx).Model(new(M))
	if s.order != "" {
		q = q.Order(s.order)
	}
	if err := q.Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
