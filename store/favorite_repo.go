package store

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository struct{ db *gorm.DB }

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository { return &FavoriteRepository{db: db} }

// List returns favorites newest first.
func (r *FavoriteRepository) List() ([]FavoriteApp, error) {
	var out []FavoriteApp
	err := r.db.Order("added_at DESC").Order("package_name ASC").Find(&out).Error
	return out, err
}

func (r *FavoriteRepository) Get(pkg string) (*FavoriteApp, error) {
	var f FavoriteApp
	if err := r.db.Where("package_name = ?", pkg).First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

// Add is a no-op for a package that is already a favorite.
func (r *FavoriteRepository) Add(pkg, name string) error {
	f := FavoriteApp{PackageName: pkg, AppName: name, AddedAt: time.Now()}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&f).Error
}

func (r *FavoriteRepository) Remove(pkg string) error {
	return r.db.Where("package_name = ?", pkg).Delete(&FavoriteApp{}).Error
}

func (r *FavoriteRepository) Clear() error {
	return r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&FavoriteApp{}).Error
}

func (r *FavoriteRepository) Count() (int64, error) {
	var n int64
	return n, r.db.Model(&FavoriteApp{}).Count(&n).Error
}
