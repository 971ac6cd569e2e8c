package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RestrictionRepository struct{ db *gorm.DB }

func NewRestrictionRepository(db *gorm.DB) *RestrictionRepository {
	return &RestrictionRepository{db: db}
}

func (r *RestrictionRepository) List() ([]AppRestriction, error) {
	var out []AppRestriction
	err := r.db.Order("app_name ASC").Find(&out).Error
	return out, err
}

func (r *RestrictionRepository) ListRestricted() ([]AppRestriction, error) {
	var out []AppRestriction
	err := r.db.Where("is_restricted = ?", true).Order("app_name ASC").Find(&out).Error
	return out, err
}

// Get returns nil, nil when the package has no restriction.
func (r *RestrictionRepository) Get(pkg string) (*AppRestriction, error) {
	var a AppRestriction
	if err := r.db.Where("package_name = ?", pkg).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *RestrictionRepository) Upsert(a *AppRestriction) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "package_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"app_name", "is_restricted", "show_from_hour", "show_until_hour", "custom_label", "updated_at"}),
	}).Create(a).Error
}

func (r *RestrictionRepository) Delete(pkg string) error {
	return r.db.Where("package_name = ?", pkg).Delete(&AppRestriction{}).Error
}

func (r *RestrictionRepository) DeleteAll() error {
	return r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&AppRestriction{}).Error
}

func (r *RestrictionRepository) CountRestricted() (int64, error) {
	var n int64
	return n, r.db.Model(&AppRestriction{}).Where("is_restricted = ?", true).Count(&n).Error
}
