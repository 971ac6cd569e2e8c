package store

import (
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const flagPrefix = "restricted_"

// FlagKey is the settings key holding the last known restricted state of pkg.
func FlagKey(pkg string) string { return flagPrefix + pkg }

type SettingRepository struct{ db *gorm.DB }

func NewSettingRepository(db *gorm.DB) *SettingRepository { return &SettingRepository{db: db} }

// Get reports ok=false for a missing key.
func (r *SettingRepository) Get(key string) (value string, ok bool, err error) {
	var s Setting
	if err := r.db.Where("setting_key = ?", key).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return s.Value, true, nil
}

func (r *SettingRepository) Set(key, value string) error {
	s := Setting{Key: key, Value: value, UpdatedAt: time.Now()}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&s).Error
}

func (r *SettingRepository) GetBool(key string, def bool) (bool, error) {
	v, ok, err := r.Get(key)
	if err != nil || !ok {
		return def, err
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, nil
	}
	return b, nil
}

func (r *SettingRepository) SetBool(key string, v bool) error {
	return r.Set(key, strconv.FormatBool(v))
}

func (r *SettingRepository) GetInt(key string, def int) (int, error) {
	v, ok, err := r.Get(key)
	if err != nil || !ok {
		return def, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, nil
	}
	return n, nil
}

func (r *SettingRepository) SetInt(key string, v int) error {
	return r.Set(key, strconv.Itoa(v))
}

// Flag reads the last known restricted state; unknown packages read as restricted.
func (r *SettingRepository) Flag(pkg string) (bool, error) {
	return r.GetBool(FlagKey(pkg), true)
}

func (r *SettingRepository) SetFlag(pkg string, restricted bool) error {
	return r.SetBool(FlagKey(pkg), restricted)
}
