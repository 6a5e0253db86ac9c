package repo

import (
	"context"

	"bitfolio/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSettingNotFound = errors.New("setting not found")

func (r *Repository) GetSetting(ctx context.Context, key string) (*models.Setting, error) {
	var setting models.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(ErrSettingNotFound, "key %q", key)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read setting %q", key)
	}
	return &setting, nil
}

// PutSetting inserts the key or overwrites its value.
func (r *Repository) PutSetting(ctx context.Context, key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return errors.Wrapf(err, "failed to write setting %q", key)
	}
	return nil
}

func (r *Repository) DeleteSetting(ctx context.Context, key string) error {
	result := r.db.WithContext(ctx).Where("key = ?", key).Delete(&models.Setting{})
	if result.Error != nil {
		return errors.Wrapf(result.Error, "failed to delete setting %q", key)
	}
	if result.RowsAffected == 0 {
		return errors.Wrapf(ErrSettingNotFound, "key %q", key)
	}
	return nil
}

// ListSettingKeys returns every stored key in ascending order.
func (r *Repository) ListSettingKeys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := r.db.WithContext(ctx).Model(&models.Setting{}).Order("key ASC").Pluck("key", &keys).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list settings")
	}
	return keys, nil
}
