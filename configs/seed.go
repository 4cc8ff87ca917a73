package configs

import (
	"foodhub/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSuperuser สร้าง superuser ครั้งแรกจาก env
func SeedSuperuser(d *gorm.DB, cfg *Config) error {
	if cfg.SuperuserEmail == "" || cfg.SuperuserPassword == "" {
		logrus.Warn("skip seeding superuser: missing SUPERUSER_EMAIL/SUPERUSER_PASSWORD")
		return nil
	}

	var count int64
	if err := d.Model(&entity.User{}).Where("email = ?", cfg.SuperuserEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logrus.WithField("email", cfg.SuperuserEmail).Info("superuser already exists")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SuperuserPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	su := entity.User{
		Username: cfg.SuperuserUsername,
		Email:    cfg.SuperuserEmail,
		Password: string(hash),
		Role:     entity.RoleSuperuser,
	}
	return d.Create(&su).Error
}

// SeedCuisines ใส่ cuisine พื้นฐาน
func SeedCuisines(d *gorm.DB) error {
	for _, name := range []string{"Italian", "Japanese", "Mexican", "Thai", "Indian", "American"} {
		if err := d.FirstOrCreate(&entity.Cuisine{}, entity.Cuisine{Name: name}).Error; err != nil {
			return err
		}
	}
	logrus.Info("cuisines seeded")
	return nil
}
