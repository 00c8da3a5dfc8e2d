package main

import (
	"time"

	"gorm.io/gorm"

	itemdomain "github.com/geotk/marketplace/internal/item/domain"
	reviewdomain "github.com/geotk/marketplace/internal/review/domain"
	userdomain "github.com/geotk/marketplace/internal/user/domain"
	"github.com/geotk/marketplace/pkg/auth"
	"github.com/geotk/marketplace/pkg/logger"
	"github.com/geotk/marketplace/pkg/storage"
)

// seedData loads a small demo dataset. It is a no-op when users already exist.
func seedData(db *gorm.DB, blobs *storage.LocalStorage) error {
	var count int64
	if err := db.Model(&userdomain.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Logger.Info().Msg("Database not empty, skipping seed")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		hash := func(plain string) string {
			h, err := auth.HashPassword(plain)
			if err != nil {
				return plain
			}
			return h
		}

		users := []*userdomain.User{
			{Username: "geot", FullName: "George Test", Email: "email@example.com", Password: hash("password"), Bio: "I am a student...", Country: "Greece", City: "Thessaloniki", PhoneNumber: "6900000000"},
			{Username: "johnk", FullName: "John K.", Email: "jk@example.com", Password: hash("password2"), Bio: "I am a programmer...", Country: "Greece", City: "Athens", PhoneNumber: "6911111111"},
			{Username: "gk", FullName: "George K.", Email: "gk@example.com", Password: hash("password3"), Country: "Greece", City: "Ioannina", PhoneNumber: "6922222222"},
		}
		for _, u := range users {
			if err := tx.Create(u).Error; err != nil {
				return err
			}
		}

		instruments := &itemdomain.Category{Name: "Musical Instruments"}
		electronics := &itemdomain.Category{Name: "Electronics"}
		for _, c := range []*itemdomain.Category{instruments, electronics} {
			if err := tx.Create(c).Error; err != nil {
				return err
			}
		}

		guitarDesc := "Old electric guitar."
		pcDesc := "Old computer."
		items := []*itemdomain.Item{
			{Title: "old guitar", CategoryID: instruments.ID, SellerID: users[1].ID, Price: 100.0, Description: &guitarDesc, Condition: "Used"},
			{Title: "old pc", CategoryID: electronics.ID, SellerID: users[0].ID, Price: 250.0, Description: &pcDesc, Condition: "Like new"},
			{Title: "CRT display", CategoryID: instruments.ID, SellerID: users[0].ID, Price: 50.0, Condition: "Used"},
		}
		for _, it := range items {
			if err := tx.Create(it).Error; err != nil {
				return err
			}
		}

		// Placeholder blobs so the demo image endpoints resolve
		placeholder := []byte("\xff\xd8\xff\xe0marketplace demo image\xff\xd9")
		for i, spec := range []struct {
			item *itemdomain.Item
			name string
		}{
			{items[0], "test.jpg"},
			{items[0], "test2.jpg"},
			{items[1], "test3.jpg"},
		} {
			path, err := blobs.Store(placeholder, spec.name)
			if err != nil {
				logger.Logger.Warn().Err(err).Int("index", i).Msg("Failed to store seed image")
				continue
			}
			if err := tx.Create(&itemdomain.Image{ItemID: spec.item.ID, Path: path}).Error; err != nil {
				return err
			}
		}

		today := time.Now()
		reviews := []*reviewdomain.Review{
			{ReviewerID: users[0].ID, RevieweeID: users[1].ID, Rating: 5, Comment: "Very nice and friendly.", Date: today},
			{ReviewerID: users[2].ID, RevieweeID: users[0].ID, Rating: 1, Comment: "Rude and disrespectful!", Date: today},
		}
		for _, rv := range reviews {
			if err := tx.Create(rv).Error; err != nil {
				return err
			}
		}

		logger.Logger.Info().
			Int("users", len(users)).
			Int("items", len(items)).
			Int("reviews", len(reviews)).
			Msg("Seeded demo data")

		return nil
	})
}
