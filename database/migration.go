package database

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/totok22/quicksales-backend/models"
)

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	log.Println("Starting GORM AutoMigrate...")

	migrator := db.Migrator()
	for _, model := range allModelsWithNames() {
		if !migrator.HasTable(model.value) {
			if err := migrator.CreateTable(model.value); err != nil {
				return fmt.Errorf("failed to create table %s: %w", model.name, err)
			}
			log.Printf("  ✓ Created table: %s", model.name)
		} else {
			if err := migrator.AutoMigrate(model.value); err != nil {
				log.Printf("  ⚠ Warning: could not migrate table %s: %v", model.name, err)
			} else {
				log.Printf("  ✓ Table up to date: %s", model.name)
			}
		}
	}

	// Create indexes
	log.Println("Creating indexes...")
	if err := CreateIndexes(db); err != nil {
		log.Printf("Warning: Some indexes could not be created: %v", err)
	}

	log.Println("GORM AutoMigrate completed successfully")
	return nil
}

type namedModel struct {
	name  string
	value interface{}
}

func allModelsWithNames() []namedModel {
	all := models.AllModels()
	out := make([]namedModel, 0, len(all))
	for _, m := range all {
		name := fmt.Sprintf("%T", m)
		if t, ok := m.(interface{ TableName() string }); ok {
			name = t.TableName()
		}
		out = append(out, namedModel{name: name, value: m})
	}
	return out
}

// CheckConnection verifies the database connection
func CheckConnection(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

// CreateIndexes creates performance indexes beyond the ones declared on
// the model tags.
func CreateIndexes(db *gorm.DB) error {
	indexes := []struct {
		name  string
		query string
	}{
		{"idx_customers_phone", "CREATE INDEX IF NOT EXISTS idx_customers_phone ON customers(phone)"},
		{"idx_orders_created_at", "CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at)"},
		{"idx_orders_date_created", "CREATE INDEX IF NOT EXISTS idx_orders_date_created ON orders(date, created_at)"},
		{"idx_remark_presets_type_sort", "CREATE INDEX IF NOT EXISTS idx_remark_presets_type_sort ON remark_presets(type, sort_order)"},
	}

	successCount := 0
	for _, idx := range indexes {
		if err := db.Exec(idx.query).Error; err != nil {
			log.Printf("  ⚠ Failed to create index %s: %v", idx.name, err)
		} else {
			successCount++
		}
	}

	if successCount > 0 {
		log.Printf("Successfully created %d indexes", successCount)
	}

	return nil
}

// EnsureDefaults seeds the initial rows a fresh database needs: root
// categories, unit presets, a default template, and the singleton
// settings row. Every block is idempotent.
func EnsureDefaults(db *gorm.DB) error {
	now := time.Now()

	// 1. Default categories
	var categoryCount int64
	if err := db.Model(&models.Category{}).Count(&categoryCount).Error; err != nil {
		return err
	}
	if categoryCount == 0 {
		names := []string{"保养", "配件", "装饰", "清洗", "服务", "其他"}
		for i, name := range names {
			category := models.Category{
				ID:        uuid.NewString(),
				Name:      name,
				Level:     0,
				Path:      name,
				SortOrder: i,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := db.Create(&category).Error; err != nil {
				return fmt.Errorf("failed to seed category %q: %w", name, err)
			}
		}
		log.Printf("  ✓ Seeded %d default categories", len(names))
	}

	// 2. Default unit presets
	var unitCount int64
	if err := db.Model(&models.UnitPreset{}).Count(&unitCount).Error; err != nil {
		return err
	}
	if unitCount == 0 {
		units := []string{
			"件", "个", "套", "箱", "包", "瓶", "盒", "袋",
			"桶", "斤", "公斤", "克", "升", "毫升", "米", "厘米",
		}
		for i, name := range units {
			preset := models.UnitPreset{
				ID:        uuid.NewString(),
				Name:      name,
				SortOrder: i,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := db.Create(&preset).Error; err != nil {
				return fmt.Errorf("failed to seed unit preset %q: %w", name, err)
			}
		}
		log.Printf("  ✓ Seeded %d default unit presets", len(units))
	}

	// 3. Default template
	var templateCount int64
	if err := db.Model(&models.TemplateConfig{}).Count(&templateCount).Error; err != nil {
		return err
	}
	if templateCount == 0 {
		template := models.TemplateConfig{
			ID:              uuid.NewString(),
			Name:            "默认模板",
			FileName:        "template1.xlsx",
			FilenamePattern: models.DefaultFilenamePattern,
			IsDefault:       true,
			Mappings: models.TemplateMappings{
				CustomerName:  "C3",
				CustomerPhone: "E3",
				CustomerPlate: "B3",
				Date:          "G3",
				OrderNumber:   "G2",
				OrderRemark:   "G15",
				ItemStartRow:  5,
				ItemEndRow:    14,
				Columns: models.TemplateColumns{
					Name:     "B",
					Unit:     "C",
					Quantity: "D",
					Price:    "E",
					Total:    "F",
					Remark:   "G",
				},
			},
			ItemEndRow: 14,
			RequiredFields: models.RequiredFields{
				CustomerPlate: true,
				Date:          true,
				OrderNumber:   true,
				ItemName:      true,
				ItemQuantity:  true,
				ItemPrice:     true,
			},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := db.Create(&template).Error; err != nil {
			return fmt.Errorf("failed to seed default template: %w", err)
		}
		log.Println("  ✓ Seeded default template")
	}

	// 4. Singleton settings row
	var settingsCount int64
	if err := db.Model(&models.AppSettings{}).
		Where("id = ?", models.SettingsID).
		Count(&settingsCount).Error; err != nil {
		return err
	}
	if settingsCount == 0 {
		var defaultTemplateID string
		db.Model(&models.TemplateConfig{}).
			Where("is_default = ?", true).
			Order("updated_at DESC").
			Limit(1).
			Pluck("id", &defaultTemplateID)

		settings := models.AppSettings{
			ID:                    models.SettingsID,
			FontSize:              16,
			Theme:                 "light",
			RememberWindow:        true,
			DateFormat:            "YYYY-MM-DD",
			ExcelDateFormat:       "YYYY.MM.DD",
			OrderNumberFormat:     "NO.{SEQ:6}",
			OrderNumberResetDaily: true,
			OrderNumberDigits:     6,
			AutoBackup:            true,
			BackupInterval:        7,
			BackupKeepCount:       10,
			DefaultTemplateID:     defaultTemplateID,
			ExcelFilenameFormat:   models.DefaultFilenamePattern,
			UpdatedAt:             now,
		}
		if err := db.Create(&settings).Error; err != nil {
			return fmt.Errorf("failed to seed default settings: %w", err)
		}
		log.Println("  ✓ Seeded default settings")
	}

	return nil
}
