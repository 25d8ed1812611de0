package models

import "time"

// SettingsID is the fixed ID of the singleton settings row.
const SettingsID = "settings"

// AppSettings represents app_settings table, a singleton row keyed by
// SettingsID. Only the order-number fields affect the ingestion pipeline;
// the rest is presentation and backup configuration served to the client.
type AppSettings struct {
	ID               string `gorm:"primaryKey" json:"id"`
	DataDirectory    string `gorm:"type:text" json:"dataDirectory"`
	OutputDirectory  string `gorm:"type:text" json:"outputDirectory"`
	BackupDirectory  string `gorm:"type:text" json:"backupDirectory"`
	FontSize         int    `gorm:"default:16" json:"fontSize"`
	Theme            string `gorm:"type:varchar(20);default:light" json:"theme"`
	RememberWindow   bool   `gorm:"default:true" json:"rememberWindow"`
	DateFormat       string `gorm:"type:varchar(30)" json:"dateFormat"`
	ExcelDateFormat  string `gorm:"type:varchar(30)" json:"excelDateFormat"`
	// OrderNumberFormat is the pattern expanded by the order number
	// generator: date tokens plus an optional {SEQ} / {SEQ:N} token.
	OrderNumberFormat string `gorm:"type:varchar(100)" json:"orderNumberFormat"`
	// OrderNumberPrefix is stored for the client but not consumed by the
	// generator; prefixes live inside OrderNumberFormat.
	OrderNumberPrefix     string          `gorm:"type:varchar(30)" json:"orderNumberPrefix"`
	OrderNumberResetDaily bool            `gorm:"default:true" json:"orderNumberResetDaily"`
	OrderNumberDigits     int             `gorm:"default:6" json:"orderNumberDigits"`
	RetainDays            int             `gorm:"default:0" json:"retainDays"`
	AutoBackup            bool            `gorm:"default:true" json:"autoBackup"`
	BackupInterval        int             `gorm:"default:7" json:"backupInterval"`
	BackupKeepCount       int             `gorm:"default:10" json:"backupKeepCount"`
	DefaultTemplateID     string          `json:"defaultTemplateId"`
	DefaultCategoryID     string          `json:"defaultCategoryId"`
	ExcelFilenameFormat   string          `gorm:"type:varchar(255)" json:"excelFilenameFormat"`
	AutoOpenExcel         bool            `gorm:"default:false" json:"autoOpenExcel"`
	SkipSaveDialog        bool            `gorm:"default:false" json:"skipSaveDialog"`
	TemplateValidation    *RequiredFields `gorm:"type:text" json:"templateValidation,omitempty"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

// TableName specifies the table name for AppSettings
func (AppSettings) TableName() string {
	return "app_settings"
}

// DefaultSettings returns the in-memory settings used before any row has
// been persisted.
func DefaultSettings() *AppSettings {
	return &AppSettings{
		ID:                    SettingsID,
		FontSize:              14,
		Theme:                 "light",
		RememberWindow:        true,
		DateFormat:            "YYYY-MM-DD",
		ExcelDateFormat:       "YYYY-MM-DD",
		OrderNumberFormat:     "{YYYY}{MM}{DD}_{SEQ:6}",
		OrderNumberResetDaily: true,
		OrderNumberDigits:     6,
		RetainDays:            90,
		AutoBackup:            true,
		BackupInterval:        24,
		BackupKeepCount:       10,
		ExcelFilenameFormat:   DefaultFilenamePattern,
		UpdatedAt:             time.Now(),
	}
}
