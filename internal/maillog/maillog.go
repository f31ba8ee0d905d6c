// Package maillog keeps a local record of outbound confirmation attempts.
// Confirmation email is a best-effort side effect of a submission, so its
// failures never reach the visitor; this log is where they land instead.
package maillog

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Entry statuses.
const (
	StatusSent    = "sent"
	StatusFailed  = "failed"
	StatusSkipped = "skipped" // mail endpoint not configured
)

// Entry is one send attempt.
type Entry struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	Kind      string // lesson | camp | contact
	Recipient string
	Subject   string
	Status    string
	Error     string
}

var conn *gorm.DB

// Init opens (or creates) the sqlite log file.
func Init(path string) error {
	db, err := gorm.Open(sqlite.Open(path+"?_journal_mode=WAL&_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return err
	}
	// Single writer keeps sqlite happy.
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)
	conn = db
	return nil
}

// Record appends one attempt. A nil connection (log disabled) is a no-op.
func Record(e Entry) {
	if conn == nil {
		return
	}
	_ = conn.Create(&e).Error
}

// Recent returns the latest attempts, newest first.
func Recent(limit int) ([]Entry, error) {
	if conn == nil {
		return nil, nil
	}
	var out []Entry
	err := conn.Order("created_at desc").Limit(limit).Find(&out).Error
	return out, err
}
