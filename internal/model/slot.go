package model

import "time"

// SlotRecord is one row of the key-value table that holds the serialized tracker.
type SlotRecord struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}
