package utils

import (
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/sancruz-dev/dotnet-waterwise/models"
)

// DedupTimestamp returns a collision-free timestamp for a sensor's next
// reading. Devices frequently report at sub-second cadence, so a naive "now"
// risks hitting the (sensor_id, timestamp) unique index. If the latest stored
// reading is under a second away from the candidate, the result is the stored
// timestamp plus a random offset in [100, 999) milliseconds.
//
// The check-then-shift is not atomic: two concurrent submissions can still
// collide, in which case the unique index rejects the second insert and the
// caller reports a retryable conflict.
func DedupTimestamp(db *gorm.DB, sensorID uint, now time.Time) time.Time {
	var last models.Reading
	err := db.Where("sensor_id = ?", sensorID).
		Order("timestamp desc").
		First(&last).Error
	if err != nil {
		return now
	}

	diff := now.Sub(last.Timestamp)
	if diff < 0 {
		diff = -diff
	}
	if diff < time.Second {
		offset := time.Duration(100+rand.Intn(899)) * time.Millisecond
		return last.Timestamp.Add(offset)
	}

	return now
}
