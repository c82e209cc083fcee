package domain

import "time"

// CarpoolRequest is a driver offer tied to an event.
type CarpoolRequest struct {
	ID         string    `gorm:"column:id;primaryKey" json:"id"`
	EventID    string    `gorm:"column:event_id;index" json:"event_id"`
	DriverName string    `gorm:"column:driver_name" json:"driver_name"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (CarpoolRequest) TableName() string { return "carpool_requests" }

// DisplayDriverName returns the driver name with the fallback used in
// user-facing copy.
func (c *CarpoolRequest) DisplayDriverName() string {
	if c == nil || c.DriverName == "" {
		return "A driver"
	}
	return c.DriverName
}
