package entity

import "time"

// DataEntry records one device/data-flow instance belonging to a Company.
// UID is nullable so that entries created without a device identifier do not
// collide on the unique index.
type DataEntry struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CompanyID   int64     `json:"company_id" gorm:"not null;index:idx_company_data_set,priority:1;index:idx_uid_company,priority:2"`
	DeviceType  string    `json:"device_type" gorm:"type:varchar(100);index:idx_device_type"`
	UID         *string   `json:"uid" gorm:"column:uid;type:varchar(255);uniqueIndex:idx_uid;index:idx_uid_company,priority:1"`
	DataType    string    `json:"data_type" gorm:"type:varchar(100)"`
	DataSet     string    `json:"data_set" gorm:"type:varchar(255);index:idx_data_set;index:idx_company_data_set,priority:2"`
	DataGoingTo string    `json:"data_going_to" gorm:"type:varchar(255)"`
	CreatedAt   time.Time `json:"created_at"`

	Company *Company `json:"-" gorm:"foreignKey:CompanyID"`

	// Populated by joined reads, never stored.
	CompanyName string `json:"company_name" gorm:"->;-:migration"`
}
