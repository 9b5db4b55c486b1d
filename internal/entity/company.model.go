package entity

import "time"

type Company struct {
	ID        int64       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string      `json:"name" gorm:"type:varchar(255);not null;uniqueIndex:idx_companies_name"`
	CreatedAt time.Time   `json:"created_at"`
	Entries   []DataEntry `json:"-" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
}
