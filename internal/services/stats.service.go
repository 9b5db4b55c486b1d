package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"transferregistry/internal/appcontext"
	"transferregistry/internal/entity"
)

type DataSetCount struct {
	DataSet string `json:"data_set"`
	Count   int64  `json:"count"`
}

type DeviceTypeCount struct {
	DeviceType string `json:"device_type"`
	Count      int64  `json:"count"`
}

type CompanyStats struct {
	Company          entity.Company    `json:"company"`
	TotalEntries     int64             `json:"total_entries"`
	DataSetCounts    []DataSetCount    `json:"data_set_counts"`
	DeviceTypeCounts []DeviceTypeCount `json:"device_type_counts"`
}

type CompanyEntryCount struct {
	Company string `json:"company"`
	Entries int64  `json:"entries"`
}

type GlobalStats struct {
	TotalCompanies         int64               `json:"total_companies"`
	TotalEntries           int64               `json:"total_entries"`
	CompanyEntryCounts     []CompanyEntryCount `json:"company_entry_counts"`
	DeviceTypeDistribution []DeviceTypeCount   `json:"device_type_distribution"`
	DataSetDistribution    []DataSetCount      `json:"data_set_distribution"`
}

type StatsService struct {
	ctx *appcontext.Context
}

func NewStatsService(ctx *appcontext.Context) *StatsService {
	return &StatsService{ctx: ctx}
}

// CompanyStats returns the entry total for one company together with two
// independent group-by projections, over data_set and over device_type.
func (s *StatsService) CompanyStats(ctx context.Context, companyID int64) (*CompanyStats, error) {
	db := s.ctx.DB.WithContext(ctx)

	var company entity.Company
	if err := db.First(&company, companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Company not found")
		}
		return nil, constraintViolation("failed to get company", err)
	}

	stats := CompanyStats{
		Company:          company,
		DataSetCounts:    make([]DataSetCount, 0),
		DeviceTypeCounts: make([]DeviceTypeCount, 0),
	}

	if err := db.Model(&entity.DataEntry{}).Where("company_id = ?", companyID).Count(&stats.TotalEntries).Error; err != nil {
		return nil, constraintViolation("failed to count data entries", err)
	}

	err := db.Model(&entity.DataEntry{}).
		Select("data_set, COUNT(id) AS count").
		Where("company_id = ?", companyID).
		Group("data_set").
		Order("data_set").
		Scan(&stats.DataSetCounts).Error
	if err != nil {
		return nil, constraintViolation("failed to count by data set", err)
	}

	err = db.Model(&entity.DataEntry{}).
		Select("device_type, COUNT(id) AS count").
		Where("company_id = ?", companyID).
		Group("device_type").
		Order("device_type").
		Scan(&stats.DeviceTypeCounts).Error
	if err != nil {
		return nil, constraintViolation("failed to count by device type", err)
	}

	return &stats, nil
}

// DataSetCount counts entries matching a company name and a data set label
// exactly. Both parameters are required.
func (s *StatsService) DataSetCount(ctx context.Context, companyName, dataSet string) (int64, error) {
	if companyName == "" || dataSet == "" {
		return 0, invalidArgument("company_name and data_set parameters are required")
	}

	var count int64
	err := s.ctx.DB.WithContext(ctx).
		Model(&entity.DataEntry{}).
		Joins("JOIN companies ON companies.id = data_entries.company_id").
		Where("companies.name = ? AND data_entries.data_set = ?", companyName, dataSet).
		Count(&count).Error
	if err != nil {
		return 0, constraintViolation("failed to count data set entries", err)
	}
	return count, nil
}

// GlobalStats aggregates the whole registry: totals, per-company entry counts
// in descending order, and the device_type and data_set distributions with
// missing values bucketed under "Unknown".
func (s *StatsService) GlobalStats(ctx context.Context) (*GlobalStats, error) {
	db := s.ctx.DB.WithContext(ctx)

	stats := GlobalStats{
		CompanyEntryCounts:     make([]CompanyEntryCount, 0),
		DeviceTypeDistribution: make([]DeviceTypeCount, 0),
		DataSetDistribution:    make([]DataSetCount, 0),
	}

	if err := db.Model(&entity.Company{}).Count(&stats.TotalCompanies).Error; err != nil {
		return nil, constraintViolation("failed to count companies", err)
	}
	if err := db.Model(&entity.DataEntry{}).Count(&stats.TotalEntries).Error; err != nil {
		return nil, constraintViolation("failed to count data entries", err)
	}

	err := db.Model(&entity.Company{}).
		Select("companies.name AS company, COUNT(data_entries.id) AS entries").
		Joins("JOIN data_entries ON data_entries.company_id = companies.id").
		Group("companies.id, companies.name").
		Order("entries DESC").
		Scan(&stats.CompanyEntryCounts).Error
	if err != nil {
		return nil, constraintViolation("failed to count entries per company", err)
	}

	err = db.Model(&entity.DataEntry{}).
		Select("device_type, COUNT(id) AS count").
		Group("device_type").
		Order("count DESC").
		Scan(&stats.DeviceTypeDistribution).Error
	if err != nil {
		return nil, constraintViolation("failed to build device type distribution", err)
	}

	err = db.Model(&entity.DataEntry{}).
		Select("data_set, COUNT(id) AS count").
		Group("data_set").
		Order("count DESC").
		Scan(&stats.DataSetDistribution).Error
	if err != nil {
		return nil, constraintViolation("failed to build data set distribution", err)
	}

	for i := range stats.DeviceTypeDistribution {
		if stats.DeviceTypeDistribution[i].DeviceType == "" {
			stats.DeviceTypeDistribution[i].DeviceType = "Unknown"
		}
	}
	for i := range stats.DataSetDistribution {
		if stats.DataSetDistribution[i].DataSet == "" {
			stats.DataSetDistribution[i].DataSet = "Unknown"
		}
	}

	return &stats, nil
}
