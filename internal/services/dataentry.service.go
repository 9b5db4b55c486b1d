package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"transferregistry/internal/appcontext"
	"transferregistry/internal/entity"
)

// EntryFilter narrows a data entry listing. Zero-valued fields are ignored;
// supplied fields are combined as a conjunction.
type EntryFilter struct {
	CompanyName string
	UID         string
	DataSet     string
}

type CreateEntryInput struct {
	CompanyID   int64
	DeviceType  string
	UID         string
	DataType    string
	DataSet     string
	DataGoingTo string
}

// UpdateEntryInput carries a partial update. Nil fields are left untouched.
type UpdateEntryInput struct {
	DeviceType  *string
	UID         *string
	DataType    *string
	DataSet     *string
	DataGoingTo *string
}

func (in UpdateEntryInput) empty() bool {
	return in.DeviceType == nil && in.UID == nil && in.DataType == nil && in.DataSet == nil && in.DataGoingTo == nil
}

type DataEntryService struct {
	ctx *appcontext.Context
}

func NewDataEntryService(ctx *appcontext.Context) *DataEntryService {
	return &DataEntryService{ctx: ctx}
}

func entryQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&entity.DataEntry{}).
		Select("data_entries.*, companies.name AS company_name").
		Joins("JOIN companies ON companies.id = data_entries.company_id")
}

// List returns entries matching every supplied filter, joined against their
// owning company so responses carry the company name.
func (s *DataEntryService) List(ctx context.Context, filter EntryFilter) ([]entity.DataEntry, error) {
	query := entryQuery(s.ctx.DB.WithContext(ctx))
	if filter.CompanyName != "" {
		query = query.Where("companies.name = ?", filter.CompanyName)
	}
	if filter.UID != "" {
		query = query.Where("data_entries.uid = ?", filter.UID)
	}
	if filter.DataSet != "" {
		query = query.Where("data_entries.data_set = ?", filter.DataSet)
	}

	entries := make([]entity.DataEntry, 0)
	if err := query.Order("data_entries.id").Find(&entries).Error; err != nil {
		return nil, constraintViolation("failed to list data entries", err)
	}
	return entries, nil
}

func (s *DataEntryService) Get(ctx context.Context, id int64) (*entity.DataEntry, error) {
	var entry entity.DataEntry
	err := entryQuery(s.ctx.DB.WithContext(ctx)).Where("data_entries.id = ?", id).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Data entry not found")
		}
		return nil, constraintViolation("failed to get data entry", err)
	}
	return &entry, nil
}

// Create inserts a new entry after checking the referenced company exists and
// the uid, when given, is not already taken. The unique index on uid backs
// the application check.
func (s *DataEntryService) Create(ctx context.Context, input CreateEntryInput) (*entity.DataEntry, error) {
	if input.CompanyID == 0 {
		return nil, invalidArgument("company_id is required")
	}

	entry := entity.DataEntry{
		CompanyID:   input.CompanyID,
		DeviceType:  input.DeviceType,
		DataType:    input.DataType,
		DataSet:     input.DataSet,
		DataGoingTo: input.DataGoingTo,
	}
	if input.UID != "" {
		uid := input.UID
		entry.UID = &uid
	}

	err := s.ctx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var company entity.Company
		if err := tx.First(&company, input.CompanyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Company not found")
			}
			return constraintViolation("failed to get company", err)
		}
		if entry.UID != nil {
			if err := uidAvailable(tx, *entry.UID, 0); err != nil {
				return err
			}
		}
		if err := tx.Create(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return alreadyExists("UID already exists")
			}
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return notFound("Company not found")
			}
			return constraintViolation("failed to create data entry", err)
		}
		entry.CompanyName = company.Name
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.ctx.Logger.Info("data entry created", zap.Int64("entry_id", entry.ID), zap.Int64("company_id", entry.CompanyID))
	return &entry, nil
}

// Update applies only the fields present in the patch and returns the updated
// record. An empty patch is rejected.
func (s *DataEntryService) Update(ctx context.Context, id int64, patch UpdateEntryInput) (*entity.DataEntry, error) {
	if patch.empty() {
		return nil, invalidArgument("No data provided")
	}

	err := s.ctx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry entity.DataEntry
		if err := tx.First(&entry, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Data entry not found")
			}
			return constraintViolation("failed to get data entry", err)
		}

		updates := map[string]any{}
		if patch.DeviceType != nil {
			updates["device_type"] = *patch.DeviceType
		}
		if patch.UID != nil {
			if *patch.UID == "" {
				updates["uid"] = nil
			} else {
				if err := uidAvailable(tx, *patch.UID, id); err != nil {
					return err
				}
				updates["uid"] = *patch.UID
			}
		}
		if patch.DataType != nil {
			updates["data_type"] = *patch.DataType
		}
		if patch.DataSet != nil {
			updates["data_set"] = *patch.DataSet
		}
		if patch.DataGoingTo != nil {
			updates["data_going_to"] = *patch.DataGoingTo
		}

		if err := tx.Model(&entry).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return alreadyExists("UID already exists")
			}
			return constraintViolation("failed to update data entry", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *DataEntryService) Delete(ctx context.Context, id int64) error {
	err := s.ctx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry entity.DataEntry
		if err := tx.First(&entry, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Data entry not found")
			}
			return constraintViolation("failed to get data entry", err)
		}
		if err := tx.Delete(&entry).Error; err != nil {
			return constraintViolation("failed to delete data entry", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.ctx.Logger.Info("data entry deleted", zap.Int64("entry_id", id))
	return nil
}

// uidAvailable reports an AlreadyExists error when uid belongs to an entry
// other than excludeID.
func uidAvailable(tx *gorm.DB, uid string, excludeID int64) error {
	var existing entity.DataEntry
	query := tx.Where("uid = ?", uid)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.First(&existing).Error
	if err == nil {
		return alreadyExists("UID already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return constraintViolation("failed to check uid", err)
	}
	return nil
}
