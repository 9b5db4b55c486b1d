package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"transferregistry/internal/appcontext"
	"transferregistry/internal/entity"
)

type CompanyService struct {
	ctx *appcontext.Context
}

func NewCompanyService(ctx *appcontext.Context) *CompanyService {
	return &CompanyService{ctx: ctx}
}

// List returns all companies in primary key order.
func (s *CompanyService) List(ctx context.Context) ([]entity.Company, error) {
	companies := make([]entity.Company, 0)
	if err := s.ctx.DB.WithContext(ctx).Order("id").Find(&companies).Error; err != nil {
		return nil, constraintViolation("failed to list companies", err)
	}
	return companies, nil
}

func (s *CompanyService) Get(ctx context.Context, id int64) (*entity.Company, error) {
	var company entity.Company
	if err := s.ctx.DB.WithContext(ctx).First(&company, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Company not found")
		}
		return nil, constraintViolation("failed to get company", err)
	}
	return &company, nil
}

// GetByName resolves a company by exact, case-sensitive name match.
func (s *CompanyService) GetByName(ctx context.Context, name string) (*entity.Company, error) {
	var company entity.Company
	if err := s.ctx.DB.WithContext(ctx).Where("name = ?", name).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Company '%s' not found", name)
		}
		return nil, constraintViolation("failed to get company by name", err)
	}
	return &company, nil
}

// Create inserts a new company. The unique index on name is the authoritative
// guard against duplicates; the lookup beforehand only produces a friendlier
// error for the common case.
func (s *CompanyService) Create(ctx context.Context, name string) (*entity.Company, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalidArgument("Company name is required")
	}

	company := entity.Company{Name: name}
	err := s.ctx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entity.Company
		err := tx.Where("name = ?", name).First(&existing).Error
		if err == nil {
			return alreadyExists("Company already exists")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return constraintViolation("failed to check existing company", err)
		}
		if err := tx.Create(&company).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return alreadyExists("Company already exists")
			}
			return constraintViolation("failed to create company", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.ctx.Logger.Info("company created", zap.Int64("company_id", company.ID), zap.String("name", company.Name))
	return &company, nil
}

// Delete removes a company and all of its data entries in one transaction.
func (s *CompanyService) Delete(ctx context.Context, id int64) error {
	err := s.ctx.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var company entity.Company
		if err := tx.First(&company, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Company not found")
			}
			return constraintViolation("failed to get company", err)
		}
		if err := tx.Where("company_id = ?", id).Delete(&entity.DataEntry{}).Error; err != nil {
			return constraintViolation("failed to delete company data entries", err)
		}
		if err := tx.Delete(&company).Error; err != nil {
			return constraintViolation("failed to delete company", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.ctx.Logger.Info("company deleted", zap.Int64("company_id", id))
	return nil
}
