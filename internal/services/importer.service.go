package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"transferregistry/internal/appcontext"
)

// Row is one tabular record keyed by normalized column name.
type Row map[string]string

type ImportOptions struct {
	// CreateMissingCompanies makes name references resolve-or-create instead
	// of failing the row when the company does not exist yet.
	CreateMissingCompanies bool
}

type ImportResult struct {
	RunID    string   `json:"run_id"`
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

// ImportService reconciles tabular batches against the registry. It is a
// client of the company and data entry services: each row is resolved,
// validated, and committed independently, so one bad row never aborts the
// batch.
type ImportService struct {
	ctx       *appcontext.Context
	companies *CompanyService
	entries   *DataEntryService
}

func NewImportService(ctx *appcontext.Context, companies *CompanyService, entries *DataEntryService) *ImportService {
	return &ImportService{ctx: ctx, companies: companies, entries: entries}
}

// ImportRows processes rows in order. Row numbers in error messages are
// 1-based positions within the batch.
func (s *ImportService) ImportRows(ctx context.Context, rows []Row, opts ImportOptions) ImportResult {
	result := ImportResult{
		RunID:  uuid.New().String(),
		Errors: make([]string, 0),
	}

	for i, row := range rows {
		if err := s.importRow(ctx, row, opts); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", i+1, err.Error()))
			continue
		}
		result.Imported++
	}

	s.ctx.Logger.Info("batch import finished",
		zap.String("run_id", result.RunID),
		zap.Int("rows", len(rows)),
		zap.Int("imported", result.Imported),
		zap.Int("failed", len(result.Errors)),
	)
	return result
}

func (s *ImportService) importRow(ctx context.Context, row Row, opts ImportOptions) error {
	companyID, err := s.resolveCompany(ctx, row, opts)
	if err != nil {
		return err
	}
	if companyID == 0 {
		return invalidArgument("company_id is required")
	}
	if row["uid"] == "" {
		return invalidArgument("uid is required")
	}

	_, err = s.entries.Create(ctx, CreateEntryInput{
		CompanyID:   companyID,
		DeviceType:  row["device_type"],
		UID:         row["uid"],
		DataType:    row["data_type"],
		DataSet:     row["data_set"],
		DataGoingTo: row["data_going_to"],
	})
	return err
}

// resolveCompany turns a row's company reference into a company ID. A direct
// company_id wins; otherwise a company name is looked up and, when the
// create-missing mode is on, created on the fly.
func (s *ImportService) resolveCompany(ctx context.Context, row Row, opts ImportOptions) (int64, error) {
	if raw := row["company_id"]; raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, invalidArgument("invalid company_id '%s'", raw)
		}
		return id, nil
	}

	name := row["company"]
	if name == "" {
		return 0, nil
	}

	company, err := s.companies.GetByName(ctx, name)
	if err == nil {
		return company.ID, nil
	}
	if KindOf(err) != KindNotFound {
		return 0, err
	}
	if !opts.CreateMissingCompanies {
		return 0, notFound("Company '%s' not found", name)
	}

	created, err := s.companies.Create(ctx, name)
	if err != nil {
		// Lost a create race: another row or request inserted the name first.
		if KindOf(err) == KindAlreadyExists {
			return s.companyIDByName(ctx, name)
		}
		return 0, err
	}
	return created.ID, nil
}

func (s *ImportService) companyIDByName(ctx context.Context, name string) (int64, error) {
	company, err := s.companies.GetByName(ctx, name)
	if err != nil {
		return 0, err
	}
	return company.ID, nil
}
