package audit

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/DhavalSuthar-24/scoutnet/internal/models"
	"github.com/DhavalSuthar-24/scoutnet/pkg/logger"
)

// Recorder appends audit rows without ever failing the calling operation.
type Recorder interface {
	Record(ctx context.Context, entry SystemLog)
}

// Trail is the audit surface the admin console uses.
type Trail interface {
	Recorder
	List(ctx context.Context, filter Filter, page models.Page) ([]SystemLog, int64, error)
	ExportXLSX(ctx context.Context, filter Filter) (*bytes.Buffer, error)
}

type AuditService struct {
	repo AuditRepository
}

func NewAuditService(repo AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

func (s *AuditService) Record(ctx context.Context, entry SystemLog) {
	logger.BestEffort(ctx, "audit:"+string(entry.Action), func() error {
		if !entry.Action.IsValid() {
			return fmt.Errorf("invalid audit action %q", entry.Action)
		}
		return s.repo.Create(ctx, &entry)
	})
}

func (s *AuditService) List(ctx context.Context, filter Filter, page models.Page) ([]SystemLog, int64, error) {
	logs, total, err := s.repo.List(ctx, filter, page)
	if logs == nil {
		logs = []SystemLog{}
	}
	return logs, total, err
}

var exportHeader = []any{"ID", "Created At", "Actor ID", "Action", "Entity Type", "Entity ID", "Details", "IP Address"}

// ExportXLSX renders the filtered audit trail as a single-sheet workbook.
func (s *AuditService) ExportXLSX(ctx context.Context, filter Filter) (*bytes.Buffer, error) {
	logs, err := s.repo.All(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Audit Log"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return nil, err
	}
	for i, l := range logs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			l.ID,
			l.CreatedAt.UTC().Format(time.RFC3339),
			l.ActorID,
			string(l.Action),
			l.EntityType,
			l.EntityID,
			l.Details,
			l.IPAddress,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(sheet, "B", "B", 22); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "G", "G", 60); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}
