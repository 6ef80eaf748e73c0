package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"recruitcrm/internal/common"

	"github.com/xuri/excelize/v2"
)

const (
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportURLExpiry  = 15 * time.Minute
	maxSheetTabChars = 31
)

var exportHeader = []interface{}{"Candidate Name", "Email", "Status", "Created At", "Updated At"}

// SheetExport is a rendered workbook. URL is set when the file was uploaded to object storage.
type SheetExport struct {
	FileName    string
	ContentType string
	Content     []byte
	URL         string
	Rows        int
}

type ExportService interface {
	// ExportSheet renders the sheet as XLSX. When upload is true and storage is configured the
	// workbook is stored and a presigned URL returned alongside the content.
	ExportSheet(ctx context.Context, tenantID, clientName, jobTitle string, upload bool) (*SheetExport, error)
}

type exportService struct {
	sheets  SheetService
	storage ObjectStorage
}

// NewExportService accepts a nil storage; exports are then only streamed
func NewExportService(sheets SheetService, storage ObjectStorage) ExportService {
	return &exportService{sheets: sheets, storage: storage}
}

func (s *exportService) ExportSheet(ctx context.Context, tenantID, clientName, jobTitle string, upload bool) (*SheetExport, error) {
	rows, err := s.sheets.List(ctx, tenantID, clientName, jobTitle)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	tab := sheetTabName(strings.TrimSpace(clientName) + " " + strings.TrimSpace(jobTitle))
	if err := f.SetSheetName("Sheet1", tab); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(tab, "A1", &exportHeader); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(tab, "A1", "E1", bold); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []interface{}{
			row.CandidateName,
			row.Email,
			row.Status,
			row.CreatedAt.Format(time.RFC3339),
			row.UpdatedAt.Format(time.RFC3339),
		}
		if err := f.SetSheetRow(tab, cell, &values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	sheetName := strings.TrimSpace(clientName) + "_" + strings.TrimSpace(jobTitle)
	export := &SheetExport{
		FileName:    fmt.Sprintf("%s-%d.xlsx", safeFileName(sheetName), time.Now().Unix()),
		ContentType: xlsxContentType,
		Content:     buf.Bytes(),
		Rows:        len(rows),
	}

	if upload && s.storage != nil {
		objectName := tenantID + "/" + export.FileName
		if err := s.storage.Upload(ctx, objectName, bytes.NewReader(export.Content), int64(len(export.Content)), xlsxContentType); err != nil {
			// the file can still be streamed
			common.LoggerFromContext(ctx).WithError(err).WithField("object", objectName).Warn("sheet export upload failed")
			return export, nil
		}
		url, err := s.storage.PresignedURL(ctx, objectName, exportURLExpiry)
		if err != nil {
			common.LoggerFromContext(ctx).WithError(err).WithField("object", objectName).Warn("presigning sheet export failed")
			return export, nil
		}
		export.URL = url
	}
	return export, nil
}

// sheetTabName strips characters Excel rejects in tab names and truncates to the tab limit
func sheetTabName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		name = "Candidates"
	}
	if r := []rune(name); len(r) > maxSheetTabChars {
		name = string(r[:maxSheetTabChars])
	}
	return name
}

func safeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '-'
	}, name)
}
