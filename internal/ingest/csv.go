package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/campuspulse/faculty-feedback-backend/internal/models"
	"github.com/campuspulse/faculty-feedback-backend/utils"
)

// Bulk upload CSV header orders are fixed; a file with any other header is
// rejected outright rather than guessed at.
var (
	studentHeader = []string{"register_number", "name", "password", "class_name"}
	facultyHeader = []string{"faculty_id", "name", "password", "department"}
	mappingHeader = []string{"class_name", "faculty_id", "subject"}
)

// RowError reports one rejected CSV row. Line is 1-based and counts the
// header, matching what the admin sees in a spreadsheet.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Line, e.Message)
}

// Students parses a roster upload. Rows that fail validation are reported
// individually; the remaining rows are still returned so a single typo does
// not void a whole roster.
func Students(r io.Reader) ([]models.StudentRequest, []RowError, error) {
	rows, rowErrs, err := read(r, studentHeader)
	if err != nil {
		return nil, nil, err
	}

	students := make([]models.StudentRequest, 0, len(rows))
	for _, row := range rows {
		req := models.StudentRequest{
			RegisterNumber: row.fields[0],
			Name:           row.fields[1],
			Password:       row.fields[2],
			ClassName:      row.fields[3],
		}
		if err := utils.Validate.Struct(req); err != nil {
			rowErrs = append(rowErrs, RowError{Line: row.line, Message: err.Error()})
			continue
		}
		students = append(students, req)
	}
	return students, rowErrs, nil
}

// Faculties parses a staff upload.
func Faculties(r io.Reader) ([]models.FacultyRequest, []RowError, error) {
	rows, rowErrs, err := read(r, facultyHeader)
	if err != nil {
		return nil, nil, err
	}

	faculties := make([]models.FacultyRequest, 0, len(rows))
	for _, row := range rows {
		req := models.FacultyRequest{
			FacultyID:  row.fields[0],
			Name:       row.fields[1],
			Password:   row.fields[2],
			Department: row.fields[3],
		}
		if err := utils.Validate.Struct(req); err != nil {
			rowErrs = append(rowErrs, RowError{Line: row.line, Message: err.Error()})
			continue
		}
		faculties = append(faculties, req)
	}
	return faculties, rowErrs, nil
}

// Mappings parses a class-faculty-subject upload.
func Mappings(r io.Reader) ([]models.MappingRequest, []RowError, error) {
	rows, rowErrs, err := read(r, mappingHeader)
	if err != nil {
		return nil, nil, err
	}

	mappings := make([]models.MappingRequest, 0, len(rows))
	for _, row := range rows {
		req := models.MappingRequest{
			ClassName: row.fields[0],
			FacultyID: row.fields[1],
			Subject:   row.fields[2],
		}
		if err := utils.Validate.Struct(req); err != nil {
			rowErrs = append(rowErrs, RowError{Line: row.line, Message: err.Error()})
			continue
		}
		mappings = append(mappings, req)
	}
	return mappings, rowErrs, nil
}

type row struct {
	line   int
	fields []string
}

func read(r io.Reader, header []string) ([]row, []RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(header)
	reader.TrimLeadingSpace = true

	first, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("empty file, expected header %q", strings.Join(header, ","))
	}
	if err != nil {
		return nil, nil, err
	}
	for i, col := range first {
		if i >= len(header) || strings.TrimSpace(strings.ToLower(col)) != header[i] {
			return nil, nil, fmt.Errorf("unexpected header %q, expected %q",
				strings.Join(first, ","), strings.Join(header, ","))
		}
	}

	var rows []row
	var rowErrs []RowError
	line := 1
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				rowErrs = append(rowErrs, RowError{Line: line, Message: perr.Err.Error()})
				continue
			}
			return nil, nil, err
		}
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		rows = append(rows, row{line: line, fields: record})
	}
	return rows, rowErrs, nil
}
