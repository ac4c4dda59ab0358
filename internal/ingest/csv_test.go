package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campuspulse/faculty-feedback-backend/internal/models"
)

func TestStudents(t *testing.T) {
	t.Run("parses valid rows", func(t *testing.T) {
		csv := "register_number,name,password,class_name\n" +
			"R001,Asha Verma,secret123,CS-A\n" +
			"R002,Benoit Laurent,hunter22,CS-B\n"

		students, rowErrs, err := Students(strings.NewReader(csv))

		assert.NoError(t, err)
		assert.Empty(t, rowErrs)
		assert.Equal(t, []models.StudentRequest{
			{RegisterNumber: "R001", Name: "Asha Verma", Password: "secret123", ClassName: "CS-A"},
			{RegisterNumber: "R002", Name: "Benoit Laurent", Password: "hunter22", ClassName: "CS-B"},
		}, students)
	})

	t.Run("bad rows are reported, good rows survive", func(t *testing.T) {
		csv := "register_number,name,password,class_name\n" +
			"R001,Asha Verma,secret123,CS-A\n" +
			"R002,X,short,CS-B\n" + // name too short, password too short
			"R003,Chidi Okafor,longenough,CS-A\n"

		students, rowErrs, err := Students(strings.NewReader(csv))

		assert.NoError(t, err)
		assert.Len(t, students, 2)
		assert.Len(t, rowErrs, 1)
		assert.Equal(t, 3, rowErrs[0].Line)
	})

	t.Run("wrong field count is a row error", func(t *testing.T) {
		csv := "register_number,name,password,class_name\n" +
			"R001,Asha Verma,secret123\n" +
			"R002,Benoit Laurent,hunter22,CS-B\n"

		students, rowErrs, err := Students(strings.NewReader(csv))

		assert.NoError(t, err)
		assert.Len(t, students, 1)
		assert.Len(t, rowErrs, 1)
	})

	t.Run("rejects wrong header", func(t *testing.T) {
		csv := "name,register_number,password,class_name\nAsha,R001,secret123,CS-A\n"

		_, _, err := Students(strings.NewReader(csv))

		assert.Error(t, err)
	})

	t.Run("rejects empty file", func(t *testing.T) {
		_, _, err := Students(strings.NewReader(""))

		assert.Error(t, err)
	})
}

func TestFaculties(t *testing.T) {
	csv := "faculty_id,name,password,department\n" +
		"101,Asha Verma,secret123,Computer Science\n"

	faculties, rowErrs, err := Faculties(strings.NewReader(csv))

	assert.NoError(t, err)
	assert.Empty(t, rowErrs)
	assert.Equal(t, []models.FacultyRequest{
		{FacultyID: "101", Name: "Asha Verma", Password: "secret123", Department: "Computer Science"},
	}, faculties)
}

func TestMappings(t *testing.T) {
	t.Run("parses and trims", func(t *testing.T) {
		csv := "class_name,faculty_id,subject\n" +
			"CS-A, 101 ,Data Structures\n"

		mappings, rowErrs, err := Mappings(strings.NewReader(csv))

		assert.NoError(t, err)
		assert.Empty(t, rowErrs)
		assert.Equal(t, []models.MappingRequest{
			{ClassName: "CS-A", FacultyID: "101", Subject: "Data Structures"},
		}, mappings)
	})

	t.Run("header is case-insensitive", func(t *testing.T) {
		csv := "Class_Name,Faculty_ID,Subject\nCS-A,101,Networks\n"

		mappings, _, err := Mappings(strings.NewReader(csv))

		assert.NoError(t, err)
		assert.Len(t, mappings, 1)
	})
}
