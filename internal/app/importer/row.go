// Package importer turns an uploaded roster file into student and teacher accounts.
//
// The pipeline is parse -> NormalizeRow -> Validate -> natural key check -> default
// credential -> persist, run row by row in file order. Row failures are collected and never
// abort the batch; only an unreadable file does.
package importer

import "strings"

// Row is one parsed roster record keyed by column name
type Row map[string]string

const byteOrderMark = "\uFEFF"

// Recognized roster columns
const (
	FieldName            = "name"
	FieldRollNo          = "rollNo"
	FieldTeacherID       = "teacherId"
	FieldDepartment      = "department"
	FieldSection         = "section"
	FieldYear            = "year"
	FieldEmail           = "email"
	FieldRole            = "role"
	FieldClassTeacher    = "classTeacher"
	FieldAssignedSection = "assignedSection"
	FieldAssignedYear    = "assignedYear"
)

// NormalizeHeader strips a byte-order mark and applies value normalization to a column name
func NormalizeHeader(header string) string {
	return normalizeValue(strings.TrimPrefix(header, byteOrderMark))
}

// normalizeValue trims whitespace and drops one trailing comma left over from the export format
func normalizeValue(value string) string {
	return strings.TrimSuffix(strings.TrimSpace(value), ",")
}

// NormalizeRow cleans a raw parsed record. It never fails; bad content is left for Validate.
func NormalizeRow(raw map[string]string) Row {
	row := make(Row, len(raw))
	for column, value := range raw {
		key := NormalizeHeader(column)
		if key == "" {
			continue
		}
		row[key] = normalizeValue(value)
	}
	if role, ok := row[FieldRole]; ok {
		row[FieldRole] = strings.ToLower(role)
	}
	return row
}

// Get returns the value of field, or "" when the column is absent
func (r Row) Get(field string) string {
	return r[field]
}

// Clone returns a copy of the row
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
