package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SeedUser is one row of a user seed file
type SeedUser struct {
	Line     int
	Username string
	Email    string
	Password string
	Points   int
}

// ReadSeedUsers parses a CSV with username, email, password and points columns.
// Header names are matched case-insensitively; points is optional. Rows that cannot be
// parsed are reported in rowErrs and skipped.
func ReadSeedUsers(r io.Reader) (users []SeedUser, rowErrs []error, err error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	usernameIdx := findColumnIndex(header, []string{"username", "user", "name"})
	emailIdx := findColumnIndex(header, []string{"email", "e-mail"})
	passwordIdx := findColumnIndex(header, []string{"password"})
	pointsIdx := findColumnIndex(header, []string{"points", "balance", "opening balance"})

	if usernameIdx == -1 || emailIdx == -1 || passwordIdx == -1 {
		return nil, nil, errors.New("username, email and password columns are required")
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("line %d: %w", line, err))
			continue
		}

		user := SeedUser{
			Line:     line,
			Username: column(record, usernameIdx),
			Email:    column(record, emailIdx),
			Password: column(record, passwordIdx),
		}
		if user.Username == "" || user.Email == "" || user.Password == "" {
			rowErrs = append(rowErrs, fmt.Errorf("line %d: missing username, email or password", line))
			continue
		}
		if raw := column(record, pointsIdx); raw != "" {
			points, err := strconv.Atoi(raw)
			if err != nil || points < 0 {
				rowErrs = append(rowErrs, fmt.Errorf("line %d: invalid points %q", line, raw))
				continue
			}
			user.Points = points
		}
		users = append(users, user)
	}
	return users, rowErrs, nil
}

func column(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// findColumnIndex finds the index of a column in the header
func findColumnIndex(header []string, possibleNames []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, name := range possibleNames {
			if strings.ToLower(name) == h {
				return i
			}
		}
	}
	return -1
}
