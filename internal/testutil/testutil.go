// Package testutil holds fixtures shared by package tests: an in-memory
// SQLite database with the full schema and helpers that seed it.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/job_board/internal/models"
	"github.com/Skotchmaster/job_board/pkg/db"
	"github.com/Skotchmaster/job_board/pkg/hash"
)

const Password = "Abcd123!"

func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(context.Background(), db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	require.NoError(t, db.Migrate(gdb, models.All()...))
	return gdb
}

// CreateUser inserts a user whose password is Password.
func CreateUser(t *testing.T, gdb *gorm.DB, email, role string) *models.User {
	t.Helper()

	pw, err := hash.HashPassword(Password)
	require.NoError(t, err)

	u := &models.User{Email: email, PasswordHash: pw, Name: email, Role: role}
	require.NoError(t, gdb.Create(u).Error)
	return u
}

func CreateCompany(t *testing.T, gdb *gorm.DB, ownerID, name string) *models.Company {
	t.Helper()

	c := &models.Company{OwnerID: ownerID, Name: name, Description: name + " company"}
	require.NoError(t, gdb.Create(c).Error)
	return c
}

func CreateJob(t *testing.T, gdb *gorm.DB, company *models.Company, title string) *models.Job {
	t.Helper()

	j := &models.Job{
		CompanyID:      company.ID,
		PostedBy:       company.OwnerID,
		Title:          title,
		Description:    title + " role",
		Location:       "Berlin",
		EmploymentType: "full-time",
		Status:         models.JobOpen,
	}
	require.NoError(t, gdb.Create(j).Error)
	return j
}
