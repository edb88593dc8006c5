package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viralforge/campaign-marketplace/internal/adapters/postgres"
	"github.com/viralforge/campaign-marketplace/internal/domain"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockRepos(t *testing.T) (postgres.Repositories, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	dialector := pgdriver.New(pgdriver.Config{
		Conn:       db,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return postgres.NewRepositories(gormDB), mock
}

func TestDeleteCascadeRunsInOneTransaction(t *testing.T) {
	repos, mock := setupMockRepos(t)
	campaignID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "campaign_applications" WHERE campaign_id = \$1`).
		WithArgs(campaignID.String()).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "campaigns" WHERE campaign_id = \$1`).
		WithArgs(campaignID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := repos.Campaigns.DeleteCascade(context.Background(), campaignID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCascadeRollsBackWhenCampaignMissing(t *testing.T) {
	repos, mock := setupMockRepos(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "campaign_applications"`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "campaigns"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repos.Campaigns.DeleteCascade(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpireActiveBeforeIsSingleReturningUpdate(t *testing.T) {
	repos, mock := setupMockRepos(t)
	expiredID := uuid.New()

	mock.ExpectQuery(`UPDATE "campaigns" SET .* WHERE .*end_date < .* RETURNING "campaign_id"`).
		WillReturnRows(sqlmock.NewRows([]string{"campaign_id"}).AddRow(expiredID.String()))

	ids, err := repos.Campaigns.ExpireActiveBefore(context.Background(), baseTime)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{expiredID}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByTokenIdentifierMapsMissingRow(t *testing.T) {
	repos, mock := setupMockRepos(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE token_identifier = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "token_identifier", "email", "role", "created_at", "updated_at"}))

	_, err := repos.Users.GetByTokenIdentifier(context.Background(), "tok-missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrationsExecutesFilesWithoutPreparing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(pgdriver.New(pgdriver.Config{Conn: db, DriverName: "postgres"}), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	require.NoError(t, err)

	mock.ExpectExec(`(?s)CREATE TABLE IF NOT EXISTS users.*CREATE TABLE IF NOT EXISTS campaigns`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	applied, err := postgres.RunMigrations(context.Background(), gormDB)
	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}
