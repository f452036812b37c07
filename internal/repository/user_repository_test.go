package repository

import (
	"testing"
	"time"

	"blog-system/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// newMockDB 基于sqlmock构造gorm连接，配置与生产保持一致（单数表名、跳过默认事务）
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		NamingStrategy:         schema.NamingStrategy{SingularTable: true},
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "username", "password_hash", "photo", "wallpaper", "bio",
		"created_at", "updated_at", "deleted_at",
	})
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM `user` WHERE username = \\?").
			WillReturnRows(userRows().AddRow(
				1, "alice", "$2a$10$hash", "me.png", "", "hello",
				time.Now(), time.Now(), nil,
			))

		user, err := repo.GetByUsername("alice")
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "me.png", user.Photo)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM `user` WHERE username = \\?").
			WillReturnRows(userRows())

		_, err := repo.GetByUsername("nobody")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ExistsByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	t.Run("Taken", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM `user` WHERE username = \\?").
			WillReturnRows(userRows().AddRow(
				1, "alice", "$2a$10$hash", "", "", "",
				time.Now(), time.Now(), nil,
			))

		exists, err := repo.ExistsByUsername("alice")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Free", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM `user` WHERE username = \\?").
			WillReturnRows(userRows())

		exists, err := repo.ExistsByUsername("bob")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO `user`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	user := &model.User{Username: "alice", PasswordHash: "$2a$10$hash"}
	require.NoError(t, repo.Create(user))
	assert.Equal(t, uint(1), user.ID, "auto increment id must be written back")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SearchByUsernameExcluding(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	// 模糊匹配并排除指定ID集合
	mock.ExpectQuery("SELECT \\* FROM `user` WHERE username LIKE \\? AND id NOT IN").
		WillReturnRows(userRows().
			AddRow(3, "carol", "$2a$10$hash", "", "", "", time.Now(), time.Now(), nil).
			AddRow(4, "caroline", "$2a$10$hash", "", "", "", time.Now(), time.Now(), nil))

	users, err := repo.SearchByUsernameExcluding("car", []uint{1, 2})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "carol", users[0].Username)
	assert.Equal(t, "caroline", users[1].Username)

	assert.NoError(t, mock.ExpectationsWereMet())
}
