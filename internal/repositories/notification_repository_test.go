package repositories_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"notifyhub_backend/internal/models"
	"notifyhub_backend/internal/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Notification{}))
	return db
}

func seedNotification(t *testing.T, db *gorm.DB, userID uint, title string, isRead bool, createdAt time.Time) *models.Notification {
	t.Helper()
	n := &models.Notification{
		UserID:  userID,
		Type:    models.NotificationTypeInfo,
		Title:   title,
		Content: "content of " + title,
		IsRead:  isRead,
	}
	require.NoError(t, db.Create(n).Error)
	if !createdAt.IsZero() {
		require.NoError(t, db.Model(n).Update("created_at", createdAt).Error)
		n.CreatedAt = createdAt
	}
	return n
}

func TestSave_AssignsGeneratedFields(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewNotificationRepository(db)

	n := &models.Notification{
		UserID:  1,
		Type:    models.NotificationTypeInfo,
		Title:   "hello",
		Content: "world",
	}
	require.NoError(t, repo.Save(n))
	assert.NotZero(t, n.ID)
	assert.False(t, n.CreatedAt.IsZero())
}

func TestFindByID(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewNotificationRepository(db)
	seeded := seedNotification(t, db, 1, "first", false, time.Time{})

	found, err := repo.FindByID(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)
	assert.Equal(t, "first", found.Title)

	_, err = repo.FindByID(99999)
	assert.ErrorIs(t, err, repositories.ErrNotificationNotFound)
}

func TestFindByUserID_NewestFirst(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewNotificationRepository(db)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	oldest := seedNotification(t, db, 5, "oldest", false, base)
	newest := seedNotification(t, db, 5, "newest", false, base.Add(2*time.Hour))
	middle := seedNotification(t, db, 5, "middle", false, base.Add(time.Hour))
	seedNotification(t, db, 6, "other user", false, base.Add(3*time.Hour))

	found, err := repo.FindByUserID(5)
	require.NoError(t, err)
	require.Len(t, found, 3)
	assert.Equal(t, newest.ID, found[0].ID)
	assert.Equal(t, middle.ID, found[1].ID)
	assert.Equal(t, oldest.ID, found[2].ID)
}

func TestFindByUserID_NoRows(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewNotificationRepository(db)

	found, err := repo.FindByUserID(404)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewNotificationRepository(db)
	seeded := seedNotification(t, db, 1, "to delete", false, time.Time{})

	require.NoError(t, repo.Delete(seeded.ID))
	_, err := repo.FindByID(seeded.ID)
	assert.ErrorIs(t, err, repositories.ErrNotificationNotFound)

	// Deleting again reports not found instead of silently succeeding.
	assert.ErrorIs(t, repo.Delete(seeded.ID), repositories.ErrNotificationNotFound)
}

func TestDeleteMultiple_ReportsAffected(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewNotificationRepository(db)
	a := seedNotification(t, db, 1, "a", false, time.Time{})
	b := seedNotification(t, db, 1, "b", false, time.Time{})
	keep := seedNotification(t, db, 1, "keep", false, time.Time{})

	// Missing ids are skipped, not errors.
	affected, err := repo.DeleteMultiple([]uint{a.ID, b.ID, 99999})
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	_, err = repo.FindByID(keep.ID)
	assert.NoError(t, err)
}

func TestDeleteMultiple_EmptyInput(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewNotificationRepository(db)

	affected, err := repo.DeleteMultiple(nil)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestUpdateMultiple_FlipsReadFlag(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewNotificationRepository(db)
	a := seedNotification(t, db, 2, "a", false, time.Time{})
	b := seedNotification(t, db, 2, "b", false, time.Time{})
	untouched := seedNotification(t, db, 2, "untouched", false, time.Time{})

	affected, err := repo.UpdateMultiple([]uint{a.ID, b.ID}, map[string]interface{}{"is_read": true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	for _, id := range []uint{a.ID, b.ID} {
		found, err := repo.FindByID(id)
		require.NoError(t, err)
		assert.True(t, found.IsRead)
	}
	found, err := repo.FindByID(untouched.ID)
	require.NoError(t, err)
	assert.False(t, found.IsRead)
}

func TestMarkAllRead(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewNotificationRepository(db)
	seedNotification(t, db, 3, "unread one", false, time.Time{})
	seedNotification(t, db, 3, "unread two", false, time.Time{})
	seedNotification(t, db, 3, "already read", true, time.Time{})
	seedNotification(t, db, 4, "other user", false, time.Time{})

	affected, err := repo.MarkAllRead(3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	count, err := repo.CountUnread(3)
	require.NoError(t, err)
	assert.Zero(t, count)

	otherCount, err := repo.CountUnread(4)
	require.NoError(t, err)
	assert.Equal(t, int64(1), otherCount)
}

func TestCountUnread(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewNotificationRepository(db)
	seedNotification(t, db, 7, "unread", false, time.Time{})
	seedNotification(t, db, 7, "read", true, time.Time{})

	count, err := repo.CountUnread(7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDeleteReadOlderThan(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewNotificationRepository(db)

	now := time.Now().UTC()
	oldRead := seedNotification(t, db, 8, "old read", true, now.Add(-72*time.Hour))
	oldUnread := seedNotification(t, db, 8, "old unread", false, now.Add(-72*time.Hour))
	freshRead := seedNotification(t, db, 8, "fresh read", true, now)

	removed, err := repo.DeleteReadOlderThan(now.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = repo.FindByID(oldRead.ID)
	assert.ErrorIs(t, err, repositories.ErrNotificationNotFound)
	_, err = repo.FindByID(oldUnread.ID)
	assert.NoError(t, err)
	_, err = repo.FindByID(freshRead.ID)
	assert.NoError(t, err)
}
