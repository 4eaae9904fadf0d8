package scheduler

import (
	"context"
	"testing"

	errorRecordModel "hatatakip_backend/internals/features/error_records/model"
	statsService "hatatakip_backend/internals/features/stats/service"
	"hatatakip_backend/internals/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeepAliveRun(t *testing.T) {
	db := testutil.NewDB(t)
	s := testutil.CreateStudent(t, db, "Ayşe", "Yılmaz", nil)
	testutil.CreateErrorRecord(t, db, s.StudentID, "Kesir hatası", testutil.WithStatus(errorRecordModel.StatusResolved))

	k := &KeepAlive{DB: db, Stats: statsService.NewStatsService(db)}
	require.NoError(t, k.Run(context.Background()))
}

func TestKeepAliveRunClosedDB(t *testing.T) {
	db := testutil.NewDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	k := &KeepAlive{DB: db}
	assert.Error(t, k.Run(context.Background()))
}

func TestStart(t *testing.T) {
	db := testutil.NewDB(t)
	k := &KeepAlive{DB: db}

	c, err := Start("", k)
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = Start("her gün", k)
	assert.Error(t, err)

	c, err = Start("@every 1h", k)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Len(t, c.Entries(), 1)
	<-c.Stop().Done()
}
