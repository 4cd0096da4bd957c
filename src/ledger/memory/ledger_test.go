package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/clientledger/src/ledger"
	"github.com/username/clientledger/src/models"
)

func TestEnsureSheetsExistIsIdempotent(t *testing.T) {
	ctx := context.Background()
	l := New()

	require.NoError(t, l.EnsureSheetsExist(ctx, models.DefaultSheetSchemas()))
	require.NoError(t, l.AppendRecord(ctx, models.SheetInside, []string{"a"}))
	require.NoError(t, l.EnsureSheetsExist(ctx, models.DefaultSheetSchemas()))

	assert.Equal(t, []string{models.SheetInside, models.SheetOutside}, l.SheetNames())
	assert.Equal(t, models.InsideHeaders, l.Header(models.SheetInside))
	assert.Equal(t, models.OutsideHeaders, l.Header(models.SheetOutside))
	assert.Equal(t, [][]string{{"a"}}, l.Rows(models.SheetInside))
}

func TestAppendRecordFailures(t *testing.T) {
	ctx := context.Background()
	l := New()

	err := l.AppendRecord(ctx, "Missing", []string{"x"})
	assert.True(t, errors.Is(err, ledger.ErrAppendFailed))

	require.NoError(t, l.EnsureSheetsExist(ctx, models.DefaultSheetSchemas()))
	l.FailAppend = map[string]error{models.SheetOutside: errors.New("quota exceeded")}

	require.NoError(t, l.AppendRecord(ctx, models.SheetInside, []string{"ok"}))
	err = l.AppendRecord(ctx, models.SheetOutside, []string{"lost"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrAppendFailed)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Empty(t, l.Rows(models.SheetOutside))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, l.AppendRecord(cancelled, models.SheetInside, []string{"late"}), ledger.ErrAppendFailed)
	assert.Len(t, l.Rows(models.SheetInside), 1)
}

func TestConnect(t *testing.T) {
	l := New()
	got, err := l.Connect(context.Background())
	require.NoError(t, err)
	assert.Same(t, l, got)

	l.FailConnect = errors.New("no credentials")
	_, err = l.Connect(context.Background())
	assert.ErrorIs(t, err, ledger.ErrNotConnected)
	assert.Equal(t, 2, l.Connects())
}
