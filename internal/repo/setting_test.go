package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingRepository_CRUD(t *testing.T) {
	repository, err := New(setupTestDB(t))
	require.NoError(t, err)
	ctx := t.Context()

	_, err = repository.GetSetting(ctx, "portfolio")
	require.ErrorIs(t, err, ErrSettingNotFound)

	require.NoError(t, repository.PutSetting(ctx, "portfolio", `{"cashBalance":10000}`))
	got, err := repository.GetSetting(ctx, "portfolio")
	require.NoError(t, err)
	assert.Equal(t, `{"cashBalance":10000}`, got.Value)
	assert.NotZero(t, got.ID)

	require.NoError(t, repository.PutSetting(ctx, "portfolio", `{"cashBalance":9000}`))
	got, err = repository.GetSetting(ctx, "portfolio")
	require.NoError(t, err)
	assert.Equal(t, `{"cashBalance":9000}`, got.Value)

	require.NoError(t, repository.PutSetting(ctx, "another", "x"))
	keys, err := repository.ListSettingKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"another", "portfolio"}, keys)

	require.NoError(t, repository.DeleteSetting(ctx, "portfolio"))
	_, err = repository.GetSetting(ctx, "portfolio")
	require.ErrorIs(t, err, ErrSettingNotFound)

	err = repository.DeleteSetting(ctx, "portfolio")
	require.ErrorIs(t, err, ErrSettingNotFound)
}
