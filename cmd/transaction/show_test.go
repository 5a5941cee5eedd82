package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hance08/tally/internal/errors"
	"github.com/hance08/tally/internal/model"
)

func TestFindTransaction(t *testing.T) {
	txs := []model.Transaction{
		{ID: "lusab-babad-gutih-tugad-lusab-babad-gutih-tugad"},
		{ID: "lusab-babad-gutih-tugad-lusab-babad-gutih-tidab"},
		{ID: "lusab-babad-gutih-tugad-lusab-babad-gamon-tidab"},
	}

	tx, err := findTransaction(txs, string(txs[0].ID))
	require.NoError(t, err)
	assert.Equal(t, txs[0].ID, tx.ID)

	tx, err = findTransaction(txs, "…gutih-tugad")
	require.NoError(t, err)
	assert.Equal(t, txs[0].ID, tx.ID)

	_, err = findTransaction(txs, "tidab")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "2 transactions match")

	_, err = findTransaction(txs, "zuzuz")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
