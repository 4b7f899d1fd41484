package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chargefit/reconcile-backend/internal/domain/fitter"
)

func TestReadRows(t *testing.T) {
	t.Run("parses plain records", func(t *testing.T) {
		input := "10,1,2,3,4,5,6\n5,10,15,20\n"

		rows, lineErrs, err := ReadRows(strings.NewReader(input))
		require.NoError(t, err)
		assert.Empty(t, lineErrs)

		require.Len(t, rows, 2)
		assert.Equal(t, fitter.Row{Target: 10, Candidates: []float64{1, 2, 3, 4, 5, 6}}, rows[0])
		assert.Equal(t, fitter.Row{Target: 5, Candidates: []float64{10, 15, 20}}, rows[1])
	})

	t.Run("skips a header record", func(t *testing.T) {
		input := "target,charges\n15,5,10,3,7\n"

		rows, lineErrs, err := ReadRows(strings.NewReader(input))
		require.NoError(t, err)
		assert.Empty(t, lineErrs)

		require.Len(t, rows, 1)
		assert.Equal(t, 15.0, rows[0].Target)
	})

	t.Run("reports invalid rows per line", func(t *testing.T) {
		input := strings.Join([]string{
			"10,1,2,3",
			"-5,1,2",           // non-positive target
			"10,1,abc",         // malformed candidate
			"10,1,2,3,4,5,6,7,8,9,10,11,12,13", // too many candidates
			"20,4,4,4",
		}, "\n")

		rows, lineErrs, err := ReadRows(strings.NewReader(input))
		require.NoError(t, err)

		require.Len(t, rows, 2)
		assert.Equal(t, 10.0, rows[0].Target)
		assert.Equal(t, 20.0, rows[1].Target)

		require.Len(t, lineErrs, 3)
		assert.Equal(t, 2, lineErrs[0].Line)
		assert.Contains(t, lineErrs[0].Reason, "not positive")
		assert.Equal(t, 3, lineErrs[1].Line)
		assert.Contains(t, lineErrs[1].Reason, "abc")
		assert.Equal(t, 4, lineErrs[2].Line)
		assert.Contains(t, lineErrs[2].Reason, "maximum")
	})

	t.Run("row with only a target is valid", func(t *testing.T) {
		rows, lineErrs, err := ReadRows(strings.NewReader("10\n"))
		require.NoError(t, err)
		assert.Empty(t, lineErrs)

		require.Len(t, rows, 1)
		assert.Empty(t, rows[0].Candidates)
	})

	t.Run("empty input yields no rows", func(t *testing.T) {
		rows, lineErrs, err := ReadRows(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, rows)
		assert.Empty(t, lineErrs)
	})
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")
	require.NoError(t, os.WriteFile(path, []byte("target,charges\n10,3,3,4,4,5\n"), 0o644))

	rows, lineErrs, err := ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, lineErrs)
	require.Len(t, rows, 1)
	assert.Equal(t, []float64{3, 3, 4, 4, 5}, rows[0].Candidates)

	_, _, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
