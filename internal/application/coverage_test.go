package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsCovered_WeekendOnlySkipsStore(t *testing.T) {
	t.Parallel()
	st := newFakeStore()
	c := NewCoverageChecker(st)

	ok, err := c.IsCovered(context.Background(), "USD", mustRange("2022-01-01", "2022-01-02"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Zero(t, st.existsCalls)
}

func TestIsCovered_AllBusinessDaysStored(t *testing.T) {
	t.Parallel()
	st := newFakeStore()
	for _, d := range []string{"2022-01-03", "2022-01-04", "2022-01-05", "2022-01-06", "2022-01-07"} {
		st.put("USD", d, "4.00")
	}
	c := NewCoverageChecker(st)
	r := mustRange("2022-01-01", "2022-01-09")

	ok, err := c.IsCovered(context.Background(), "USD", r)
	require.NoError(t, err)
	require.True(t, ok)

	// Another currency has nothing stored.
	ok, err = c.IsCovered(context.Background(), "EUR", r)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestIsCovered_RemovingAnyBusinessDayFlips(t *testing.T) {
	t.Parallel()
	days := []string{"2022-01-03", "2022-01-04", "2022-01-05", "2022-01-06", "2022-01-07"}
	r := mustRange("2022-01-03", "2022-01-07")
	for _, gone := range days {
		st := newFakeStore()
		for _, d := range days {
			if d != gone {
				st.put("USD", d, "4.00")
			}
		}
		ok, err := NewCoverageChecker(st).IsCovered(context.Background(), "USD", r)
		require.NoError(t, err)
		require.False(t, ok, "missing %s", gone)
	}
}

func TestIsCovered_EndDayIncluded(t *testing.T) {
	t.Parallel()
	st := newFakeStore()
	st.put("USD", "2022-01-03", "4.00")
	ok, err := NewCoverageChecker(st).IsCovered(context.Background(), "USD", mustRange("2022-01-03", "2022-01-04"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMissing_Limit(t *testing.T) {
	t.Parallel()
	c := NewCoverageChecker(newFakeStore())
	r := mustRange("2022-01-03", "2022-01-07")

	all, err := c.Missing(context.Background(), "USD", r, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"2022-01-03", "2022-01-04", "2022-01-05", "2022-01-06", "2022-01-07"}, all)

	first, err := c.Missing(context.Background(), "USD", r, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"2022-01-03", "2022-01-04"}, first)
}

func TestIsCovered_StoreError(t *testing.T) {
	t.Parallel()
	st := newFakeStore()
	st.err = ErrRepo
	_, err := NewCoverageChecker(st).IsCovered(context.Background(), "USD", mustRange("2022-01-03", "2022-01-04"))
	require.ErrorIs(t, err, ErrRepo)
}
