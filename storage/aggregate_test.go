package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/internal/util"
)

func TestCountBy(t *testing.T) {
	store, _, _ := newTestStore(t)
	seedPostings(t, store, []seed{
		{title: "Go Dev", company: "Initech", location: "Remote", url: "https://a.com/1"},
		{title: "Go Dev", company: "Acme", location: "Remote", url: "https://a.com/2"},
		{title: "Rust Dev", company: "Acme", url: "https://a.com/3"},
		{title: "Zig Dev", company: "Globex", location: "Berlin", url: "https://a.com/4"},
	})
	ctx := context.Background()

	companies, err := store.CountBy(ctx, GroupCompany, 0)
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{{"Acme", 2}, {"Globex", 1}, {"Initech", 1}}, companies, "count desc, label asc")

	locations, err := store.CountBy(ctx, GroupLocation, 0)
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{{"Remote", 2}, {"Berlin", 1}}, locations, "NULL locations excluded")

	top, err := store.CountBy(ctx, GroupTitle, 1)
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{{"Go Dev", 2}}, top)

	empty, err := store.CountBy(ctx, GroupEmploymentType, 0)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCountBy_RejectsUnknownField(t *testing.T) {
	store, _, _ := newTestStore(t)
	_, err := store.CountBy(context.Background(), GroupField("url; DROP TABLE job_postings"), 0)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestTopN(t *testing.T) {
	store, _, _ := newTestStore(t)
	seeds := make([]seed, 0, 12)
	for i := 0; i < 12; i++ {
		seeds = append(seeds, seed{
			title:   "Role",
			company: string(rune('A'+i)) + " Corp",
			url:     "https://a.com/" + string(rune('a'+i)),
		})
	}
	seedPostings(t, store, seeds)

	top, err := store.TopN(context.Background(), GroupCompany)
	require.NoError(t, err)
	assert.Len(t, top, TopNLimit)
	assert.Equal(t, "A Corp", top[0].Label)
}

func TestSalarySample(t *testing.T) {
	store, _, _ := newTestStore(t)
	seedPostings(t, store, []seed{
		{title: "Single", min: util.Ptr(90000.0), max: util.Ptr(90000.0), url: "https://a.com/1"},
		{title: "Ranged", min: util.Ptr(50000.0), max: util.Ptr(70000.0), url: "https://a.com/2"},
		{title: "Min Only", min: util.Ptr(120000.0), url: "https://a.com/3"},
		{title: "Zero", min: util.Ptr(0.0), url: "https://a.com/4"},
		{title: "None", url: "https://a.com/5"},
	})

	sample, err := store.SalarySample(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []float64{90000, 50000, 120000}, sample.Values)
	assert.Equal(t, 4, sample.WithSalary)
	assert.Equal(t, 1, sample.Ranged)
}

func TestDescriptions(t *testing.T) {
	store, _, _ := newTestStore(t)
	saved := seedPostings(t, store, []seed{
		{title: "A1", description: "python", url: "https://a.com/1"},
		{title: "A2", url: "https://a.com/2"},
		{title: "A3", description: "docker", url: "https://a.com/3"},
	})
	require.NoError(t, store.SetActive(context.Background(), saved[2].ID, false))

	descriptions, err := store.Descriptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"python"}, descriptions)
}

func TestDailyCountsAndRecency(t *testing.T) {
	store, _, _ := newTestStore(t)
	seedPostings(t, store, []seed{
		{title: "T1", platform: "Indeed", posted: daysAgo(1), url: "https://a.com/1"},
		{title: "T2", platform: "LinkedIn", posted: daysAgo(1), url: "https://a.com/2"},
		{title: "T3", platform: "Indeed", posted: daysAgo(3), url: "https://a.com/3"},
		{title: "T4", platform: "Indeed", posted: daysAgo(20), url: "https://a.com/4"},
		{title: "T5", platform: "RemoteOK", url: "https://a.com/5"},
	})
	ctx := context.Background()
	cutoff := baseTime.AddDate(0, 0, -7)

	days, err := store.DailyCounts(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{{"2026-05-29", 1}, {"2026-05-31", 2}}, days)

	recent, err := store.CountSince(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, 3, recent)

	platforms, err := store.CountBySince(ctx, GroupPlatform, cutoff, 0)
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{{"Indeed", 2}, {"LinkedIn", 1}}, platforms)

	total, err := store.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
}

func TestGroupFieldValid(t *testing.T) {
	for _, f := range []GroupField{GroupTitle, GroupCompany, GroupLocation, GroupPlatform, GroupEmploymentType} {
		assert.True(t, f.Valid(), f)
	}
	assert.False(t, GroupField("url").Valid())
}
