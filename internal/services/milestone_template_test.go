package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateReferencePlan(t *testing.T) {
	tmpl, err := NewMilestoneTemplate(nil)
	require.NoError(t, err)

	defs, err := tmpl.Generate(day(2024, 1, 1), day(2024, 2, 4))
	require.NoError(t, err)
	require.Len(t, defs, 7)

	byKey := map[string]time.Time{}
	for i, d := range defs {
		assert.Equal(t, i+1, d.SequenceIndex)
		byKey[d.Key] = d.DueDate
	}
	assert.Equal(t, day(2024, 1, 15), byKey["due_diligence_complete"])
	assert.Equal(t, day(2024, 2, 4), byKey["closing"])
	assert.Equal(t, day(2024, 1, 4), byKey["nda_execution"])

	var critical []string
	for _, d := range defs {
		if d.IsCritical {
			critical = append(critical, d.Key)
		}
	}
	assert.Equal(t, DefaultCriticalKeys, critical)
}

func TestGenerateScalesAndStaysOrdered(t *testing.T) {
	tmpl, err := NewMilestoneTemplate(nil)
	require.NoError(t, err)

	cases := []struct {
		span    int
		offsets []int
	}{
		{10, []int{1, 2, 4, 6, 8, 9, 10}},
		{1, []int{0, 0, 0, 1, 1, 1, 1}},
		{68, []int{6, 14, 28, 42, 56, 64, 68}},
	}
	for _, tc := range cases {
		start := day(2024, 3, 1)
		defs, err := tmpl.Generate(start, start.AddDate(0, 0, tc.span))
		require.NoError(t, err)
		got := make([]int, len(defs))
		for i, d := range defs {
			got[i] = d.OffsetDays
			assert.Equal(t, start.AddDate(0, 0, d.OffsetDays), d.DueDate)
		}
		assert.Equal(t, tc.offsets, got, "span %d", tc.span)
	}
}

func TestGenerateIgnoresTimeOfDay(t *testing.T) {
	tmpl, err := NewMilestoneTemplate(nil)
	require.NoError(t, err)

	defs, err := tmpl.Generate(time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC), time.Date(2024, 2, 4, 1, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, day(2024, 2, 4), defs[len(defs)-1].DueDate)
}

func TestGenerateRejectsEmptySpan(t *testing.T) {
	tmpl, err := NewMilestoneTemplate(nil)
	require.NoError(t, err)

	for _, closing := range []time.Time{day(2024, 1, 1), day(2023, 12, 1)} {
		_, err := tmpl.Generate(day(2024, 1, 1), closing)
		var v *ValidationError
		require.ErrorAs(t, err, &v)
		assert.Equal(t, "closing_date", v.Field)
	}
}

func TestTemplateCriticalKeys(t *testing.T) {
	tmpl, err := NewMilestoneTemplate([]string{"closing"})
	require.NoError(t, err)
	defs, err := tmpl.Generate(day(2024, 1, 1), day(2024, 2, 4))
	require.NoError(t, err)
	for _, d := range defs {
		assert.Equal(t, d.Key == "closing", d.IsCritical, d.Key)
	}

	_, err = NewMilestoneTemplate([]string{"site_visit"})
	var v *ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "unknown_key", v.Reason)
}

func TestSeed(t *testing.T) {
	tmpl, err := NewMilestoneTemplate(nil)
	require.NoError(t, err)
	defs, err := tmpl.Generate(day(2024, 1, 1), day(2024, 2, 4))
	require.NoError(t, err)

	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	ms := Seed(defs, now)
	require.Len(t, ms, len(defs))
	for i, m := range ms {
		assert.Equal(t, defs[i].Key, m.Key)
		assert.Equal(t, int64(1), m.Version)
		assert.False(t, m.IsCompleted)
		assert.Equal(t, now, m.CreatedAt)
	}
	assert.Equal(t, CheckpointKeys()[0], ms[0].Key)
}
