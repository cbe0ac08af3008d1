package domain_test

import (
	"testing"

	"github.com/aretw0/wayfarer/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff_Initial(t *testing.T) {
	s := domain.NewSession("trip-1")
	s.Step.Selection = []string{"a"}

	diff := domain.Diff(nil, s)
	require.NotNil(t, diff)
	assert.Equal(t, "trip-1", diff.SessionID)
	require.NotNil(t, diff.Status)
	assert.Equal(t, domain.StatusLoading, *diff.Status)
	require.NotNil(t, diff.Selection)
	assert.Equal(t, []string{"a"}, diff.Selection.Added)
}

func TestDiff_NoChange(t *testing.T) {
	s := domain.NewSession("trip-1")
	assert.Nil(t, domain.Diff(s, s.Snapshot()))
}

func TestDiff_Selection(t *testing.T) {
	old := domain.NewSession("trip-1")
	old.Step.Status = domain.StatusReady
	old.Step.Selection = []string{"a", "b", "c"}

	next := old.Snapshot()
	next.Step.Selection = domain.Toggle(domain.Toggle(next.Step.Selection, "b"), "d")

	diff := domain.Diff(old, next)
	require.NotNil(t, diff)
	assert.Nil(t, diff.Status)
	assert.Nil(t, diff.Auth)
	require.NotNil(t, diff.Selection)
	assert.Equal(t, []string{"d"}, diff.Selection.Added)
	assert.Equal(t, []string{"b"}, diff.Selection.Removed)
	assert.Equal(t, []string{"a", "c", "d"}, diff.Selection.Current)
}

func TestDiff_RecordsAndAuth(t *testing.T) {
	old := domain.NewSession("trip-1")
	require.NoError(t, old.PutRecord(domain.RecordStep1, domain.Step1Data{Destination: "Manali"}))

	next := old.Snapshot()
	next.Auth = domain.SignedIn("asha")
	next.DeleteRecord(domain.RecordStep1)
	require.NoError(t, next.PutRecord(domain.RecordStep3, domain.Step3Data{Places: []string{"Mall Road"}}))

	diff := domain.Diff(old, next)
	require.NotNil(t, diff)
	require.NotNil(t, diff.Auth)
	assert.Equal(t, "asha", diff.Auth.UserName)
	assert.Contains(t, diff.Records, domain.RecordStep1)
	assert.Nil(t, diff.Records[domain.RecordStep1])
	assert.Contains(t, diff.Records, domain.RecordStep3)
}
