package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBoothStatus(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
		ok    bool
	}{
		{"Canonical pending", "PENDING", BoothStatusPending, true},
		{"Canonical approved", "APPROVED", BoothStatusApproved, true},
		{"Canonical rejected", "REJECTED", BoothStatusRejected, true},
		{"Lowercase", "approved", BoothStatusApproved, true},
		{"Surrounding whitespace", "  pending  ", BoothStatusPending, true},
		{"Legacy accept alias", "ACCEPT", BoothStatusApproved, true},
		{"Legacy accepted alias", "accepted", BoothStatusApproved, true},
		{"Legacy reject alias", "reject", BoothStatusRejected, true},
		{"Unknown token", "MAYBE", "", false},
		{"Empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeBoothStatus(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanTransitionBoothStatus(t *testing.T) {
	statuses := []string{BoothStatusPending, BoothStatusApproved, BoothStatusRejected}

	// Admins may move any application between any pair of canonical
	// statuses, including reverting a decision back to pending.
	for _, from := range statuses {
		for _, to := range statuses {
			assert.True(t, CanTransitionBoothStatus(from, to), "%s -> %s", from, to)
		}
	}

	assert.False(t, CanTransitionBoothStatus("UNKNOWN", BoothStatusApproved))
	assert.False(t, CanTransitionBoothStatus(BoothStatusPending, "UNKNOWN"))
}

func TestEventInputIsEmpty(t *testing.T) {
	assert.True(t, (&EventInput{}).IsEmpty())

	name := "Night Market"
	assert.False(t, (&EventInput{Name: &name}).IsEmpty())

	slot := 5
	assert.False(t, (&EventInput{BoothSlot: &slot}).IsEmpty())
}

func TestBoothInputIsEmpty(t *testing.T) {
	assert.True(t, (&BoothInput{}).IsEmpty())

	phone := "081234567890"
	assert.False(t, (&BoothInput{Phone: &phone}).IsEmpty())
}

func TestResponseEnvelope(t *testing.T) {
	data, err := json.Marshal(Success(map[string]string{"id": "abc"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"id":"abc"}}`, string(data))

	data, err = json.Marshal(Fail("bad input", "name is required"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"bad input","error":"name is required"}`, string(data))

	data, err = json.Marshal(SuccessMessage("created", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"created"}`, string(data))
}

func TestDeleteReportTotalDependents(t *testing.T) {
	report := &DeleteReport{
		Dependents: map[string]DependentInfo{
			"booths":  {Count: 3},
			"ratings": {Count: 7},
		},
	}
	assert.Equal(t, int64(10), report.TotalDependents())

	empty := &DeleteReport{}
	assert.Equal(t, int64(0), empty.TotalDependents())
}
