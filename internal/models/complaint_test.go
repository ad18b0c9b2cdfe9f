package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Label Derivation Tests
// ==========================

func TestComplaintCategory_Label(t *testing.T) {
	tests := []struct {
		category ComplaintCategory
		want     string
	}{
		{CategoryDrinkingWater, "Lack Of Proper Drinking Water"},
		{CategoryToilets, "Toilets"},
		{CategoryGirlsToilets, "Girls Toilets"},
		{CategoryLiberty, "Liberty"},
		{CategoryElectricity, "Proper Electricity"},
		{CategoryComputers, "Computers"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.Label())
		})
	}
}

func TestComplaintStatus_Label(t *testing.T) {
	tests := []struct {
		status ComplaintStatus
		want   string
	}{
		{StatusOpen, "Open"},
		{StatusInProgress, "In Progress"},
		{StatusResolved, "Resolved"},
		{StatusDismissed, "Dismissed"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Label())
		})
	}
}

func TestComplaintStatus_Valid(t *testing.T) {
	for _, s := range AllStatuses {
		assert.True(t, s.Valid(), "expected %s to be valid", s)
	}
	assert.False(t, ComplaintStatus("closed").Valid())
	assert.False(t, ComplaintStatus("").Valid())
}

func TestComplaintCategory_Valid(t *testing.T) {
	for _, c := range AllCategories {
		assert.True(t, c.Valid(), "expected %s to be valid", c)
	}
	assert.False(t, ComplaintCategory("other").Valid())
}

// ==========================
// Transition Policy Tests
// ==========================

func TestOpenTransitions(t *testing.T) {
	// Every pair of valid statuses is allowed, reopening included.
	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			assert.True(t, OpenTransitions(from, to), "%s -> %s", from, to)
		}
	}

	assert.False(t, OpenTransitions(StatusOpen, ComplaintStatus("closed")))
	assert.False(t, OpenTransitions(ComplaintStatus("bogus"), StatusOpen))
}

func TestForwardOnlyTransitions(t *testing.T) {
	tests := []struct {
		from, to ComplaintStatus
		allowed  bool
	}{
		{StatusOpen, StatusInProgress, true},
		{StatusOpen, StatusResolved, true},
		{StatusOpen, StatusDismissed, true},
		{StatusInProgress, StatusResolved, true},
		{StatusInProgress, StatusDismissed, true},
		{StatusInProgress, StatusOpen, true},
		{StatusResolved, StatusOpen, false},
		{StatusResolved, StatusInProgress, false},
		{StatusDismissed, StatusOpen, false},
		{StatusDismissed, StatusResolved, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, ForwardOnlyTransitions(tt.from, tt.to))
		})
	}
}

// ==========================
// Anonymity Tests
// ==========================

func TestComplaint_DisplayStudent(t *testing.T) {
	student := &StudentRef{ID: "s-1", FirstName: "Asha", LastName: "Verma"}

	tests := []struct {
		name      string
		complaint Complaint
		want      string
	}{
		{
			name:      "named student",
			complaint: Complaint{Student: student},
			want:      "Asha Verma",
		},
		{
			name:      "anonymous hides the attached student",
			complaint: Complaint{Student: student, IsAnonymous: true},
			want:      "Anonymous",
		},
		{
			name:      "missing student record",
			complaint: Complaint{},
			want:      "Anonymous",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.complaint.DisplayStudent())
		})
	}
}

func TestStudentRef_DisplayName(t *testing.T) {
	var nilRef *StudentRef
	assert.Equal(t, "", nilRef.DisplayName())

	ref := &StudentRef{FirstName: "Ravi", LastName: "Kumar"}
	assert.Equal(t, "Ravi Kumar", ref.DisplayName())
}
