package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequester_CanAccessCourse(t *testing.T) {
	student := Requester{UserID: 5, CourseIDs: []uint{3, 7}}
	admin := Requester{UserID: 2, Capabilities: []string{CapSiteConfig}}

	assert.True(t, student.CanAccessCourse(7))
	assert.False(t, student.CanAccessCourse(8))
	assert.True(t, admin.CanAccessCourse(8))

	// Гость без пользователя не имеет доступа даже с правами
	guest := Requester{Capabilities: []string{CapSiteConfig}, CourseIDs: []uint{7}}
	assert.False(t, guest.CanAccessCourse(7))
}

func TestRequester_CanSee(t *testing.T) {
	visible := &QuizModule{QuizID: 1, Visible: true}
	hidden := &QuizModule{QuizID: 2, Visible: false}

	student := Requester{UserID: 5, CourseIDs: []uint{3}}
	instructor := Requester{UserID: 6, CourseIDs: []uint{3}, Capabilities: []string{CapViewHiddenActivities}}
	admin := Requester{UserID: 2, Capabilities: []string{CapSiteConfig}}

	assert.True(t, student.CanSee(visible))
	assert.False(t, student.CanSee(hidden))
	assert.True(t, instructor.CanSee(hidden))
	assert.True(t, admin.CanSee(hidden))
}
