package entity

// Права хоста, которые проверяет экспорт
const (
	CapViewHiddenActivities = "moodle/course:viewhiddenactivities"
	CapSiteConfig           = "moodle/site:config"
)

// Requester is the user an export runs for, as vouched for by the host session.
type Requester struct {
	UserID       uint     `json:"user_id"`
	CourseIDs    []uint   `json:"course_ids"`
	Capabilities []string `json:"capabilities"`
	Sesskey      string   `json:"-"`
}

// HasCapability проверяет наличие права у пользователя
func (r *Requester) HasCapability(capability string) bool {
	for _, c := range r.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// IsSiteAdmin reports whether the user may act in every course.
func (r *Requester) IsSiteAdmin() bool {
	return r.HasCapability(CapSiteConfig)
}

// CanAccessCourse reports whether the user is logged into the course.
func (r *Requester) CanAccessCourse(courseID uint) bool {
	if r.UserID == 0 {
		return false
	}
	if r.IsSiteAdmin() {
		return true
	}
	for _, id := range r.CourseIDs {
		if id == courseID {
			return true
		}
	}
	return false
}

// CanSee reports whether the quiz module is visible to the user.
func (r *Requester) CanSee(m *QuizModule) bool {
	return m.Visible || r.IsSiteAdmin() || r.HasCapability(CapViewHiddenActivities)
}
