package models

// View is the screen currently selected by the navigation.
type View string

const (
	ViewHome       View = "home"
	ViewFeed       View = "feed"
	ViewDashboard  View = "dashboard"
	ViewDepartment View = "department"
	ViewChildren   View = "children"
	ViewSettings   View = "settings"
	ViewChat       View = "chat"
)

// Valid reports whether v is a known view.
func (v View) Valid() bool {
	switch v {
	case ViewHome, ViewFeed, ViewDashboard, ViewDepartment, ViewChildren, ViewSettings, ViewChat:
		return true
	}
	return false
}

// AvailableViews lists the views offered to u in sidebar order.
// The children registry is only offered to the children's-ministry department.
func AvailableViews(u *User) []View {
	views := []View{ViewHome, ViewDashboard, ViewFeed, ViewChat, ViewDepartment}
	if u != nil && u.Department.OwnsChildrenRegistry() {
		views = append(views, ViewChildren)
	}
	return append(views, ViewSettings)
}

// ViewAvailable reports whether v is offered to u.
func ViewAvailable(u *User, v View) bool {
	for _, candidate := range AvailableViews(u) {
		if candidate == v {
			return true
		}
	}
	return false
}
