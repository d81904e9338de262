package service

import "fmt"

// ActivityDays is the length of the dashboard activity series.
const ActivityDays = 7

// ActivityPoint is one day of feed activity.
type ActivityPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// DashboardStats summarizes the community for the dashboard view.
type DashboardStats struct {
	Servos   int             `json:"servos"`
	Kids     int             `json:"kids"`
	Pautas   int             `json:"pautas"`
	Feed     int             `json:"feed"`
	Activity []ActivityPoint `json:"activity"`
}

// Dashboard counts the collections and builds a seven-day series where each
// day sums likes+1 over the posts published on that calendar day.
func (s *State) Dashboard() DashboardStats {
	now := s.now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := DashboardStats{
		Servos:   len(s.users),
		Kids:     len(s.children),
		Pautas:   len(s.meetings),
		Feed:     len(s.posts),
		Activity: make([]ActivityPoint, ActivityDays),
	}

	loc := now.Location()
	for i := range ActivityDays {
		back := ActivityDays - 1 - i
		day := now.AddDate(0, 0, -back)
		y, m, d := day.Date()

		total := 0
		for _, p := range s.posts {
			py, pm, pd := p.Timestamp.In(loc).Date()
			if py == y && pm == m && pd == d {
				total += p.Likes + 1
			}
		}
		stats.Activity[i] = ActivityPoint{Label: fmt.Sprintf("T-%dd", back), Value: total}
	}
	return stats
}

