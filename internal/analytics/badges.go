package analytics

import (
	"sort"
	"time"

	"github.com/manav03panchal/boost/internal/model"
)

// Badge thresholds.
const (
	EarlyBirdHour    = 7
	StreakMasterDays = 7
	DeepWorkMinutes  = 4 * 60
	ZenMasterBreaks  = 10
)

// Badge is an achievement and whether it has been earned.
type Badge struct {
	Name   string `json:"name" yaml:"name"`
	Desc   string `json:"desc" yaml:"desc"`
	Earned bool   `json:"earned" yaml:"earned"`
}

// Activity bundles the collections badges are computed from.
type Activity struct {
	Tasks    []model.Task
	Tickets  []model.WorkTicket
	Habits   []model.Habit
	Sessions []model.FocusSession
	Profile  model.UserProfile
}

// XP scores the activity.
func (a Activity) XP() int {
	return XP(a.Sessions, a.Tasks, a.Tickets, a.Habits)
}

// Badges evaluates every badge against the activity.
func Badges(a Activity, loc *time.Location) []Badge {
	if loc == nil {
		loc = time.Local
	}
	return []Badge{
		{Name: "Early Bird", Desc: "Complete a focus session before 7 AM", Earned: earlyBird(a.Sessions, loc)},
		{Name: "Streak Master", Desc: "7 day habit streak", Earned: streakMaster(a.Habits)},
		{Name: "Deep Work", Desc: "4h focus in a day", Earned: deepWork(a.Sessions, loc)},
		{Name: "Zen Master", Desc: "10 breaks taken", Earned: a.Profile.BreaksTaken >= ZenMasterBreaks},
	}
}

func earlyBird(sessions []model.FocusSession, loc *time.Location) bool {
	for _, s := range sessions {
		if s.Completed && s.Timestamp.In(loc).Hour() < EarlyBirdHour {
			return true
		}
	}
	return false
}

func streakMaster(habits []model.Habit) bool {
	for i := range habits {
		if habits[i].Streak >= StreakMasterDays || LongestStreak(habits[i].CompletedDates) >= StreakMasterDays {
			return true
		}
	}
	return false
}

func deepWork(sessions []model.FocusSession, loc *time.Location) bool {
	perDay := map[model.DayKey]int{}
	for _, s := range sessions {
		if !s.Completed {
			continue
		}
		day := DayOf(s.Timestamp, loc)
		perDay[day] += s.Duration
		if perDay[day] >= DeepWorkMinutes {
			return true
		}
	}
	return false
}

// LeaderboardEntry is one row of the leaderboard.
type LeaderboardEntry struct {
	Rank int    `json:"rank" yaml:"rank"`
	Name string `json:"name" yaml:"name"`
	XP   int    `json:"xp" yaml:"xp"`
	You  bool   `json:"you,omitempty" yaml:"you,omitempty"`
}

// rivals is the fixed field the user is ranked against.
var rivals = []LeaderboardEntry{
	{Name: "Jake.0", XP: 12500},
	{Name: "Sarah K.", XP: 11200},
	{Name: "Mike D.", XP: 10850},
	{Name: "Alex R.", XP: 9500},
}

// Leaderboard ranks the user's XP against the fixed field, highest first.
// Ties rank the user ahead.
func Leaderboard(name string, xp int) []LeaderboardEntry {
	if name == "" {
		name = "You"
	}
	board := make([]LeaderboardEntry, 0, len(rivals)+1)
	board = append(board, LeaderboardEntry{Name: name, XP: xp, You: true})
	board = append(board, rivals...)
	sort.SliceStable(board, func(i, j int) bool {
		return board[i].XP > board[j].XP
	})
	for i := range board {
		board[i].Rank = i + 1
	}
	return board
}
