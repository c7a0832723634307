package fortune

import (
	"time"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/saju"
)

// Config holds runtime knobs for the fortune service.
type Config struct {
	// Location is the civil time zone every "today" is evaluated in.
	Location    *time.Location
	StrictLunar bool
	SnapshotTTL time.Duration
	MaxSets     int
}

// AnalyzeRequest asks for a full reading. Sets defaults to 1.
type AnalyzeRequest struct {
	saju.BirthInput
	Sets int `json:"sets"`
}

// Analysis is a full reading plus the long-form consultation.
type Analysis struct {
	saju.Reading
	Consultation saju.Consultation `json:"consultation"`
	GeneratedAt  time.Time         `json:"generatedAt"`
}

// DashboardRequest identifies whose dashboard to build.
type DashboardRequest struct {
	saju.BirthInput
}

// Dashboard is the cached "today" view for one birth profile.
type Dashboard struct {
	Key         string                 `json:"key"`
	Date        string                 `json:"date"`
	Favorable   saju.FavorableElements `json:"favorable"`
	Luck        saju.LuckSnapshot      `json:"luck"`
	Fortune     saju.FortuneScore      `json:"fortune"`
	Numbers     saju.NumberSelection   `json:"numbers"`
	QuickPick   saju.QuickPick         `json:"quickPick"`
	Direction   saju.Direction         `json:"direction"`
	LuckyColors []string               `json:"luckyColors"`
	Caution     string                 `json:"caution"`
	Today       saju.DayFortune        `json:"today"`
	GeneratedAt time.Time              `json:"generatedAt"`
	Cached      bool                   `json:"cached"`
}

// CalendarRequest asks for a month of day scores.
type CalendarRequest struct {
	saju.BirthInput
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Calendar is a month of day fortunes with the best days called out.
type Calendar struct {
	Year     int               `json:"year"`
	Month    int               `json:"month"`
	Days     []saju.DayFortune `json:"days"`
	BestDays []int             `json:"bestDays"`
}

// QuickPickRequest optionally pins the clock hour; nil means now.
type QuickPickRequest struct {
	Hour *int `json:"hour,omitempty"`
}

// NumberCount is how often a number has been recommended.
type NumberCount struct {
	Number int   `json:"number"`
	Count  int64 `json:"count"`
}
