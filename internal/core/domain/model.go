package domain

// League identifies one tracked competition-year. It is immutable once
// set and replaced wholesale when an admin changes the tracking target.
type League struct {
	ID   string `json:"id"`
	Year int    `json:"year"`
}

// PlayStatus wraps the league's lifecycle state as reported upstream.
type PlayStatus struct {
	PlayStatus string `json:"playStatus"`
}

type EligibilityLevel struct {
	Name string `json:"name"`
}

type EligibilitySettings struct {
	EligibilityLevel EligibilityLevel `json:"eligibilityLevel"`
}

// PublisherGame is one game on a publisher's roster. Nullable upstream
// fields stay pointers so "absent" and "zero" remain distinguishable.
type PublisherGame struct {
	GameName             string   `json:"gameName"`
	CriticScore          *float64 `json:"criticScore"`
	FantasyPoints        *float64 `json:"fantasyPoints"`
	WillRelease          bool     `json:"willRelease"`
	Released             bool     `json:"released"`
	CounterPick          bool     `json:"counterPick"`
	ReleaseDate          *string  `json:"releaseDate"`
	EstimatedReleaseDate string   `json:"estimatedReleaseDate"`
}

// MasterGameYear is one game's entry in the site-wide master list for a
// given year.
type MasterGameYear struct {
	MasterGameID         string              `json:"masterGameID"`
	GameName             string              `json:"gameName"`
	CriticScore          *float64            `json:"criticScore"`
	WillRelease          bool                `json:"willRelease"`
	IsReleased           bool                `json:"isReleased"`
	ReleaseDate          *string             `json:"releaseDate"`
	EstimatedReleaseDate string              `json:"estimatedReleaseDate"`
	EligibilitySettings  EligibilitySettings `json:"eligibilitySettings"`
}

// MasterGameYearSet maps MasterGameID to its entry, so diffs match games
// by identity regardless of array position upstream.
type MasterGameYearSet map[string]MasterGameYear

type Publisher struct {
	PublisherName      string          `json:"publisherName"`
	PlayerName         string          `json:"playerName"`
	Games              []PublisherGame `json:"games"`
	TotalFantasyPoints float64         `json:"totalFantasyPoints"`
}

type User struct {
	DisplayName string `json:"displayName"`
	LeagueName  string `json:"leagueName"`
}

type Player struct {
	User               User       `json:"user"`
	Publisher          *Publisher `json:"publisher"`
	TotalFantasyPoints float64    `json:"totalFantasyPoints"`
	PreviousYearWinner bool       `json:"previousYearWinner"`
}

type ManagerMessage struct {
	MessageText string `json:"messageText"`
	Timestamp   string `json:"timestamp"`
}

// LeagueYear is one snapshot of a league's state. Publishers and Players
// are positionally aligned upstream but not order-stable across
// snapshots; the diff engine defends against count changes.
type LeagueYear struct {
	Publishers      []Publisher      `json:"publishers"`
	Players         []Player         `json:"players"`
	ManagerMessages []ManagerMessage `json:"managerMessages"`
	PlayStatus      PlayStatus       `json:"playStatus"`
}

// LeagueAction is one entry of the league's audit log. The upstream list
// is newest-first and prepend-only.
type LeagueAction struct {
	PublisherName string `json:"publisherName"`
	Description   string `json:"description"`
	Timestamp     string `json:"timestamp"`
}

type UpcomingGame struct {
	GameName             string `json:"gameName"`
	PublisherName        string `json:"publisherName"`
	EstimatedReleaseDate string `json:"estimatedReleaseDate"`
	MaximumReleaseDate   string `json:"maximumReleaseDate"`
}

type AuthCredentials struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// WorkerState is the per-guild document persisted across restarts.
type WorkerState struct {
	GuildID      string           `json:"guildId"`
	Auth         *AuthCredentials `json:"auth,omitempty"`
	League       *League          `json:"league,omitempty"`
	ChannelNames []string         `json:"channelNames"`
	Running      bool             `json:"running"`
}
