package session

import (
	"errors"
	"time"

	"datachat/ai"
	"datachat/dataset"
)

var ErrNotFound = errors.New("session not found")

// Turn is one chat message in a transcript.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Transcript is the ordered chat history of one session. Turns are only
// ever appended; Clear is the single way to remove them.
type Transcript struct {
	Turns []Turn `json:"turns"`
}

func (t *Transcript) Append(role, content string) Turn {
	turn := Turn{Role: role, Content: content, CreatedAt: time.Now().UTC()}
	t.Turns = append(t.Turns, turn)
	return turn
}

func (t *Transcript) Clear() {
	t.Turns = nil
}

func (t *Transcript) Len() int {
	return len(t.Turns)
}

// All returns a copy of the turns in arrival order.
func (t *Transcript) All() []Turn {
	out := make([]Turn, len(t.Turns))
	copy(out, t.Turns)
	return out
}

// LastAnswer is the newest assistant turn.
func (t *Transcript) LastAnswer() (Turn, bool) {
	for i := len(t.Turns) - 1; i >= 0; i-- {
		if t.Turns[i].Role == ai.RoleAssistant {
			return t.Turns[i], true
		}
	}
	return Turn{}, false
}

const (
	BannerSuccess = "success"
	BannerWarning = "warning"
	BannerError   = "error"
)

type Banner struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// State is everything the dashboard remembers for one logged-in session.
type State struct {
	ID         string         `json:"id"`
	Username   string         `json:"username"`
	Dataset    *dataset.Frame `json:"dataset,omitempty"`
	ChartX     string         `json:"chart_x,omitempty"`
	ChartY     string         `json:"chart_y,omitempty"`
	Transcript Transcript     `json:"transcript"`
	Banners    []Banner       `json:"banners,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

func New(id, username string) *State {
	return &State{ID: id, Username: username, CreatedAt: time.Now().UTC()}
}

func (s *State) AddBanner(level, message string) {
	s.Banners = append(s.Banners, Banner{Level: level, Message: message})
}

// TakeBanners returns the pending banners and forgets them.
func (s *State) TakeBanners() []Banner {
	b := s.Banners
	s.Banners = nil
	return b
}

func (s *State) SetDataset(f *dataset.Frame) {
	s.Dataset = f
	s.ChartX, s.ChartY = "", ""
}

func (s *State) ClearDataset() {
	s.SetDataset(nil)
}

// Store keeps session state for at most the session lifetime.
type Store interface {
	Get(id string) (*State, error)
	Save(state *State) error
	Delete(id string) error
	// Len counts the live sessions.
	Len() (int, error)
	Close() error
}
