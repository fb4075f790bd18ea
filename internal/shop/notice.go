package shop

import "time"

type Severity string

const SeveritySuccess Severity = "success"

// DefaultNoticeTTL is how long a confirmation stays visible.
const DefaultNoticeTTL = 2 * time.Second

// Notice is a transient confirmation such as "Hat added to cart". Reduce
// fills Message and Severity; the state owner stamps ID and ExpiresAt.
type Notice struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	ExpiresAt time.Time `json:"expires_at"`
}

func success(msg string) Notice {
	return Notice{Message: msg, Severity: SeveritySuccess}
}

func (n Notice) IsZero() bool { return n.Message == "" }

// Stamp gives n an identity and an expiry.
func (n Notice) Stamp(id string, now time.Time, ttl time.Duration) Notice {
	n.ID = id
	n.ExpiresAt = now.Add(ttl)
	return n
}

func (n Notice) ActiveAt(now time.Time) bool {
	return !n.IsZero() && now.Before(n.ExpiresAt)
}
