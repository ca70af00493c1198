package service

// Window defaults.
const (
	DefaultSkip  = 0
	DefaultLimit = 100
)

// Window is an offset/limit slice of an ordered listing.
type Window struct {
	Skip  int
	Limit int
}

// DefaultWindow returns the first DefaultLimit rows.
func DefaultWindow() Window {
	return Window{Skip: DefaultSkip, Limit: DefaultLimit}
}

// PostInput carries the fields of a new post.
type PostInput struct {
	Title   string
	Content string
}
