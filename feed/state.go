package feed

// Status names the active member of a State.
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is the fetch state of a feed. Exactly one of Loading, Success and
// Error is active; only the active member's payload is populated.
type State struct {
	status   Status
	articles []Article
	message  string
}

// Loading is the initial state.
func Loading() State {
	return State{status: StatusLoading}
}

// Succeeded holds the fetched articles in the order they were received.
func Succeeded(articles []Article) State {
	if articles == nil {
		articles = []Article{}
	}
	return State{status: StatusSuccess, articles: articles}
}

// Failed holds the message shown to the reader.
func Failed(message string) State {
	return State{status: StatusError, message: message}
}

func (s State) Status() Status { return s.status }

// Articles returns the fetched articles, or nil unless the state is Success.
// The slice is shared with the feed and must not be modified.
func (s State) Articles() []Article { return s.articles }

// Message returns the failure message, or "" unless the state is Error.
func (s State) Message() string { return s.message }

func (s State) IsLoading() bool { return s.status == StatusLoading }
func (s State) IsSuccess() bool { return s.status == StatusSuccess }
func (s State) IsError() bool   { return s.status == StatusError }

// Terminal reports whether the state can no longer change.
func (s State) Terminal() bool {
	return s.status == StatusSuccess || s.status == StatusError
}
