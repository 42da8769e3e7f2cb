// Package session implements the query session controller: confirmed terms, the draft,
// the debounce/version sequencer, pagination and type-ahead suggestions.
//
// A Session is not safe for concurrent use. It is meant to be driven from a single
// event loop; timers and network calls run elsewhere and report back with the version
// they captured.
package session

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gravitrone/mailsearch/cli/internal/api"
)

// Options configures a Session. Zero values fall back to defaults.
type Options struct {
	PageSize int
	Debounce time.Duration
	Sort     string
	Logger   *slog.Logger
}

// Request is a search the caller must send. Responses are reported back with Version.
type Request struct {
	Version     uint64
	Query       string
	From        int
	Size        int
	Sort        string
	ScrollToTop bool
}

// Params converts the request into client parameters.
func (r Request) Params() api.SearchParams {
	return api.SearchParams{Query: r.Query, From: r.From, Size: r.Size, Sort: r.Sort}
}

// Dispatch tells the caller what an intent resolved to. When State is StatePending the
// Request must be sent; StateSettled means the empty-query short circuit already
// applied; StateSuperseded means nothing to do.
type Dispatch struct {
	State   State
	Request Request
}

// View is what the rendering layer projects after a settled search.
type View struct {
	Total      int
	Hits       []api.Hit
	Suggestion string
	// SuggestionVisible is false when there is no hint to offer.
	SuggestionVisible bool
}

// Session is the single owner of search state.
type Session struct {
	id     string
	terms  TermSet
	draft  string
	seq    *Sequencer
	page   Pagination
	sort   string
	logger *slog.Logger

	hits              []api.Hit
	suggestion        string
	suggestionVisible bool
	loading           bool
	err               error
}

// New creates an empty session.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	return &Session{
		id:     id,
		seq:    NewSequencer(opts.Debounce),
		page:   NewPagination(opts.PageSize),
		sort:   opts.Sort,
		logger: logger.With("component", "session", "session_id", id),
	}
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Terms returns the confirmed terms in order.
func (s *Session) Terms() []string { return s.terms.Terms() }

// LastTerm returns the most recently confirmed term.
func (s *Session) LastTerm() (string, bool) { return s.terms.Last() }

// Draft returns the uncommitted input.
func (s *Session) Draft() string { return s.draft }

// Query is the composed query for the current terms and draft.
func (s *Session) Query() string { return Compose(s.terms.Terms(), s.draft) }

// Version is the current intent nonce.
func (s *Session) Version() uint64 { return s.seq.Version() }

// State is the lifecycle state of the current intent.
func (s *Session) State() State { return s.seq.State() }

// Loading reports whether a current request is in flight.
func (s *Session) Loading() bool { return s.loading }

// Err is the failure of the latest request, if any.
func (s *Session) Err() error { return s.err }

// Pagination returns the pagination state.
func (s *Session) Pagination() Pagination { return s.page }

// Suggestion returns the active type-ahead hint.
func (s *Session) Suggestion() (string, bool) {
	return s.suggestion, s.suggestionVisible
}

// View returns the last settled results.
func (s *Session) View() View {
	return View{
		Total:             s.page.Total,
		Hits:              s.hits,
		Suggestion:        s.suggestion,
		SuggestionVisible: s.suggestionVisible,
	}
}

// SetDraft records a keystroke: the draft changes, the page resets and a debounce
// ticket is armed. The caller schedules the ticket and passes it to Fire on expiry.
func (s *Session) SetDraft(draft string) Ticket {
	s.draft = draft
	s.page.Reset()
	if draft == "" {
		s.hideSuggestion()
	}
	t := s.seq.Arm()
	s.logger.Debug("debounce armed", "version", t.Version, "draft", draft)
	return t
}

// Fire handles an elapsed debounce ticket.
func (s *Session) Fire(t Ticket) Dispatch {
	if s.seq.Fire(t) == StateSuperseded {
		s.logger.Debug("debounce superseded", "version", t.Version, "current", s.seq.Version())
		return Dispatch{State: StateSuperseded}
	}
	return s.dispatch(t.Version, false)
}

// Confirm adds token as a term, clears the draft and searches immediately from page 0.
func (s *Session) Confirm(token string) Dispatch {
	s.terms.Confirm(token)
	s.draft = ""
	s.page.Reset()
	return s.immediate(false)
}

// ConfirmDraft confirms the draft itself as a term.
func (s *Session) ConfirmDraft() Dispatch {
	return s.Confirm(s.draft)
}

// AcceptSuggestion confirms the visible suggestion, or the draft when none is shown.
func (s *Session) AcceptSuggestion() Dispatch {
	if s.suggestionVisible && s.suggestion != "" {
		return s.Confirm(s.suggestion)
	}
	return s.ConfirmDraft()
}

// Remove drops every term equal to token and searches immediately from page 0.
func (s *Session) Remove(token string) Dispatch {
	n := s.terms.Remove(token)
	s.logger.Debug("term removed", "term", token, "count", n)
	s.page.Reset()
	return s.immediate(false)
}

// Next moves to the following page. ok is false when already on the last page.
func (s *Session) Next() (d Dispatch, ok bool) {
	if !s.page.Next() {
		return Dispatch{State: s.seq.State()}, false
	}
	return s.immediate(true), true
}

// Prev moves to the previous page. ok is false when already on the first page.
func (s *Session) Prev() (d Dispatch, ok bool) {
	if !s.page.Prev() {
		return Dispatch{State: s.seq.State()}, false
	}
	return s.immediate(true), true
}

// Apply settles the response for version. Stale responses change nothing.
func (s *Session) Apply(version uint64, resp *api.SearchResponse) State {
	if s.seq.Resolve(version) == StateSuperseded {
		s.logger.Debug("response superseded", "version", version, "current", s.seq.Version())
		return StateSuperseded
	}
	if resp == nil {
		resp = api.Empty()
	}
	s.settle(resp)
	s.logger.Debug("response settled", "version", version, "total", s.page.Total, "hits", len(s.hits))
	return StateSettled
}

// Fail records a request failure for version. Stale failures are ignored; current ones
// clear loading and keep the previous results on screen.
func (s *Session) Fail(version uint64, err error) State {
	if s.seq.Resolve(version) == StateSuperseded {
		s.logger.Debug("failure superseded", "version", version, "error", err)
		return StateSuperseded
	}
	s.loading = false
	s.err = err
	s.logger.Warn("search failed", "version", version, "error", err)
	return StateSettled
}

func (s *Session) immediate(scroll bool) Dispatch {
	v := s.seq.Dispatch()
	return s.dispatch(v, scroll)
}

func (s *Session) dispatch(version uint64, scroll bool) Dispatch {
	s.hideSuggestion()
	query := s.Query()
	if query == "" {
		s.seq.Settle()
		s.settle(api.Empty())
		s.logger.Debug("empty query settled", "version", version)
		return Dispatch{State: StateSettled}
	}
	s.loading = true
	s.err = nil
	req := Request{
		Version:     version,
		Query:       query,
		From:        s.page.Offset(),
		Size:        s.page.PageSize,
		Sort:        s.sort,
		ScrollToTop: scroll,
	}
	s.logger.Debug("search dispatched", "version", version, "query", query, "from", req.From)
	return Dispatch{State: StatePending, Request: req}
}

func (s *Session) settle(resp *api.SearchResponse) {
	s.loading = false
	s.err = nil
	s.page.Total = int(resp.Hits.Total)
	s.hits = resp.Hits.Hits
	s.suggestion, s.suggestionVisible = ExtractSuggestion(s.hits, s.draft, s.terms)
}

func (s *Session) hideSuggestion() {
	s.suggestion = ""
	s.suggestionVisible = false
}
