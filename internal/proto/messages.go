package proto

import (
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterUserRequest struct {
	Username string `json:"username"`
	Salt     []byte `json:"salt"`
	Verifier []byte `json:"verifier"`
}

type RegisterUserResponse struct {
	UserID string `json:"user_id"`
}

type GetSaltRequest struct {
	Username string `json:"username"`
}

type GetSaltResponse struct {
	Salt []byte `json:"salt"`
}

type LoginRequest struct {
	Username          string `json:"username"`
	VerifierCandidate []byte `json:"verifier_candidate"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Trackable points at a project or an issue.
type Trackable struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// Timer is the flat view of a timer returned to callers.
//
// ElapsedSeconds is computed at ServerTime; BankedSeconds is the stored
// accumulator. A mirror rebuilds its running baseline from the difference.
type Timer struct {
	ID             string                 `json:"id"`
	Status         string                 `json:"status"`
	Trackable      *Trackable             `json:"trackable,omitempty"`
	ProjectID      string                 `json:"project_id,omitempty"`
	IssueID        string                 `json:"issue_id,omitempty"`
	Description    string                 `json:"description,omitempty"`
	StartedAt      *timestamppb.Timestamp `json:"started_at,omitempty"`
	PausedAt       *timestamppb.Timestamp `json:"paused_at,omitempty"`
	StoppedAt      *timestamppb.Timestamp `json:"stopped_at,omitempty"`
	ElapsedSeconds int64                  `json:"elapsed_seconds"`
	BankedSeconds  int64                  `json:"banked_seconds"`
	ServerTime     *timestamppb.Timestamp `json:"server_time,omitempty"`
}

type TimeEntry struct {
	ID              string                 `json:"id"`
	TimerID         string                 `json:"timer_id"`
	Trackable       *Trackable             `json:"trackable,omitempty"`
	ProjectID       string                 `json:"project_id,omitempty"`
	IssueID         string                 `json:"issue_id,omitempty"`
	Description     string                 `json:"description,omitempty"`
	StartedAt       *timestamppb.Timestamp `json:"started_at,omitempty"`
	EndedAt         *timestamppb.Timestamp `json:"ended_at,omitempty"`
	DurationSeconds int64                  `json:"duration_seconds"`
	DisplayName     string                 `json:"display_name,omitempty"`
}

type GetActiveRequest struct{}

// GetActiveResponse carries a nil Timer when the user has no active timer.
type GetActiveResponse struct {
	Timer *Timer `json:"timer,omitempty"`
}

type GetStatusRequest struct{}

// GetStatusResponse is the light form of GetActive. Status is "none" when
// nothing is being tracked.
type GetStatusResponse struct {
	Status         string `json:"status"`
	TimerID        string `json:"timer_id,omitempty"`
	ElapsedSeconds int64  `json:"elapsed_seconds"`
}

type StartTimerRequest struct {
	Trackable   *Trackable `json:"trackable"`
	Description string     `json:"description,omitempty"`
}

// StartTimerResponse reports the new timer and, when one was active, the
// entry produced by stopping it.
type StartTimerResponse struct {
	Timer   *Timer     `json:"timer"`
	Stopped *TimeEntry `json:"stopped,omitempty"`
}

type PauseTimerRequest struct{}

type PauseTimerResponse struct {
	Timer *Timer `json:"timer"`
}

type ResumeTimerRequest struct{}

type ResumeTimerResponse struct {
	Timer *Timer `json:"timer"`
}

type StopTimerRequest struct{}

type StopTimerResponse struct {
	Entry *TimeEntry `json:"entry"`
}

type SyncTimerRequest struct {
	TimerID        string                 `json:"timer_id"`
	Status         string                 `json:"status"`
	ElapsedSeconds *wrapperspb.Int64Value `json:"elapsed_seconds,omitempty"`
}

type SyncTimerResponse struct {
	Timer *Timer     `json:"timer"`
	Entry *TimeEntry `json:"entry,omitempty"`
}

type RecentEntriesRequest struct {
	Limit int32 `json:"limit"`
}

type RecentEntriesResponse struct {
	Entries []*TimeEntry `json:"entries"`
}

type Project struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Color        string                 `json:"color,omitempty"`
	IsActive     bool                   `json:"is_active"`
	CreatedAt    *timestamppb.Timestamp `json:"created_at,omitempty"`
	TotalSeconds int64                  `json:"total_seconds"`
	ActiveIssues int32                  `json:"active_issues"`
}

type CreateProjectRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type CreateProjectResponse struct {
	Project *Project `json:"project"`
}

type ListProjectsRequest struct{}

type ListProjectsResponse struct {
	Projects []*Project `json:"projects"`
}

type Issue struct {
	ID           string                 `json:"id"`
	ProjectID    string                 `json:"project_id,omitempty"`
	Title        string                 `json:"title"`
	Priority     string                 `json:"priority,omitempty"`
	Status       string                 `json:"status"`
	IsActive     bool                   `json:"is_active"`
	CreatedAt    *timestamppb.Timestamp `json:"created_at,omitempty"`
	TotalSeconds int64                  `json:"total_seconds"`
}

// CreateIssueRequest creates an open issue unless Status names another state.
type CreateIssueRequest struct {
	ProjectID string `json:"project_id,omitempty"`
	Title     string `json:"title"`
	Priority  string `json:"priority,omitempty"`
	Status    string `json:"status,omitempty"`
}

type CreateIssueResponse struct {
	Issue *Issue `json:"issue"`
}

// ListIssuesRequest lists active issues, filtered by project and status
// when those are set.
type ListIssuesRequest struct {
	ProjectID string `json:"project_id,omitempty"`
	Status    string `json:"status,omitempty"`
}

type ListIssuesResponse struct {
	Issues []*Issue `json:"issues"`
}

// UpdateIssueRequest changes only the fields that are present.
type UpdateIssueRequest struct {
	ID       string                  `json:"id"`
	Status   *wrapperspb.StringValue `json:"status,omitempty"`
	IsActive *wrapperspb.BoolValue   `json:"is_active,omitempty"`
}

type UpdateIssueResponse struct {
	Issue *Issue `json:"issue"`
}

type ExportEntriesRequest struct {
	Format string `json:"format,omitempty"`
}

type ExportEntriesResponse struct {
	URL   string `json:"url"`
	Key   string `json:"key"`
	Count int32  `json:"count"`
}
