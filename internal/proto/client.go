package proto

import (
	"context"

	"google.golang.org/grpc"
)

// TrackerServiceClient is the client API for TrackerService.
type TrackerServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error)
	GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)

	GetActive(ctx context.Context, in *GetActiveRequest, opts ...grpc.CallOption) (*GetActiveResponse, error)
	GetStatus(ctx context.Context, in *GetStatusRequest, opts ...grpc.CallOption) (*GetStatusResponse, error)
	StartTimer(ctx context.Context, in *StartTimerRequest, opts ...grpc.CallOption) (*StartTimerResponse, error)
	PauseTimer(ctx context.Context, in *PauseTimerRequest, opts ...grpc.CallOption) (*PauseTimerResponse, error)
	ResumeTimer(ctx context.Context, in *ResumeTimerRequest, opts ...grpc.CallOption) (*ResumeTimerResponse, error)
	StopTimer(ctx context.Context, in *StopTimerRequest, opts ...grpc.CallOption) (*StopTimerResponse, error)
	SyncTimer(ctx context.Context, in *SyncTimerRequest, opts ...grpc.CallOption) (*SyncTimerResponse, error)
	RecentEntries(ctx context.Context, in *RecentEntriesRequest, opts ...grpc.CallOption) (*RecentEntriesResponse, error)

	CreateProject(ctx context.Context, in *CreateProjectRequest, opts ...grpc.CallOption) (*CreateProjectResponse, error)
	ListProjects(ctx context.Context, in *ListProjectsRequest, opts ...grpc.CallOption) (*ListProjectsResponse, error)
	CreateIssue(ctx context.Context, in *CreateIssueRequest, opts ...grpc.CallOption) (*CreateIssueResponse, error)
	ListIssues(ctx context.Context, in *ListIssuesRequest, opts ...grpc.CallOption) (*ListIssuesResponse, error)
	UpdateIssue(ctx context.Context, in *UpdateIssueRequest, opts ...grpc.CallOption) (*UpdateIssueResponse, error)

	ExportEntries(ctx context.Context, in *ExportEntriesRequest, opts ...grpc.CallOption) (*ExportEntriesResponse, error)
}

type trackerServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewTrackerServiceClient returns a stub that sends every call with the
// JSON content subtype.
func NewTrackerServiceClient(cc grpc.ClientConnInterface) TrackerServiceClient {
	return &trackerServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trackerServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, "Ping", in, opts)
}

func (c *trackerServiceClient) RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error) {
	return invoke[RegisterUserResponse](ctx, c.cc, "RegisterUser", in, opts)
}

func (c *trackerServiceClient) GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error) {
	return invoke[GetSaltResponse](ctx, c.cc, "GetSalt", in, opts)
}

func (c *trackerServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, "Login", in, opts)
}

func (c *trackerServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, "RefreshToken", in, opts)
}

func (c *trackerServiceClient) GetActive(ctx context.Context, in *GetActiveRequest, opts ...grpc.CallOption) (*GetActiveResponse, error) {
	return invoke[GetActiveResponse](ctx, c.cc, "GetActive", in, opts)
}

func (c *trackerServiceClient) GetStatus(ctx context.Context, in *GetStatusRequest, opts ...grpc.CallOption) (*GetStatusResponse, error) {
	return invoke[GetStatusResponse](ctx, c.cc, "GetStatus", in, opts)
}

func (c *trackerServiceClient) StartTimer(ctx context.Context, in *StartTimerRequest, opts ...grpc.CallOption) (*StartTimerResponse, error) {
	return invoke[StartTimerResponse](ctx, c.cc, "StartTimer", in, opts)
}

func (c *trackerServiceClient) PauseTimer(ctx context.Context, in *PauseTimerRequest, opts ...grpc.CallOption) (*PauseTimerResponse, error) {
	return invoke[PauseTimerResponse](ctx, c.cc, "PauseTimer", in, opts)
}

func (c *trackerServiceClient) ResumeTimer(ctx context.Context, in *ResumeTimerRequest, opts ...grpc.CallOption) (*ResumeTimerResponse, error) {
	return invoke[ResumeTimerResponse](ctx, c.cc, "ResumeTimer", in, opts)
}

func (c *trackerServiceClient) StopTimer(ctx context.Context, in *StopTimerRequest, opts ...grpc.CallOption) (*StopTimerResponse, error) {
	return invoke[StopTimerResponse](ctx, c.cc, "StopTimer", in, opts)
}

func (c *trackerServiceClient) SyncTimer(ctx context.Context, in *SyncTimerRequest, opts ...grpc.CallOption) (*SyncTimerResponse, error) {
	return invoke[SyncTimerResponse](ctx, c.cc, "SyncTimer", in, opts)
}

func (c *trackerServiceClient) RecentEntries(ctx context.Context, in *RecentEntriesRequest, opts ...grpc.CallOption) (*RecentEntriesResponse, error) {
	return invoke[RecentEntriesResponse](ctx, c.cc, "RecentEntries", in, opts)
}

func (c *trackerServiceClient) CreateProject(ctx context.Context, in *CreateProjectRequest, opts ...grpc.CallOption) (*CreateProjectResponse, error) {
	return invoke[CreateProjectResponse](ctx, c.cc, "CreateProject", in, opts)
}

func (c *trackerServiceClient) ListProjects(ctx context.Context, in *ListProjectsRequest, opts ...grpc.CallOption) (*ListProjectsResponse, error) {
	return invoke[ListProjectsResponse](ctx, c.cc, "ListProjects", in, opts)
}

func (c *trackerServiceClient) CreateIssue(ctx context.Context, in *CreateIssueRequest, opts ...grpc.CallOption) (*CreateIssueResponse, error) {
	return invoke[CreateIssueResponse](ctx, c.cc, "CreateIssue", in, opts)
}

func (c *trackerServiceClient) ListIssues(ctx context.Context, in *ListIssuesRequest, opts ...grpc.CallOption) (*ListIssuesResponse, error) {
	return invoke[ListIssuesResponse](ctx, c.cc, "ListIssues", in, opts)
}

func (c *trackerServiceClient) UpdateIssue(ctx context.Context, in *UpdateIssueRequest, opts ...grpc.CallOption) (*UpdateIssueResponse, error) {
	return invoke[UpdateIssueResponse](ctx, c.cc, "UpdateIssue", in, opts)
}

func (c *trackerServiceClient) ExportEntries(ctx context.Context, in *ExportEntriesRequest, opts ...grpc.CallOption) (*ExportEntriesResponse, error) {
	return invoke[ExportEntriesResponse](ctx, c.cc, "ExportEntries", in, opts)
}
