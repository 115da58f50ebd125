package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "gophtracker.TrackerService"

// FullMethod returns the "/service/method" path of a TrackerService method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// TrackerServiceServer is implemented by the server transport.
type TrackerServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error)
	GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)

	GetActive(context.Context, *GetActiveRequest) (*GetActiveResponse, error)
	GetStatus(context.Context, *GetStatusRequest) (*GetStatusResponse, error)
	StartTimer(context.Context, *StartTimerRequest) (*StartTimerResponse, error)
	PauseTimer(context.Context, *PauseTimerRequest) (*PauseTimerResponse, error)
	ResumeTimer(context.Context, *ResumeTimerRequest) (*ResumeTimerResponse, error)
	StopTimer(context.Context, *StopTimerRequest) (*StopTimerResponse, error)
	SyncTimer(context.Context, *SyncTimerRequest) (*SyncTimerResponse, error)
	RecentEntries(context.Context, *RecentEntriesRequest) (*RecentEntriesResponse, error)

	CreateProject(context.Context, *CreateProjectRequest) (*CreateProjectResponse, error)
	ListProjects(context.Context, *ListProjectsRequest) (*ListProjectsResponse, error)
	CreateIssue(context.Context, *CreateIssueRequest) (*CreateIssueResponse, error)
	ListIssues(context.Context, *ListIssuesRequest) (*ListIssuesResponse, error)
	UpdateIssue(context.Context, *UpdateIssueRequest) (*UpdateIssueResponse, error)

	ExportEntries(context.Context, *ExportEntriesRequest) (*ExportEntriesResponse, error)
}

// UnimplementedTrackerServiceServer answers every method with
// codes.Unimplemented. Embed it to stay forward compatible.
type UnimplementedTrackerServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedTrackerServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, unimplemented("Ping")
}
func (UnimplementedTrackerServiceServer) RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error) {
	return nil, unimplemented("RegisterUser")
}
func (UnimplementedTrackerServiceServer) GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error) {
	return nil, unimplemented("GetSalt")
}
func (UnimplementedTrackerServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, unimplemented("Login")
}
func (UnimplementedTrackerServiceServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, unimplemented("RefreshToken")
}
func (UnimplementedTrackerServiceServer) GetActive(context.Context, *GetActiveRequest) (*GetActiveResponse, error) {
	return nil, unimplemented("GetActive")
}
func (UnimplementedTrackerServiceServer) GetStatus(context.Context, *GetStatusRequest) (*GetStatusResponse, error) {
	return nil, unimplemented("GetStatus")
}
func (UnimplementedTrackerServiceServer) StartTimer(context.Context, *StartTimerRequest) (*StartTimerResponse, error) {
	return nil, unimplemented("StartTimer")
}
func (UnimplementedTrackerServiceServer) PauseTimer(context.Context, *PauseTimerRequest) (*PauseTimerResponse, error) {
	return nil, unimplemented("PauseTimer")
}
func (UnimplementedTrackerServiceServer) ResumeTimer(context.Context, *ResumeTimerRequest) (*ResumeTimerResponse, error) {
	return nil, unimplemented("ResumeTimer")
}
func (UnimplementedTrackerServiceServer) StopTimer(context.Context, *StopTimerRequest) (*StopTimerResponse, error) {
	return nil, unimplemented("StopTimer")
}
func (UnimplementedTrackerServiceServer) SyncTimer(context.Context, *SyncTimerRequest) (*SyncTimerResponse, error) {
	return nil, unimplemented("SyncTimer")
}
func (UnimplementedTrackerServiceServer) RecentEntries(context.Context, *RecentEntriesRequest) (*RecentEntriesResponse, error) {
	return nil, unimplemented("RecentEntries")
}
func (UnimplementedTrackerServiceServer) CreateProject(context.Context, *CreateProjectRequest) (*CreateProjectResponse, error) {
	return nil, unimplemented("CreateProject")
}
func (UnimplementedTrackerServiceServer) ListProjects(context.Context, *ListProjectsRequest) (*ListProjectsResponse, error) {
	return nil, unimplemented("ListProjects")
}
func (UnimplementedTrackerServiceServer) CreateIssue(context.Context, *CreateIssueRequest) (*CreateIssueResponse, error) {
	return nil, unimplemented("CreateIssue")
}
func (UnimplementedTrackerServiceServer) ListIssues(context.Context, *ListIssuesRequest) (*ListIssuesResponse, error) {
	return nil, unimplemented("ListIssues")
}
func (UnimplementedTrackerServiceServer) UpdateIssue(context.Context, *UpdateIssueRequest) (*UpdateIssueResponse, error) {
	return nil, unimplemented("UpdateIssue")
}
func (UnimplementedTrackerServiceServer) ExportEntries(context.Context, *ExportEntriesRequest) (*ExportEntriesResponse, error) {
	return nil, unimplemented("ExportEntries")
}

// unary builds the MethodDesc for one method: decode the request, then run
// call directly or through the server interceptor chain.
func unary[Req, Resp any](method string, call func(TrackerServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(TrackerServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			})
		},
	}
}

// TrackerService_ServiceDesc describes TrackerService for grpc.Server.
var TrackerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TrackerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", TrackerServiceServer.Ping),
		unary("RegisterUser", TrackerServiceServer.RegisterUser),
		unary("GetSalt", TrackerServiceServer.GetSalt),
		unary("Login", TrackerServiceServer.Login),
		unary("RefreshToken", TrackerServiceServer.RefreshToken),
		unary("GetActive", TrackerServiceServer.GetActive),
		unary("GetStatus", TrackerServiceServer.GetStatus),
		unary("StartTimer", TrackerServiceServer.StartTimer),
		unary("PauseTimer", TrackerServiceServer.PauseTimer),
		unary("ResumeTimer", TrackerServiceServer.ResumeTimer),
		unary("StopTimer", TrackerServiceServer.StopTimer),
		unary("SyncTimer", TrackerServiceServer.SyncTimer),
		unary("RecentEntries", TrackerServiceServer.RecentEntries),
		unary("CreateProject", TrackerServiceServer.CreateProject),
		unary("ListProjects", TrackerServiceServer.ListProjects),
		unary("CreateIssue", TrackerServiceServer.CreateIssue),
		unary("ListIssues", TrackerServiceServer.ListIssues),
		unary("UpdateIssue", TrackerServiceServer.UpdateIssue),
		unary("ExportEntries", TrackerServiceServer.ExportEntries),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tracker",
}

// RegisterTrackerServiceServer attaches srv to s.
func RegisterTrackerServiceServer(s grpc.ServiceRegistrar, srv TrackerServiceServer) {
	s.RegisterService(&TrackerService_ServiceDesc, srv)
}
