package grpc

import (
	"context"

	pb "github.com/dmitrijs2005/gophtracker/internal/proto"
	"github.com/dmitrijs2005/gophtracker/internal/server/models"
	"github.com/dmitrijs2005/gophtracker/internal/timer"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) RegisterUser(ctx context.Context, req *pb.RegisterUserRequest) (*pb.RegisterUserResponse, error) {

	s.logger.Info(ctx, "Registration request")

	result, err := s.users.Register(ctx, req.Username, req.Salt, req.Verifier)

	if err != nil {
		s.logger.Error(ctx, "registration failed", "error", err)
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Registered", "username", req.Username)
	return &pb.RegisterUserResponse{UserID: result.ID}, nil

}

func (s *GRPCServer) GetSalt(ctx context.Context, req *pb.GetSaltRequest) (*pb.GetSaltResponse, error) {

	result, err := s.users.GetSalt(ctx, req.Username)

	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &pb.GetSaltResponse{Salt: result}, nil

}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {

	tokens, err := s.users.Login(ctx, req.Username, req.VerifierCandidate)

	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.LoginResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil

}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *pb.RefreshTokenRequest) (*pb.RefreshTokenResponse, error) {

	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)

	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil

}

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {

	return &pb.PingResponse{Status: "OK"}, nil

}

// fail logs a failed timer call with its user and maps the error.
func (s *GRPCServer) fail(ctx context.Context, method, userID string, err error) error {
	st := toStatus(err)
	if status.Code(st) == codes.Internal {
		s.logger.Error(ctx, "request failed", "method", method, "user_id", userID, "error", err)
	} else {
		s.logger.Debug(ctx, "request rejected", "method", method, "user_id", userID, "error", err)
	}
	return st
}

func (s *GRPCServer) GetActive(ctx context.Context, req *pb.GetActiveRequest) (*pb.GetActiveResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	st, err := s.timers.GetActive(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, "GetActive", userID, err)
	}

	return &pb.GetActiveResponse{Timer: pb.FromTimer(st.Timer, st.Now)}, nil
}

func (s *GRPCServer) GetStatus(ctx context.Context, req *pb.GetStatusRequest) (*pb.GetStatusResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	sum, err := s.timers.Status(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, "GetStatus", userID, err)
	}

	return &pb.GetStatusResponse{Status: sum.Status, TimerID: sum.TimerID, ElapsedSeconds: sum.ElapsedSeconds}, nil
}

func (s *GRPCServer) StartTimer(ctx context.Context, req *pb.StartTimerRequest) (*pb.StartTimerResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tr, err := req.Trackable.Model()
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	res, err := s.timers.Start(ctx, userID, tr, req.Description)
	if err != nil {
		return nil, s.fail(ctx, "StartTimer", userID, err)
	}

	s.logger.Info(ctx, "Timer started", "user_id", userID, "timer_id", res.Timer.ID, "trackable", tr.String())
	return &pb.StartTimerResponse{
		Timer:   pb.FromTimer(res.Timer, res.Now),
		Stopped: pb.FromEntry(res.Stopped),
	}, nil
}

func (s *GRPCServer) PauseTimer(ctx context.Context, req *pb.PauseTimerRequest) (*pb.PauseTimerResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	st, err := s.timers.Pause(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, "PauseTimer", userID, err)
	}

	return &pb.PauseTimerResponse{Timer: pb.FromTimer(st.Timer, st.Now)}, nil
}

func (s *GRPCServer) ResumeTimer(ctx context.Context, req *pb.ResumeTimerRequest) (*pb.ResumeTimerResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	st, err := s.timers.Resume(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, "ResumeTimer", userID, err)
	}

	return &pb.ResumeTimerResponse{Timer: pb.FromTimer(st.Timer, st.Now)}, nil
}

func (s *GRPCServer) StopTimer(ctx context.Context, req *pb.StopTimerRequest) (*pb.StopTimerResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := s.timers.Stop(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, "StopTimer", userID, err)
	}

	s.logger.Info(ctx, "Timer stopped", "user_id", userID, "timer_id", entry.TimerID, "duration_seconds", entry.DurationSeconds)
	return &pb.StopTimerResponse{Entry: pb.FromEntry(entry)}, nil
}

func (s *GRPCServer) SyncTimer(ctx context.Context, req *pb.SyncTimerRequest) (*pb.SyncTimerResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	snap := timer.Snapshot{
		TimerID:        req.TimerID,
		Status:         timer.Status(req.Status),
		ElapsedSeconds: pb.Int64Ptr(req.ElapsedSeconds),
	}

	res, err := s.timers.Sync(ctx, userID, snap)
	if err != nil {
		return nil, s.fail(ctx, "SyncTimer", userID, err)
	}

	return &pb.SyncTimerResponse{
		Timer: pb.FromTimer(res.Timer, res.Now),
		Entry: pb.FromEntry(res.Entry),
	}, nil
}

func (s *GRPCServer) RecentEntries(ctx context.Context, req *pb.RecentEntriesRequest) (*pb.RecentEntriesResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.timers.RecentEntries(ctx, userID, int(req.Limit))
	if err != nil {
		return nil, s.fail(ctx, "RecentEntries", userID, err)
	}

	out := make([]*pb.TimeEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, pb.FromEntry(e))
	}
	return &pb.RecentEntriesResponse{Entries: out}, nil
}

func fromProject(p *models.Project) *pb.Project {
	return &pb.Project{
		ID: p.ID, Name: p.Name, Color: p.Color, IsActive: p.IsActive, CreatedAt: pb.Timestamp(p.CreatedAt),
		TotalSeconds: p.TotalSeconds, ActiveIssues: int32(p.ActiveIssues),
	}
}

func fromIssue(i *models.Issue) *pb.Issue {
	return &pb.Issue{
		ID: i.ID, ProjectID: i.ProjectID, Title: i.Title, Priority: i.Priority, Status: i.Status,
		IsActive: i.IsActive, CreatedAt: pb.Timestamp(i.CreatedAt), TotalSeconds: i.TotalSeconds,
	}
}

func (s *GRPCServer) CreateProject(ctx context.Context, req *pb.CreateProjectRequest) (*pb.CreateProjectResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.catalog.CreateProject(ctx, userID, req.Name, req.Color)
	if err != nil {
		return nil, s.fail(ctx, "CreateProject", userID, err)
	}

	return &pb.CreateProjectResponse{Project: fromProject(p)}, nil
}

func (s *GRPCServer) ListProjects(ctx context.Context, req *pb.ListProjectsRequest) (*pb.ListProjectsResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.catalog.ListProjects(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, "ListProjects", userID, err)
	}

	out := make([]*pb.Project, 0, len(items))
	for _, p := range items {
		out = append(out, fromProject(p))
	}
	return &pb.ListProjectsResponse{Projects: out}, nil
}

func (s *GRPCServer) CreateIssue(ctx context.Context, req *pb.CreateIssueRequest) (*pb.CreateIssueResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	i, err := s.catalog.CreateIssue(ctx, userID, req.ProjectID, req.Title, req.Priority, req.Status)
	if err != nil {
		return nil, s.fail(ctx, "CreateIssue", userID, err)
	}

	return &pb.CreateIssueResponse{Issue: fromIssue(i)}, nil
}

func (s *GRPCServer) ListIssues(ctx context.Context, req *pb.ListIssuesRequest) (*pb.ListIssuesResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.catalog.ListIssues(ctx, userID, models.IssueFilter{ProjectID: req.ProjectID, Status: req.Status})
	if err != nil {
		return nil, s.fail(ctx, "ListIssues", userID, err)
	}

	out := make([]*pb.Issue, 0, len(items))
	for _, i := range items {
		out = append(out, fromIssue(i))
	}
	return &pb.ListIssuesResponse{Issues: out}, nil
}

func (s *GRPCServer) UpdateIssue(ctx context.Context, req *pb.UpdateIssueRequest) (*pb.UpdateIssueResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	i, err := s.catalog.UpdateIssue(ctx, userID, req.ID, pb.StringPtr(req.Status), pb.BoolPtr(req.IsActive))
	if err != nil {
		return nil, s.fail(ctx, "UpdateIssue", userID, err)
	}

	return &pb.UpdateIssueResponse{Issue: fromIssue(i)}, nil
}

func (s *GRPCServer) ExportEntries(ctx context.Context, req *pb.ExportEntriesRequest) (*pb.ExportEntriesResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	res, err := s.reports.Export(ctx, userID, req.Format)
	if err != nil {
		return nil, s.fail(ctx, "ExportEntries", userID, err)
	}

	return &pb.ExportEntriesResponse{URL: res.URL, Key: res.Key, Count: int32(res.Count)}, nil
}
