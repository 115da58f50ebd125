package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophtracker/internal/client/models"
	"github.com/dmitrijs2005/gophtracker/internal/common"
	pb "github.com/dmitrijs2005/gophtracker/internal/proto"
	"github.com/dmitrijs2005/gophtracker/internal/timer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL  string
	timeout      time.Duration
	conn         *grpc.ClientConn
	client       pb.TrackerServiceClient
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = access
	s.refreshToken = refresh
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	access, refresh := s.tokens()
	ctx = withAccessToken(ctx, access)

	err := invoker(ctx, method, req, reply, cc, opts...)

	if err != nil {

		st, ok := status.FromError(err)
		if !ok {
			return err
		}

		if st.Code() != codes.Unauthenticated {
			return err
		}
		if st.Message() != common.ErrTokenExpired.Error() {
			return err
		}

		if refresh == "" {
			return err
		}

		refreshTokenResponse, err := s.client.RefreshToken(ctx, &pb.RefreshTokenRequest{RefreshToken: refresh})
		if err != nil {
			return err
		}

		s.setTokens(refreshTokenResponse.AccessToken, refreshTokenResponse.RefreshToken)

		// tokens refreshed, retry with the new access token
		ctx = withAccessToken(ctx, refreshTokenResponse.AccessToken)
		return invoker(ctx, method, req, reply, cc, opts...)

	}

	return err
}

// NewTrackerClient dials endpointURL lazily. Every call is bounded by
// timeout unless the caller's context expires first.
func NewTrackerClient(endpointURL string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewTrackerServiceClient(conn)
	return nil
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Register(ctx context.Context, userName string, salt []byte, key []byte) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req := &pb.RegisterUserRequest{Username: userName, Salt: salt, Verifier: key}

	if _, err := s.client.RegisterUser(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) GetSalt(ctx context.Context, userName string) ([]byte, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetSalt(ctx, &pb.GetSaltRequest{Username: userName})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Salt, nil
}

func (s *GRPCClient) Login(ctx context.Context, userName string, key []byte) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req := &pb.LoginRequest{Username: userName, VerifierCandidate: key}

	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return s.mapError(err)
	}

	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) GetActive(ctx context.Context) (*models.RemoteTimer, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetActive(ctx, &pb.GetActiveRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return remoteTimer(resp.Timer)
}

func (s *GRPCClient) Start(ctx context.Context, tr timer.Trackable, description string) (*models.RemoteTimer, *timer.TimeEntry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req := &pb.StartTimerRequest{
		Trackable:   &pb.Trackable{Kind: string(tr.Kind), ID: tr.ID},
		Description: description,
	}
	resp, err := s.client.StartTimer(ctx, req)
	if err != nil {
		return nil, nil, s.mapError(err)
	}
	rt, err := remoteTimer(resp.Timer)
	if err != nil {
		return nil, nil, err
	}
	return rt, entry(resp.Stopped), nil
}

func (s *GRPCClient) Pause(ctx context.Context) (*models.RemoteTimer, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.PauseTimer(ctx, &pb.PauseTimerRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return remoteTimer(resp.Timer)
}

func (s *GRPCClient) Resume(ctx context.Context) (*models.RemoteTimer, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ResumeTimer(ctx, &pb.ResumeTimerRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return remoteTimer(resp.Timer)
}

func (s *GRPCClient) Stop(ctx context.Context) (*timer.TimeEntry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.StopTimer(ctx, &pb.StopTimerRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return entry(resp.Entry), nil
}

func (s *GRPCClient) Sync(ctx context.Context, snap timer.Snapshot) (*models.RemoteTimer, *timer.TimeEntry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req := &pb.SyncTimerRequest{
		TimerID:        snap.TimerID,
		Status:         string(snap.Status),
		ElapsedSeconds: pb.OptionalInt64(snap.ElapsedSeconds),
	}
	resp, err := s.client.SyncTimer(ctx, req)
	if err != nil {
		return nil, nil, s.mapError(err)
	}
	rt, err := remoteTimer(resp.Timer)
	if err != nil {
		return nil, nil, err
	}
	return rt, entry(resp.Entry), nil
}

func (s *GRPCClient) RecentEntries(ctx context.Context, limit int) ([]*timer.TimeEntry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.RecentEntries(ctx, &pb.RecentEntriesRequest{Limit: int32(limit)})
	if err != nil {
		return nil, s.mapError(err)
	}
	result := make([]*timer.TimeEntry, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		result = append(result, e.Model())
	}
	return result, nil
}

func (s *GRPCClient) CreateProject(ctx context.Context, name, color string) (*models.Project, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.CreateProject(ctx, &pb.CreateProjectRequest{Name: name, Color: color})
	if err != nil {
		return nil, s.mapError(err)
	}
	return project(resp.Project), nil
}

func (s *GRPCClient) ListProjects(ctx context.Context) ([]*models.Project, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListProjects(ctx, &pb.ListProjectsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	result := make([]*models.Project, 0, len(resp.Projects))
	for _, p := range resp.Projects {
		result = append(result, project(p))
	}
	return result, nil
}

func (s *GRPCClient) CreateIssue(ctx context.Context, projectID, title, priority string) (*models.Issue, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req := &pb.CreateIssueRequest{ProjectID: projectID, Title: title, Priority: priority}
	resp, err := s.client.CreateIssue(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return issue(resp.Issue), nil
}

func (s *GRPCClient) ListIssues(ctx context.Context, projectID, status string) ([]*models.Issue, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListIssues(ctx, &pb.ListIssuesRequest{ProjectID: projectID, Status: status})
	if err != nil {
		return nil, s.mapError(err)
	}
	result := make([]*models.Issue, 0, len(resp.Issues))
	for _, i := range resp.Issues {
		result = append(result, issue(i))
	}
	return result, nil
}

func (s *GRPCClient) UpdateIssue(ctx context.Context, id string, u models.IssueUpdate) (*models.Issue, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req := &pb.UpdateIssueRequest{ID: id, Status: pb.OptionalString(u.Status), IsActive: pb.OptionalBool(u.IsActive)}
	resp, err := s.client.UpdateIssue(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return issue(resp.Issue), nil
}

func (s *GRPCClient) Export(ctx context.Context, format string) (*models.Export, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ExportEntries(ctx, &pb.ExportEntriesRequest{Format: format})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.Export{URL: resp.URL, Key: resp.Key, Count: int(resp.Count)}, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrorValidation, st.Message())
	case codes.FailedPrecondition, codes.AlreadyExists:
		return fmt.Errorf("%w: %s", common.ErrorConflict, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func remoteTimer(t *pb.Timer) (*models.RemoteTimer, error) {
	if t == nil {
		return &models.RemoteTimer{}, nil
	}
	m, err := t.Model()
	if err != nil {
		return nil, fmt.Errorf("bad timer from server: %w", err)
	}
	return &models.RemoteTimer{Timer: m, Elapsed: t.ElapsedSeconds, ServerTime: pb.Time(t.ServerTime)}, nil
}

func entry(e *pb.TimeEntry) *timer.TimeEntry {
	if e == nil {
		return nil
	}
	return e.Model()
}

func project(p *pb.Project) *models.Project {
	if p == nil {
		return nil
	}
	return &models.Project{
		ID: p.ID, Name: p.Name, Color: p.Color, IsActive: p.IsActive, CreatedAt: pb.Time(p.CreatedAt),
		TotalSeconds: p.TotalSeconds, ActiveIssues: int(p.ActiveIssues),
	}
}

func issue(i *pb.Issue) *models.Issue {
	if i == nil {
		return nil
	}
	return &models.Issue{
		ID: i.ID, ProjectID: i.ProjectID, Title: i.Title, Priority: i.Priority, Status: i.Status,
		IsActive: i.IsActive, CreatedAt: pb.Time(i.CreatedAt), TotalSeconds: i.TotalSeconds,
	}
}
