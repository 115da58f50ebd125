package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophtracker/internal/logging"
	pb "github.com/dmitrijs2005/gophtracker/internal/proto"
	"github.com/dmitrijs2005/gophtracker/internal/server/models"
	"github.com/dmitrijs2005/gophtracker/internal/server/services"
	"github.com/dmitrijs2005/gophtracker/internal/timer"
	"google.golang.org/grpc"
)

type userSvc interface {
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Register(ctx context.Context, username string, salt, verifier []byte) (*models.User, error)
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifierCandidate []byte) (*services.TokenPair, error)
}

type timerSvc interface {
	GetActive(ctx context.Context, userID string) (*services.TimerState, error)
	Status(ctx context.Context, userID string) (*services.StatusSummary, error)
	Start(ctx context.Context, userID string, tr timer.Trackable, description string) (*services.StartResult, error)
	Pause(ctx context.Context, userID string) (*services.TimerState, error)
	Resume(ctx context.Context, userID string) (*services.TimerState, error)
	Stop(ctx context.Context, userID string) (*timer.TimeEntry, error)
	Sync(ctx context.Context, userID string, snap timer.Snapshot) (*services.SyncResult, error)
	RecentEntries(ctx context.Context, userID string, limit int) ([]*timer.TimeEntry, error)
}

type catalogSvc interface {
	CreateProject(ctx context.Context, userID, name, color string) (*models.Project, error)
	CreateIssue(ctx context.Context, userID, projectID, title, priority, status string) (*models.Issue, error)
	ListProjects(ctx context.Context, userID string) ([]*models.Project, error)
	ListIssues(ctx context.Context, userID string, f models.IssueFilter) ([]*models.Issue, error)
	UpdateIssue(ctx context.Context, userID, id string, status *string, active *bool) (*models.Issue, error)
}

type reportSvc interface {
	Export(ctx context.Context, userID string, format string) (*services.ExportResult, error)
}

type GRPCServer struct {
	pb.UnimplementedTrackerServiceServer
	address   string
	users     userSvc
	timers    timerSvc
	catalog   catalogSvc
	reports   reportSvc
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, us userSvc, ts timerSvc, cs catalogSvc, rs reportSvc, secretKey string) (*GRPCServer, error) {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		timers:    ts,
		catalog:   cs,
		reports:   rs,
		jwtSecret: []byte(secretKey),
	}, nil
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	// creates gRPC-server
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))

	// registers service
	pb.RegisterTrackerServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
