package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophtracker/internal/dbx"
	"github.com/dmitrijs2005/gophtracker/internal/server/repositories/issues"
	"github.com/dmitrijs2005/gophtracker/internal/server/repositories/projects"
	"github.com/dmitrijs2005/gophtracker/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gophtracker/internal/server/repositories/timeentries"
	"github.com/dmitrijs2005/gophtracker/internal/server/repositories/timers"
	"github.com/dmitrijs2005/gophtracker/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a DB handle or a
// transaction, so services can run several of them in one unit of work.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Projects(db dbx.DBTX) projects.Repository
	Issues(db dbx.DBTX) issues.Repository
	Timers(db dbx.DBTX) timers.Repository
	TimeEntries(db dbx.DBTX) timeentries.Repository
}
