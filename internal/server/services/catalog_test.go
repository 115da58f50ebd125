package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophtracker/internal/common"
	"github.com/dmitrijs2005/gophtracker/internal/server/models"
	"github.com/dmitrijs2005/gophtracker/internal/timer"
)

func newCatalog(t *testing.T) (*CatalogService, *memStore) {
	t.Helper()
	store := newMemStore()
	store.projects["p9"] = &models.Project{ID: "p9", UserID: "u2", Name: "Other"}
	svc := NewCatalogService(newTxDB(t), store)
	n := 0
	svc.newID = func() string { n++; return "c" + string(rune('0'+n)) }
	return svc, store
}

func TestCreateProject(t *testing.T) {
	svc, store := newCatalog(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, "u1", "  Website ", "#00ff00")
	require.NoError(t, err)
	assert.Equal(t, &models.Project{ID: "c1", UserID: "u1", Name: "Website", Color: "#00ff00", IsActive: true}, p)

	_, err = svc.CreateProject(ctx, "u1", "   ", "")
	assert.ErrorIs(t, err, common.ErrorValidation)

	store.fail["projects.Create"] = errBoom{}
	_, err = svc.CreateProject(ctx, "u1", "Docs", "")
	assert.EqualError(t, err, "boom")
}

func TestCreateIssue(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, "u1", "Website", "")
	require.NoError(t, err)

	i, err := svc.CreateIssue(ctx, "u1", p.ID, "Login bug", "high", "")
	require.NoError(t, err)
	assert.Equal(t, p.ID, i.ProjectID)
	assert.Equal(t, "high", i.Priority)
	assert.Equal(t, models.IssueOpen, i.Status)
	assert.True(t, i.IsActive)

	loose, err := svc.CreateIssue(ctx, "u1", "", "Loose", "", models.IssueInProgress)
	require.NoError(t, err)
	assert.Equal(t, "", loose.ProjectID)
	assert.Equal(t, models.IssueInProgress, loose.Status)

	_, err = svc.CreateIssue(ctx, "u1", "p9", "Sneaky", "", "")
	assert.ErrorIs(t, err, common.ErrorNotFound, "foreign project")

	_, err = svc.CreateIssue(ctx, "u1", "missing", "Sneaky", "", "")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = svc.CreateIssue(ctx, "u1", "", "", "", "")
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = svc.CreateIssue(ctx, "u1", "", "Odd", "", "wontfix")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestListProjectsAndIssues(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	b, err := svc.CreateProject(ctx, "u1", "Beta", "")
	require.NoError(t, err)
	_, err = svc.CreateProject(ctx, "u1", "Alpha", "")
	require.NoError(t, err)
	_, err = svc.CreateIssue(ctx, "u1", b.ID, "In beta", "", "")
	require.NoError(t, err)
	_, err = svc.CreateIssue(ctx, "u1", "", "Loose", "", models.IssueResolved)
	require.NoError(t, err)

	ps, err := svc.ListProjects(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "Alpha", ps[0].Name)

	assert.Equal(t, 1, ps[1].ActiveIssues)

	all, err := svc.ListIssues(ctx, "u1", models.IssueFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	inBeta, err := svc.ListIssues(ctx, "u1", models.IssueFilter{ProjectID: b.ID})
	require.NoError(t, err)
	require.Len(t, inBeta, 1)
	assert.Equal(t, "In beta", inBeta[0].Title)

	resolved, err := svc.ListIssues(ctx, "u1", models.IssueFilter{Status: models.IssueResolved})
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "Loose", resolved[0].Title)

	_, err = svc.ListIssues(ctx, "u1", models.IssueFilter{Status: "done"})
	assert.ErrorIs(t, err, common.ErrorValidation)

	none, err := svc.ListProjects(ctx, "u3")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListProjectsAndIssues_Totals(t *testing.T) {
	svc, store := newCatalog(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, "u1", "Website", "")
	require.NoError(t, err)
	i, err := svc.CreateIssue(ctx, "u1", p.ID, "Login bug", "", "")
	require.NoError(t, err)

	store.entries = []timer.TimeEntry{
		{ID: "e1", UserID: "u1", Trackable: timer.Project(p.ID), ProjectID: p.ID, DurationSeconds: 600},
		{ID: "e2", UserID: "u1", Trackable: timer.Issue(i.ID), ProjectID: p.ID, IssueID: i.ID, DurationSeconds: 1200},
	}

	ps, err := svc.ListProjects(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, int64(1800), ps[0].TotalSeconds)

	is, err := svc.ListIssues(ctx, "u1", models.IssueFilter{})
	require.NoError(t, err)
	require.Len(t, is, 1)
	assert.Equal(t, int64(1200), is[0].TotalSeconds)
}

func TestUpdateIssue(t *testing.T) {
	svc, store := newCatalog(t)
	ctx := context.Background()
	store.issues["i9"] = &models.Issue{ID: "i9", UserID: "u2", Title: "Theirs", Status: models.IssueOpen, IsActive: true}

	i, err := svc.CreateIssue(ctx, "u1", "", "Login bug", "", "")
	require.NoError(t, err)

	resolved := models.IssueResolved
	got, err := svc.UpdateIssue(ctx, "u1", i.ID, &resolved, nil)
	require.NoError(t, err)
	assert.Equal(t, models.IssueResolved, got.Status)
	assert.True(t, got.IsActive)

	archived := false
	got, err = svc.UpdateIssue(ctx, "u1", i.ID, nil, &archived)
	require.NoError(t, err)
	assert.Equal(t, models.IssueResolved, got.Status)
	assert.False(t, got.IsActive)

	listed, err := svc.ListIssues(ctx, "u1", models.IssueFilter{})
	require.NoError(t, err)
	assert.Empty(t, listed, "archived issues are not listed")

	_, err = svc.UpdateIssue(ctx, "u1", "i9", &resolved, nil)
	assert.ErrorIs(t, err, common.ErrorNotFound, "foreign issue")
	assert.Equal(t, models.IssueOpen, store.issues["i9"].Status)

	_, err = svc.UpdateIssue(ctx, "u1", "missing", &resolved, nil)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	bogus := "done"
	_, err = svc.UpdateIssue(ctx, "u1", i.ID, &bogus, nil)
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = svc.UpdateIssue(ctx, "u1", i.ID, nil, nil)
	assert.ErrorIs(t, err, common.ErrorValidation)

	store.fail["issues.Update"] = errBoom{}
	_, err = svc.UpdateIssue(ctx, "u1", i.ID, &resolved, nil)
	assert.EqualError(t, err, "boom")
}
