package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const defaultEntriesLimit = 20

var issueStatuses = map[string]struct{}{"open": {}, "in_progress": {}, "resolved": {}, "closed": {}}

func (a *App) Projects(ctx context.Context) error {
	ps, err := a.catalogService.ListProjects(ctx)
	if err != nil {
		return err
	}
	if len(ps) == 0 {
		printlnFn("No projects")
		return nil
	}
	for _, p := range ps {
		printlnFn(fmt.Sprintf("%s  %s  %s  %d active issues %s",
			p.ID, p.Name, formatElapsed(p.TotalSeconds), p.ActiveIssues, dimStyle.Render(p.Color)))
	}
	return nil
}

func (a *App) AddProject(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: addproject <name> [color]")
	}
	name, color := args[0], ""
	if len(args) > 1 {
		color = args[1]
	}
	p, err := a.catalogService.CreateProject(ctx, name, color)
	if err != nil {
		return err
	}
	printlnFn(successStyle.Render("Project created: " + p.ID))
	return nil
}

// Issues lists active issues. Arguments are an optional project id and an
// optional status, in any order.
func (a *App) Issues(ctx context.Context, args []string) error {
	var projectID, status string
	for _, arg := range args {
		if _, ok := issueStatuses[arg]; ok && status == "" {
			status = arg
			continue
		}
		if projectID != "" {
			return errors.New("usage: issues [project-id] [status]")
		}
		projectID = arg
	}
	is, err := a.catalogService.ListIssues(ctx, projectID, status)
	if err != nil {
		return err
	}
	if len(is) == 0 {
		printlnFn("No issues")
		return nil
	}
	for _, i := range is {
		printlnFn(fmt.Sprintf("%s  [%s] %s  %s  %s %s",
			i.ID, i.Priority, i.Title, i.Status, formatElapsed(i.TotalSeconds), dimStyle.Render("project:"+i.ProjectID)))
	}
	return nil
}

func (a *App) IssueStatus(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: issuestatus <issue-id> open|in_progress|resolved|closed")
	}
	if _, ok := issueStatuses[args[1]]; !ok {
		return fmt.Errorf("unknown issue status %q", args[1])
	}
	i, err := a.catalogService.SetIssueStatus(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	printlnFn(successStyle.Render(fmt.Sprintf("Issue %s is %s", i.ID, i.Status)))
	return nil
}

func (a *App) ArchiveIssue(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: archiveissue <issue-id>")
	}
	i, err := a.catalogService.ArchiveIssue(ctx, args[0])
	if err != nil {
		return err
	}
	printlnFn(successStyle.Render("Issue archived: " + i.ID))
	return nil
}

func (a *App) AddIssue(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.New("usage: addissue <project-id> <priority> <title>")
	}
	i, err := a.catalogService.CreateIssue(ctx, args[0], strings.Join(args[2:], " "), args[1])
	if err != nil {
		return err
	}
	printlnFn(successStyle.Render("Issue created: " + i.ID))
	return nil
}

func (a *App) Entries(ctx context.Context, args []string) error {
	limit := defaultEntriesLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return errors.New("usage: entries [limit]")
		}
		limit = n
	}
	es, err := a.catalogService.RecentEntries(ctx, limit)
	if err != nil {
		return err
	}
	if len(es) == 0 {
		printlnFn("No entries")
		return nil
	}
	for _, e := range es {
		printlnFn(renderEntry(e))
	}
	return nil
}

// Export asks the server for a report and optionally fetches the file into
// the local exports directory.
func (a *App) Export(ctx context.Context, args []string) error {
	format, download := "csv", false
	for _, arg := range args {
		switch arg {
		case "--download", "-d":
			download = true
		case "csv", "ics":
			format = arg
		default:
			return errors.New("usage: export [csv|ics] [--download]")
		}
	}

	exp, path, err := a.catalogService.Export(ctx, format, download)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Exported %d entries", exp.Count))
	if path != "" {
		printlnFn(successStyle.Render("Saved to " + path))
		return nil
	}
	printlnFn(exp.URL)
	return nil
}
