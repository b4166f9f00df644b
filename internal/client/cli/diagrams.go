package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkozlov/flowdeck/internal/client/models"
)

// resolveID turns a command argument into a diagram id. "#N" addresses row
// N of the last listing; anything else is parsed as a raw id.
func (a *App) resolveID(arg string) (int64, error) {
	if strings.HasPrefix(arg, "#") {
		n, err := strconv.Atoi(arg[1:])
		if err != nil {
			return 0, fmt.Errorf("invalid row reference %q", arg)
		}
		d, ok := a.diagrams.ByIndex(n)
		if !ok {
			return 0, fmt.Errorf("no row %s in the last listing (run 'list' first)", arg)
		}
		return d.ID, nil
	}

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid diagram id %q", arg)
	}
	return id, nil
}

// List prints the user's diagrams, most recently updated first.
func (a *App) List(ctx context.Context) error {
	if err := a.guard.Ensure(ctx); err != nil {
		return reportError(err)
	}

	list, err := a.diagrams.List(ctx)
	if err != nil {
		return reportError(err)
	}
	if len(list) == 0 {
		printlnFn("No diagrams yet. Create one with 'new'.")
		return nil
	}

	for i, d := range list {
		printlnFn(fmt.Sprintf("#%d  id=%d  %-30s  updated %s",
			i+1, d.ID, d.Title, d.UpdatedAt.Local().Format("2006-01-02 15:04:05")))
	}
	return nil
}

// New creates an empty diagram with a prompted title.
func (a *App) New(ctx context.Context) error {
	if err := a.guard.Ensure(ctx); err != nil {
		return reportError(err)
	}

	title, err := getSimpleText(a.reader, "Diagram title", os.Stdout)
	if err != nil {
		return err
	}
	if title == "" {
		printlnFn("Title must not be empty.")
		return nil
	}

	d, err := a.diagrams.Create(ctx, models.CreateDiagram{
		Title:   title,
		Content: json.RawMessage(`{}`),
	})
	if err != nil {
		return reportError(err)
	}

	printlnFn(fmt.Sprintf("Created %q (id=%d)", d.Title, d.ID))
	return nil
}

// Show prints one diagram including its content.
func (a *App) Show(ctx context.Context, arg string) error {
	if err := a.guard.Ensure(ctx); err != nil {
		return reportError(err)
	}

	id, err := a.resolveID(arg)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	d, err := a.diagrams.Get(ctx, id)
	if err != nil {
		return reportError(err)
	}

	content, err := json.MarshalIndent(d.Content, "", "  ")
	if err != nil {
		content = d.Content
	}
	printlnFn(fmt.Sprintf("id:      %d", d.ID))
	printlnFn("title:  ", d.Title)
	printlnFn("created:", d.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	printlnFn("updated:", d.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	printlnFn("content:", string(content))
	return nil
}

// Rename changes a diagram's title.
func (a *App) Rename(ctx context.Context, arg string) error {
	if err := a.guard.Ensure(ctx); err != nil {
		return reportError(err)
	}

	id, err := a.resolveID(arg)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	title, err := getSimpleText(a.reader, "New title", os.Stdout)
	if err != nil {
		return err
	}
	if title == "" {
		printlnFn("Title must not be empty.")
		return nil
	}

	d, err := a.diagrams.Update(ctx, id, models.DiagramPatch{Title: &title})
	if err != nil {
		return reportError(err)
	}

	printlnFn(fmt.Sprintf("Renamed to %q (id=%d)", d.Title, d.ID))
	return nil
}

// Edit replaces a diagram's content with a JSON document read from a line.
func (a *App) Edit(ctx context.Context, arg string) error {
	if err := a.guard.Ensure(ctx); err != nil {
		return reportError(err)
	}

	id, err := a.resolveID(arg)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	raw, err := getSimpleText(a.reader, "Content (JSON object)", os.Stdout)
	if err != nil {
		return err
	}
	if !json.Valid([]byte(raw)) {
		printlnFn("Content must be valid JSON.")
		return nil
	}

	d, err := a.diagrams.Update(ctx, id, models.DiagramPatch{Content: json.RawMessage(raw)})
	if err != nil {
		return reportError(err)
	}

	printlnFn(fmt.Sprintf("Updated %q (id=%d)", d.Title, d.ID))
	return nil
}

// Delete removes a diagram.
func (a *App) Delete(ctx context.Context, arg string) error {
	if err := a.guard.Ensure(ctx); err != nil {
		return reportError(err)
	}

	id, err := a.resolveID(arg)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.diagrams.Delete(ctx, id); err != nil {
		return reportError(err)
	}

	printlnFn("Deleted.")
	return nil
}
