package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/ui"
)

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new item (title can be multiple words)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return errUsage("add: empty title")
			}
			a, err := app.Adapter(cmd.Context())
			if err != nil {
				return err
			}
			t, err := a.Create(cmd.Context(), title)
			if err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added #%d %s", t.ID, t.Title))
			return nil
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Adapter(cmd.Context())
			if err != nil {
				return err
			}
			mode := a.DetectMode(cmd.Context())
			items, err := a.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Panel(listLines(mode, items, group)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "Group output by pending/done")
	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle done for the item with this id",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("done", args[0])
			if err != nil {
				return err
			}
			a, err := app.Adapter(cmd.Context())
			if err != nil {
				return err
			}
			items, err := a.List(cmd.Context())
			if err != nil {
				return err
			}
			i := model.IndexOf(items, id)
			if i < 0 {
				return notFoundError{id: id}
			}
			t, err := a.Toggle(cmd.Context(), items[i])
			if err != nil {
				return err
			}
			state := "pending"
			if t.Done {
				state = "done"
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("#%d %s", t.ID, state))
			return nil
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove the item with this id",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("rm", args[0])
			if err != nil {
				return err
			}
			a, err := app.Adapter(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.Delete(cmd.Context(), id); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("removed #%d", id))
			return nil
		},
	}
}

func newModeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mode",
		Short: "Show the detected mode and configured backend",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Adapter(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "mode: %s\n", a.DetectMode(cmd.Context()))
			if a.Backend() == store.ModeRemote {
				fmt.Fprintf(out, "backend: remote (%s)\n", a.BaseURL())
			} else {
				fmt.Fprintf(out, "backend: local (%s, %s)\n", app.cfg.Local.Driver, app.cfg.Local.DataDir)
			}
			return nil
		},
	}
}

func newCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the locally stored collection",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Adapter(cmd.Context())
			if err != nil {
				return err
			}
			local, ok := a.Store.(*store.Local)
			if !ok {
				return fmt.Errorf("check: only local storage can be checked (backend is %s)", a.Backend())
			}
			raw, err := local.Raw()
			if err != nil {
				return err
			}
			if raw == nil {
				ui.OK(cmd.OutOrStdout(), "nothing stored yet")
				return nil
			}
			if err := model.ValidateCollection(raw); err != nil {
				return fmt.Errorf("check %s: %w", store.CollectionKey, err)
			}
			items, err := a.List(cmd.Context())
			if err != nil {
				return err
			}
			if dup, found := duplicateID(items); found {
				return fmt.Errorf("check %s: duplicate id #%d", store.CollectionKey, dup)
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("%d records valid", len(items)))
			return nil
		},
	}
}

func parseID(cmd, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(s), "#"), 10, 64)
	if err != nil || id == 0 {
		return 0, errUsage("%s: not an id: %s", cmd, s)
	}
	return id, nil
}

func duplicateID(items []model.Todo) (int64, bool) {
	seen := make(map[int64]bool, len(items))
	for _, it := range items {
		if !it.HasID() {
			continue
		}
		if seen[it.ID] {
			return it.ID, true
		}
		seen[it.ID] = true
	}
	return 0, false
}
