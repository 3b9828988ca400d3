package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidmqan/mqan-console/internal/ui"
)

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "Manage saved filter views",
	Long: `Saved views are named filters created in the console with "s" and
loaded with "v". They can also be used with query and export --view.`,
}

var viewsListCmd = &cobra.Command{
	Use:   "list [page]",
	Short: "List saved views",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runViewsList,
}

var viewsDeleteCmd = &cobra.Command{
	Use:   "delete <page> [name]",
	Short: "Delete a saved view",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runViewsDelete,
}

var viewsDeleteYes bool

func init() {
	viewsDeleteCmd.Flags().BoolVarP(&viewsDeleteYes, "yes", "y", false, "do not ask for confirmation")
	viewsCmd.AddCommand(viewsListCmd, viewsDeleteCmd)
}

func runViewsList(cmd *cobra.Command, args []string) error {
	s, err := openSession(logStderr)
	if err != nil {
		return err
	}
	defer s.Close()

	var page string
	if len(args) == 1 {
		page = args[0]
		if _, ok := s.registry().Get(page); !ok {
			return fmt.Errorf("unknown page %q", page)
		}
	}

	views, err := s.store.ListViews(page)
	if err != nil {
		return err
	}
	ui.FprintViews(cmd.OutOrStdout(), views)
	return nil
}

func runViewsDelete(cmd *cobra.Command, args []string) error {
	s, err := openSession(logStderr)
	if err != nil {
		return err
	}
	defer s.Close()

	page := args[0]
	var name string
	if len(args) == 2 {
		name = args[1]
	} else {
		views, err := s.store.ListViews(page)
		if err != nil {
			return err
		}
		if len(views) == 0 {
			return fmt.Errorf("page %s has no saved views", page)
		}
		choices := make([]ui.Choice, len(views))
		for i, sv := range views {
			choices[i] = ui.Choice{Value: sv.Name, Detail: "filter: " + sv.Spec.String()}
		}
		name, err = ui.RunSelectorWithValue(ui.SelectorConfig{
			Title:       "Delete View",
			Subtitle:    fmt.Sprintf("%d views saved for %s", len(views), page),
			ValueHeader: "View",
			Choices:     choices,
		})
		if err != nil || name == "" {
			return err
		}
	}

	if !viewsDeleteYes {
		ok, err := ui.ConfirmDeleteView(page, name)
		if err != nil || !ok {
			return err
		}
	}

	if err := s.store.DeleteView(page, name); err != nil {
		return err
	}
	s.logger.Info("Deleted view", "page", page, "name", name)
	ui.PrintSuccess(fmt.Sprintf("Deleted view %s/%s", page, name))
	return nil
}
