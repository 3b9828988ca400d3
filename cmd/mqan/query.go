package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidmqan/mqan-console/internal/catalog"
	"github.com/aidmqan/mqan-console/internal/models"
	"github.com/aidmqan/mqan-console/internal/ui"
)

// recentLimit is how many recorded events the monitor page shows outside
// the live console.
const recentLimit = 20

// filterFlags are the flags shared by query and export.
type filterFlags struct {
	search string
	facets []string
	view   string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "case-insensitive search text")
	cmd.Flags().StringArrayVarP(&f.facets, "facet", "f", nil, "facet selection name=value (repeatable)")
	cmd.Flags().StringVar(&f.view, "view", "", "start from a saved view")
}

var queryFlags filterFlags

var queryCmd = &cobra.Command{
	Use:   "query <page>",
	Short: "Print a filtered record page",
	Example: `  mqan query alerts --facet status=active
  mqan query hospitals -s metro
  mqan query quality --view failing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryFlags.register(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	s, err := openSession(logStderr)
	if err != nil {
		return err
	}
	defer s.Close()

	reg := s.registry()
	page, err := pickPage(reg, args)
	if err != nil || page == nil {
		return err
	}
	spec, err := queryFlags.spec(s, page.Info())
	if err != nil {
		return err
	}

	ui.FprintView(cmd.OutOrStdout(), page.Query(spec))
	return nil
}

// registry builds the page registry over the loaded catalog. The monitor
// page lists the most recently recorded feed events.
func (s *session) registry() *catalog.Registry {
	return catalog.NewRegistry(s.catalog, func() []models.Activity {
		events, err := s.store.RecentActivity(recentLimit)
		if err != nil {
			s.logger.Error("Failed to load activity", "err", err)
			return nil
		}
		return events
	})
}

// pickPage resolves the page argument, asking interactively when it is
// omitted. A nil page with a nil error means the user cancelled.
func pickPage(reg *catalog.Registry, args []string) (catalog.Page, error) {
	if len(args) == 0 {
		var choices []ui.Choice
		for _, p := range reg.Pages() {
			info := p.Info()
			choices = append(choices, ui.Choice{Value: info.Name, Detail: info.Title})
		}
		name, err := ui.RunSelectorWithValue(ui.SelectorConfig{
			Title:       "Select Page",
			Subtitle:    fmt.Sprintf("%d pages", len(choices)),
			ValueHeader: "Page",
			Choices:     choices,
		})
		if err != nil || name == "" {
			return nil, err
		}
		args = []string{name}
	}

	page, ok := reg.Get(args[0])
	if !ok {
		return nil, fmt.Errorf("unknown page %q (pages: %s)", args[0], strings.Join(reg.Names(), ", "))
	}
	return page, nil
}

// spec builds the filter from the flags, starting from a saved view when
// --view is set.
func (f *filterFlags) spec(s *session, info catalog.Info) (models.FilterSpec, error) {
	base := models.FilterSpec{}
	if f.view != "" {
		saved, err := s.store.GetView(info.Name, f.view)
		if err != nil {
			return base, err
		}
		base = saved.Spec
	}
	return buildSpec(info, base, f.search, f.facets)
}

// buildSpec applies search text and name=value facet selections on top of
// base. Facet names and values are checked against the page.
func buildSpec(info catalog.Info, base models.FilterSpec, search string, facets []string) (models.FilterSpec, error) {
	spec := base.Clone()
	if search != "" {
		spec.Search = search
	}
	for _, kv := range facets {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return spec, fmt.Errorf("invalid facet %q, want name=value", kv)
		}
		idx := slices.IndexFunc(info.Facets, func(fi catalog.FacetInfo) bool { return fi.Name == name })
		if idx < 0 {
			return spec, fmt.Errorf("page %s has no facet %q", info.Name, name)
		}
		if !models.IsAll(value) && !slices.Contains(info.Facets[idx].Values, value) {
			return spec, fmt.Errorf("facet %s has no value %q (values: %s)",
				name, value, strings.Join(info.Facets[idx].Values, ", "))
		}
		spec.Facets[name] = value
	}
	return spec, nil
}
