package main

import (
	"fmt"

	"arthurchat/internal/themes"
	"arthurchat/pkg/chattypes"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newThemeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "List, select and inspect display themes",
	}
	cmd.AddCommand(
		newThemeListCmd(c),
		newThemeSetCmd(c),
		newThemeShowCmd(c),
		newThemeCSSCmd(c),
		newThemePreviewCmd(c),
	)
	return cmd
}

func newThemeListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := c.load()
			if err != nil {
				return err
			}
			current := app.Themes.GetCurrentThemeType()
			name := lipgloss.NewStyle().Bold(true).Width(16)
			for _, opt := range app.Themes.GetAvailableThemes() {
				marker := "  "
				if opt.Type == current {
					marker = "* "
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%-9s %s%s\n", marker, opt.Type, name.Render(opt.Name), opt.Description)
			}
			return nil
		},
	}
}

func newThemeSetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:       "set <light|dark|academic>",
		Short:     "Select the display theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: themeNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.load()
			if err != nil {
				return err
			}
			if err := app.Themes.SetThemeByName(args[0]); err != nil {
				return err
			}
			app.Printer(cmd.OutOrStdout()).Success(fmt.Sprintf("Theme set to %s", app.Themes.GetCurrentThemeType()))
			return nil
		},
	}
}

func newThemeShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active theme's style variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := c.load()
			if err != nil {
				return err
			}
			theme := app.Themes.GetCurrentTheme()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Theme: %s\n", theme.Name)
			fmt.Fprint(out, themes.GlobalVariables(theme).CSS("  "))
			return nil
		},
	}
}

func newThemeCSSCmd(c *cli) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "css",
		Short: "Print or write the style surface as CSS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := c.load()
			if err != nil {
				return err
			}
			if outPath == "" {
				fmt.Fprint(cmd.OutOrStdout(), app.Surface.CSS())
				return nil
			}
			if err := app.Surface.WriteCSS(outPath); err != nil {
				return fmt.Errorf("failed to write CSS: %w", err)
			}
			app.Printer(cmd.OutOrStdout()).Success("CSS written to " + outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to file instead of stdout")
	return cmd
}

func newThemePreviewCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:       "preview [light|dark|academic]",
		Short:     "Render sample messages with a theme without selecting it",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: themeNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.load()
			if err != nil {
				return err
			}

			factory := app.Themes.GetThemeFactory()
			if len(args) == 1 {
				kind, ok := chattypes.ParseThemeKind(args[0])
				if !ok {
					return fmt.Errorf("%w: %q", themes.ErrUnknownTheme, args[0])
				}
				if factory, err = themes.NewFactory(kind); err != nil {
					return err
				}
			}

			container := factory.CreateContainerComponent()
			container.AddChild(factory.CreateMessageComponent("Hello Arthur", chattypes.SenderUser))
			container.AddChild(factory.CreateMessageComponent("Hello! How can I help?", chattypes.SenderBot))
			container.AddChild(factory.CreateButtonComponent("Send", nil))

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", factory.GetTheme().Name, container.Render())
			return nil
		},
	}
}

func themeNames() []string {
	kinds := chattypes.ThemeKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}
