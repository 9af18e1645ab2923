package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/battlewithbytes/cs2-posts/internal/config"
	"github.com/battlewithbytes/cs2-posts/internal/ui"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and write the cs2-posts configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		fmt.Println(ui.Cyan.Render("Posts:     ") + ui.White.Render(cfg.PostsPath()))
		fmt.Println(ui.Cyan.Render("Images:    ") + ui.White.Render(cfg.ImagesPath()))
		fmt.Println(ui.Cyan.Render("Workspace: ") + ui.White.Render(cfg.WorkspacePrefix+"*"))
		fmt.Println()
		if _, err := os.Stat(configPath); err != nil {
			fmt.Println(ui.Dim.Render("Config file: " + configPath + " (not found, using defaults)"))
		} else {
			fmt.Println(ui.Dim.Render("Config file: " + configPath))
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		}
		cfg := config.Default("")
		if err := cfg.Save(configPath); err != nil {
			return err
		}
		fmt.Println(ui.Success("Wrote " + configPath))
		return nil
	},
}
