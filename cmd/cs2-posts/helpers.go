package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/battlewithbytes/cs2-posts/internal/config"
	"github.com/battlewithbytes/cs2-posts/internal/dataset"
	"github.com/battlewithbytes/cs2-posts/internal/post"
)

// postFlags are the flags shared by create and export.
type postFlags struct {
	mapID   string
	title   string
	tags    []string
	methods []string
	images  []string
	tip     string
}

func (f *postFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mapID, "map", "", "map ID or short name (e.g. de_dust2 or dust2)")
	cmd.Flags().StringVar(&f.title, "title", "", "post title; opens the interactive form when empty")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "tag (CT, T, A, MID, B, SMOKE, MOLO, FLASH, NADE), repeatable")
	cmd.Flags().StringSliceVar(&f.methods, "method", nil, "method component (THROW, DOUBLE, JUMP, CROUCH, WALK, RUN), repeatable")
	cmd.Flags().StringArrayVar(&f.images, "image", nil, "image file in display order, repeatable")
	cmd.Flags().StringVar(&f.tip, "tip", "", "optional tip")
}

// interactive reports whether the form should collect the post.
func (f *postFlags) interactive() bool {
	return strings.TrimSpace(f.title) == ""
}

// draft builds a draft from the flags. Unknown maps, tags and method
// components are rejected here rather than silently dropped.
func (f *postFlags) draft() (*post.Draft, error) {
	d := post.NewDraft()
	if f.mapID != "" {
		id := strings.ToLower(strings.TrimSpace(f.mapID))
		if !strings.HasPrefix(id, post.MapPrefix) {
			id = post.MapPrefix + id
		}
		if !post.IsMap(id) {
			return nil, fmt.Errorf("unknown map %q (known: %s)", f.mapID, strings.Join(post.Maps, ", "))
		}
		d.MapID = id
	}

	tags, err := normalize(f.tags, post.Sides, post.Sites, post.Utilities)
	if err != nil {
		return nil, fmt.Errorf("--tag: %w", err)
	}
	methods, err := normalize(f.methods, post.MethodComponents)
	if err != nil {
		return nil, fmt.Errorf("--method: %w", err)
	}

	d.Apply(post.Post{MapID: d.MapID, Title: f.title, Tags: tags, Method: methods, Tip: f.tip})
	d.Images = f.images
	return d, nil
}

func normalize(values []string, enums ...[]string) ([]string, error) {
	var out []string
	for _, v := range values {
		v = strings.ToUpper(strings.TrimSpace(v))
		known := false
		for _, enum := range enums {
			for _, e := range enum {
				if e == v {
					known = true
				}
			}
		}
		if !known {
			return nil, fmt.Errorf("unknown value %q", v)
		}
		out = append(out, v)
	}
	return out, nil
}

// loadSite reads the config named by --config.
func loadSite() (*config.Config, *dataset.Site, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, dataset.New(cfg), nil
}

// signalContext is cancelled on SIGINT or SIGTERM so deferred cleanup runs.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// expandArchives replaces each directory argument with the zip files it
// contains, sorted by name.
func expandArchives(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", arg, err)
		}
		var zips []string
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".zip") {
				zips = append(zips, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(zips)
		paths = append(paths, zips...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no archives found")
	}
	return paths, nil
}
