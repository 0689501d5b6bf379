package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"gdx/internal/app"
	"gdx/internal/state"
)

func newPrefsCmd(fv *flagValues) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "List stored preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPrefs(cmd, fv, func(ctx context.Context, s state.Store) error {
				values, err := s.LoadSettings(ctx)
				if err != nil {
					return err
				}
				names := make([]string, 0, len(values))
				for name := range values {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", name, values[name])
				}
				return nil
			})
		},
	}

	get := &cobra.Command{
		Use:   "get <name>",
		Short: "Print one preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPrefs(cmd, fv, func(ctx context.Context, s state.Store) error {
				v, ok, err := s.Get(ctx, args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("%s is not set", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
				return nil
			})
		},
	}

	var ttl time.Duration
	set := &cobra.Command{
		Use:   "set <name> <value>",
		Short: "Store a preference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ttl < 0 {
				return fmt.Errorf("negative ttl %s", ttl)
			}
			return withPrefs(cmd, fv, func(ctx context.Context, s state.Store) error {
				return s.Set(ctx, args[0], args[1], ttl)
			})
		},
	}
	set.Flags().DurationVar(&ttl, "ttl", 0, "Expire the preference after this long (0 = never)")

	unset := &cobra.Command{
		Use:   "unset <name>",
		Short: "Remove a preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPrefs(cmd, fv, func(ctx context.Context, s state.Store) error {
				removed, err := s.Delete(ctx, args[0])
				if err != nil {
					return err
				}
				if !removed {
					fmt.Fprintf(cmd.OutOrStdout(), "%s was not set\n", args[0])
				}
				return nil
			})
		},
	}

	cmd.AddCommand(get, set, unset)
	return cmd
}

func withPrefs(cmd *cobra.Command, fv *flagValues, fn func(context.Context, state.Store) error) error {
	cfg := app.DefaultConfig()
	if err := app.LoadEnv(&cfg); err != nil {
		return err
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = fv.dataDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.NoStore {
		return errors.New("preference store is disabled (GDX_NO_STORE)")
	}

	s, err := state.NewSQLite(cfg.StatePath())
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()
	if err := s.EnsureSchema(ctx); err != nil {
		return err
	}
	return fn(ctx, s)
}
