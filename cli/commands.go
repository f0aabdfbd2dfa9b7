// Package cli provides the Cobra-based CLI for storefront.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"storefront/config"
	"storefront/domain"
	"storefront/feed"
	"storefront/logger"
	"storefront/util"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app is the composition root: it owns the session that every command reads
// and mutates.
type app struct {
	v         *viper.Viper
	session   *Session
	newSource func(cfg *config.Config) (domain.FeedSource, error)
}

func newApp() *app {
	v := viper.New()
	config.SetDefaults(v)
	return &app{
		v: v,
		newSource: func(cfg *config.Config) (domain.FeedSource, error) {
			return feed.NewSource(cfg.FeedKind, cfg.FeedLocation(), cfg.FeedTimeout)
		},
	}
}

func (a *app) ctx(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.session != nil {
		ctx = a.session.logContext(ctx)
	}
	return ctx
}

// skipsSession reports commands that only print cobra's own help or shell
// completion and must not fetch the feed.
func skipsSession(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

func (a *app) log(cmd *cobra.Command) *zap.Logger {
	return logger.FromCtx(a.ctx(cmd))
}

// start loads configuration, initialises logging and fills a new session from
// the configured feed. It runs once; later commands reuse the session.
func (a *app) start(cmd *cobra.Command) error {
	// tests and the shell reuse an existing session
	if a.session != nil || skipsSession(cmd) {
		return nil
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		return err
	}

	sess := NewSession(util.NewSessionID(), cfg.ScrollThreshold, cfg.ScrollRate, cfg.ScrollBurst)
	sess.Feed = cfg.FeedKind
	ctx := sess.logContext(a.ctx(cmd))
	log := logger.FromCtx(ctx)
	log.Debug("config loaded",
		zap.String("env", cfg.Env),
		zap.String("feed_location", cfg.FeedLocation()),
		zap.Duration("feed_timeout", cfg.FeedTimeout),
	)

	src, err := a.newSource(cfg)
	if err != nil {
		return err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, cfg.FeedTimeout)
	defer cancel()

	start := time.Now()
	products, err := src.Fetch(fetchCtx)
	if err != nil {
		log.Error("feed fetch failed", zap.Error(err))
		return errors.Wrap(err, "load catalog")
	}
	sess.Catalog.Load(products)

	log.Info("catalog loaded",
		zap.Int("products", len(products)),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	a.session = sess
	return nil
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "storefront",
		Short:        "Browse a product catalog and build a cart",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.start(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String(config.KeyConfig, "", "config file")
	pf.String(config.KeyEnvFile, ".env", "dotenv file with STOREFRONT_* defaults")
	pf.String(config.KeyEnv, "development", "environment: development|production")
	pf.String(config.KeyLogLevel, "info", "log level")
	pf.String(config.KeyFeed, "http", "feed source: http|file")
	pf.String(config.KeyFeedURL, feed.DefaultURL, "product feed URL")
	pf.String(config.KeyFeedFile, "data/products.json", "product feed file (JSON array or NDJSON)")
	pf.Duration(config.KeyFeedTimeout, 10*time.Second, "feed fetch timeout")
	pf.Int(config.KeyScrollThreshold, 500, "distance from the bottom in px that loads more products")
	pf.Float64(config.KeyScrollRate, 20, "scroll checks per second, 0 for unlimited")
	pf.Int(config.KeyScrollBurst, 5, "scroll checks allowed in a burst")

	for _, key := range []string{
		config.KeyConfig, config.KeyEnvFile, config.KeyEnv, config.KeyLogLevel,
		config.KeyFeed, config.KeyFeedURL, config.KeyFeedFile, config.KeyFeedTimeout,
		config.KeyScrollThreshold, config.KeyScrollRate, config.KeyScrollBurst,
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(key))
	}

	// list
	var lOutput string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show the visible products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderCatalog(cmd.OutOrStdout(), a.session.Catalog, lOutput)
		},
	}
	listCmd.Flags().StringVar(&lOutput, "output", "text", "output format: text|json")
	rootCmd.AddCommand(listCmd)

	// search
	searchCmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Filter products by title; no query clears the filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := strings.Join(args, " ")
			a.session.Catalog.SetSearchQuery(q)
			a.log(cmd).Debug("search applied",
				zap.String("query", q),
				zap.Int("matches", a.session.Catalog.Matches()),
			)
			return renderCatalog(cmd.OutOrStdout(), a.session.Catalog, "text")
		},
	}
	rootCmd.AddCommand(searchCmd)

	// sort
	sortCmd := &cobra.Command{
		Use:   "sort <price|rating> <asc|desc|none> | sort <price-asc|price-desc|rating-asc|rating-desc>",
		Short: "Sort products by price or rating",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				kind domain.SortKind
				dir  domain.SortDirection
				err  error
			)
			if len(args) == 1 {
				kind, dir, err = domain.ParseSortOption(args[0])
			} else {
				kind, err = domain.ParseSortKind(args[0])
				if err == nil {
					dir, err = domain.ParseSortDirection(args[1])
				}
			}
			if err != nil {
				return err
			}
			a.session.Catalog.SetSort(kind, dir)
			a.log(cmd).Debug("sort applied", zap.Stringer("kind", kind), zap.Stringer("direction", dir))
			return renderCatalog(cmd.OutOrStdout(), a.session.Catalog, "text")
		},
	}
	rootCmd.AddCommand(sortCmd)

	// more
	moreCmd := &cobra.Command{
		Use:   "more",
		Short: "Reveal the next page of products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.session.Catalog.LoadMore() {
				fmt.Fprintln(cmd.OutOrStdout(), "No more products to load.")
			}
			a.log(cmd).Debug("load more", zap.Int("visible_count", a.session.Catalog.VisibleCount()))
			return renderCatalog(cmd.OutOrStdout(), a.session.Catalog, "text")
		},
	}
	rootCmd.AddCommand(moreCmd)

	// scroll
	var sThreshold int
	scrollCmd := &cobra.Command{
		Use:   "scroll <distance-px>...",
		Short: "Report scroll positions as distances from the bottom of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			log := a.log(cmd)
			for _, arg := range args {
				distance, err := strconv.Atoi(arg)
				if err != nil || distance < 0 {
					return errors.Errorf("invalid scroll distance: %q", arg)
				}
				accepted, loaded := a.session.Scroll(distance, sThreshold)
				switch {
				case !accepted:
					fmt.Fprintf(w, "scroll %dpx: dropped (rate limited)\n", distance)
				case loaded:
					fmt.Fprintf(w, "scroll %dpx: loaded more (%d visible)\n", distance, len(a.session.Catalog.Visible()))
				default:
					fmt.Fprintf(w, "scroll %dpx: no change\n", distance)
				}
				log.Debug("scroll signal",
					zap.Int("distance_px", distance),
					zap.Bool("accepted", accepted),
					zap.Bool("loaded", loaded),
				)
			}
			return renderCatalog(w, a.session.Catalog, "text")
		},
	}
	scrollCmd.Flags().IntVar(&sThreshold, "threshold", 0, "override the scroll threshold in px")
	rootCmd.AddCommand(scrollCmd)

	// show
	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a product card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := a.session.Catalog.Get(id)
			if err != nil {
				return err
			}
			renderCard(cmd.OutOrStdout(), p)
			return nil
		},
	}
	rootCmd.AddCommand(showCmd)

	// add
	addCmd := &cobra.Command{
		Use:   "add <id>...",
		Short: "Add products to the cart",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			log := a.log(cmd)
			for _, arg := range args {
				id, err := parseID(arg)
				if err != nil {
					return err
				}
				p, err := a.session.AddToCart(id)
				if err != nil {
					log.Error("add to cart failed", zap.Int("product_id", id), zap.Error(err))
					return err
				}
				log.Info("item added to cart",
					zap.Int("product_id", p.ID),
					zap.Int("cart_items", a.session.Cart.TotalItems()),
				)
				fmt.Fprintf(w, "Added %s (%s)\n", p.Title, formatPrice(p.Price, p.Currency))
			}
			if cur := a.session.Cart.Currencies(); len(cur) > 1 {
				log.Warn("cart total mixes currencies", zap.Strings("currencies", cur))
			}
			renderCartSummary(w, a.session.Cart)
			return nil
		},
	}
	rootCmd.AddCommand(addCmd)

	// cart
	var cOutput string
	cartCmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the cart and its totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderCart(cmd.OutOrStdout(), a.session.Cart, cOutput)
		},
	}
	cartCmd.Flags().StringVar(&cOutput, "output", "text", "output format: text|json")
	rootCmd.AddCommand(cartCmd)

	// shell
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()
			r := bufio.NewReader(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "storefront> ")
				line, err := r.ReadString('\n')
				line = strings.TrimSpace(line)
				if line == "exit" || line == "quit" {
					return nil
				}
				if line != "" {
					fields := strings.Fields(line)
					if fields[0] == "shell" {
						fmt.Fprintln(cmd.ErrOrStderr(), "already in shell")
					} else {
						root.SetArgs(fields)
						if err := root.Execute(); err != nil {
							fmt.Fprintln(cmd.ErrOrStderr(), err)
						}
						root.SetArgs(nil)
						resetFlags(root)
					}
				}
				if err != nil {
					return nil
				}
			}
		},
	}
	rootCmd.AddCommand(shellCmd)

	return rootCmd
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Errorf("invalid product id: %q", s)
	}
	return id, nil
}

// resetFlags restores subcommand flags to their defaults so values given on one
// shell line do not leak into the next.
func resetFlags(cmd *cobra.Command) {
	for _, c := range cmd.Commands() {
		c.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
		resetFlags(c)
	}
}

// Execute runs the storefront CLI.
func Execute() error {
	defer logger.Sync()
	return newRootCmd(newApp()).ExecuteContext(context.Background())
}
