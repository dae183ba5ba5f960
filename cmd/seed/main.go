package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/d60-Lab/natural-botanicals/config"
	"github.com/d60-Lab/natural-botanicals/internal/model"
	"github.com/d60-Lab/natural-botanicals/internal/repository"
	"github.com/d60-Lab/natural-botanicals/internal/service"
	"github.com/d60-Lab/natural-botanicals/pkg/database"
	"github.com/d60-Lab/natural-botanicals/pkg/logger"
)

// 示例数据
var samples = []struct {
	kind model.PostKind
	in   service.PostInput
}{
	{model.KindBlog, service.PostInput{Title: "Apples", Body: "Healthy fruit", Author: "Lyonchar"}},
	{model.KindBlog, service.PostInput{Title: "Carrots", Body: "Crunchy, sweet and full of beta-carotene.", Author: "Lyonchar"}},
	{model.KindBlog, service.PostInput{Title: "Pineapples", Body: "Bromelain makes pineapple a natural digestive aid.", Author: "Natural Botanicals"}},
	{model.KindArticle, service.PostInput{Title: "Growing Oranges at Home", Body: "Citrus trees need full sun and well drained soil.", Author: "Natural Botanicals"}},
	{model.KindArticle, service.PostInput{Title: "Seasonal Produce Guide", Body: "What to buy each month for the best flavour.", Author: "Natural Botanicals"}},
}

var (
	cfgFile string
	reset   bool
)

var rootCmd = &cobra.Command{
	Use:          "seed",
	Short:        "Populate the database with sample posts and the admin account",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default ./config/config.yaml)")
	rootCmd.Flags().BoolVar(&reset, "reset", false, "delete existing posts before seeding")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadFrom(cfgFile)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log.Level, "console"); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.InitDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()
	if err := repository.InitSchema(db); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	auth := service.NewAuthService(repository.NewUserRepository(db))
	if err := auth.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.DisplayName); err != nil {
		return err
	}

	posts := service.NewPostService(repository.NewPostRepository(db), nil)
	if reset {
		for _, kind := range []model.PostKind{model.KindBlog, model.KindArticle} {
			existing, err := posts.List(ctx, kind)
			if err != nil {
				return err
			}
			for _, p := range existing {
				if err := posts.Delete(ctx, kind, p.ID); err != nil {
					return err
				}
			}
			logger.Info("posts cleared", zap.String("kind", string(kind)), zap.Int("count", len(existing)))
		}
	}

	for _, s := range samples {
		p, err := posts.Create(ctx, s.kind, s.in)
		if err != nil {
			return fmt.Errorf("seed %q: %w", s.in.Title, err)
		}
		logger.Info("post seeded", zap.String("kind", string(p.Kind)), zap.Uint("id", p.ID), zap.String("title", p.Title))
	}
	return nil
}
