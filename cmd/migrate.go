package cmd

import (
	"context"
	"fmt"

	"quiz_scoring_backend/internal/config"
	"quiz_scoring_backend/internal/repository"
	"quiz_scoring_backend/pkg/database"
	"quiz_scoring_backend/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables and optionally seed the question bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger.InitLogger(cfg)
		defer logger.Log.Sync()

		db, err := database.InitDB(&cfg.Database, false)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		if err := database.Migrate(db); err != nil {
			return err
		}

		seed, _ := cmd.Flags().GetString("seed")
		if seed == "" {
			return nil
		}

		questions, err := repository.LoadQuestionBank(seed)
		if err != nil {
			return err
		}
		if err := repository.NewQuestionRepository(db).Upsert(cmd.Context(), questions); err != nil {
			return fmt.Errorf("seed questions: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d questions from %s\n", len(questions), seed)

		ids := make([]string, len(questions))
		for i, q := range questions {
			ids[i] = q.ID
		}
		invalidateQuestionCache(cmd.Context(), cfg, ids)
		return nil
	},
}

func init() {
	migrateCmd.Flags().String("seed", "", "YAML question bank to upsert after migration")
}

// invalidateQuestionCache 种子数据已写入，缓存清理失败只记录警告
func invalidateQuestionCache(ctx context.Context, cfg *config.Config, ids []string) {
	rdb, err := database.InitRedis(ctx, &cfg.Redis)
	if err != nil {
		logger.Log.Warn("question cache not invalidated, redis unavailable", zap.Error(err))
		return
	}
	if rdb == nil {
		return
	}
	defer rdb.Close()

	cache := repository.NewCachedQuestionRepository(nil, rdb, cfg.Catalog.CacheTTL())
	if err := cache.Invalidate(ctx, ids...); err != nil {
		logger.Log.Warn("question cache not invalidated", zap.Error(err))
		return
	}
	logger.Log.Info("question cache invalidated", zap.Int("questions", len(ids)))
}
