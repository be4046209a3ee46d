package cmd

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/waritt/goldbooks/internal/config"
	"github.com/waritt/goldbooks/internal/logging"
	"github.com/waritt/goldbooks/internal/ocr"
	"github.com/waritt/goldbooks/internal/server"
	"github.com/waritt/goldbooks/internal/stock"
	"github.com/waritt/goldbooks/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		logging.SetLevel(cfg.Log.Level)

		st, err := store.Open(cfg.DB.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		var feed stock.Feed = stock.None{}
		if cfg.Stock.FeedURL != "" {
			feed = stock.NewHTTPFeed(cfg.Stock.FeedURL, time.Duration(cfg.Stock.TimeoutSeconds)*time.Second)
		}

		var extractor ocr.Extractor
		if cfg.OCR.Endpoint != "" {
			inner := ocr.NewClient(cfg.OCR.Endpoint, cfg.OCR.APIKey, time.Duration(cfg.OCR.TimeoutSeconds)*time.Second)
			extractor, err = ocr.NewCached(inner, cfg.OCR.CacheSize)
			if err != nil {
				return err
			}
		} else {
			extractor = ocr.Unconfigured{}
		}

		srv := server.New(st, feed, extractor, cfg.Server.Addr)
		return srv.ListenAndServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
