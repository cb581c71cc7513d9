package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	bCtx "github.com/mintleaf-xyz/venue/base/ctx"
	"github.com/mintleaf-xyz/venue/base/database/mongoclient"
	"github.com/mintleaf-xyz/venue/base/database/redisclient"
	"github.com/mintleaf-xyz/venue/base/log"
	bValidator "github.com/mintleaf-xyz/venue/base/validator"
	"github.com/mintleaf-xyz/venue/domain"
	"github.com/mintleaf-xyz/venue/domain/marketplace"
	mmiddleware "github.com/mintleaf-xyz/venue/middleware"
	"github.com/mintleaf-xyz/venue/service/cache"
	"github.com/mintleaf-xyz/venue/service/cache/compound"
	"github.com/mintleaf-xyz/venue/service/cache/provider/primitive"
	redisprovider "github.com/mintleaf-xyz/venue/service/cache/provider/redis"
	"github.com/mintleaf-xyz/venue/service/query"
	"github.com/mintleaf-xyz/venue/service/redis"
	activity_delivery "github.com/mintleaf-xyz/venue/stores/activity/delivery/http"
	activity_repository "github.com/mintleaf-xyz/venue/stores/activity/repository"
	activity_usecase "github.com/mintleaf-xyz/venue/stores/activity/usecase"
	asset_delivery "github.com/mintleaf-xyz/venue/stores/asset/delivery/http"
	asset_repository "github.com/mintleaf-xyz/venue/stores/asset/repository"
	asset_usecase "github.com/mintleaf-xyz/venue/stores/asset/usecase"
	auction_delivery "github.com/mintleaf-xyz/venue/stores/auction/delivery/http"
	auction_repository "github.com/mintleaf-xyz/venue/stores/auction/repository"
	auction_usecase "github.com/mintleaf-xyz/venue/stores/auction/usecase"
	ledger_delivery "github.com/mintleaf-xyz/venue/stores/ledger/delivery/http"
	ledger_repository "github.com/mintleaf-xyz/venue/stores/ledger/repository"
	ledger_usecase "github.com/mintleaf-xyz/venue/stores/ledger/usecase"
	listing_delivery "github.com/mintleaf-xyz/venue/stores/listing/delivery/http"
	listing_repository "github.com/mintleaf-xyz/venue/stores/listing/repository"
	listing_usecase "github.com/mintleaf-xyz/venue/stores/listing/usecase"
	offer_delivery "github.com/mintleaf-xyz/venue/stores/offer/delivery/http"
	offer_repository "github.com/mintleaf-xyz/venue/stores/offer/repository"
	offer_usecase "github.com/mintleaf-xyz/venue/stores/offer/usecase"
	paytoken_delivery "github.com/mintleaf-xyz/venue/stores/paytoken/delivery/http"
	paytoken_repository "github.com/mintleaf-xyz/venue/stores/paytoken/repository"
	paytoken_usecase "github.com/mintleaf-xyz/venue/stores/paytoken/usecase"
	royalty_delivery "github.com/mintleaf-xyz/venue/stores/royalty/delivery/http"
	royalty_repository "github.com/mintleaf-xyz/venue/stores/royalty/repository"
	royalty_usecase "github.com/mintleaf-xyz/venue/stores/royalty/usecase"
	settings_delivery "github.com/mintleaf-xyz/venue/stores/settings/delivery/http"
	settings_repository "github.com/mintleaf-xyz/venue/stores/settings/repository"
	settings_usecase "github.com/mintleaf-xyz/venue/stores/settings/usecase"
	settlement_usecase "github.com/mintleaf-xyz/venue/stores/settlement/usecase"
)

func init() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "path to config file")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middL.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := bCtx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient)

	// init redis backed cache
	context.Info("init redis cache")
	redisURI := viper.GetString("redis.uri")
	redisPwd := viper.GetString("redis.password")
	redisMaxIdle := viper.GetInt("redis.maxIdle")
	redisMaxActive := viper.GetInt("redis.maxActive")
	redisPool := redisclient.MustConnectRedis(redisURI, redisPwd, redisMaxIdle, redisMaxActive)
	redisService := redis.New(redisPool)

	localCacheMB := viper.GetInt("cache.localSizeMB")
	activityCache := cache.New(cache.ServiceConfig{
		Ttl: viper.GetDuration("cache.activityTtl"),
		Pfx: "activities",
		Cache: compound.NewCompound(
			primitive.NewPrimitive(localCacheMB),
			redisprovider.NewRedis(redisService),
		),
	})

	// construct repository, usecase and delivery
	contractRepo := asset_repository.NewContractRepo(q)
	holdingRepo := asset_repository.NewHoldingRepo(q)
	ledgerRepo := ledger_repository.New(q)
	paytokenRepo := paytoken_repository.New(q)
	royaltyRepo := royalty_repository.New(q)
	settingsRepo := settings_repository.New(q)
	activityRepo := activity_repository.New(q)
	auctionRepo := auction_repository.NewAuctionRepo(q)
	bidRepo := auction_repository.NewBidRepo(q)
	listingRepo := listing_repository.New(q)
	offerRepo := offer_repository.New(q)

	seedSettings(context, settingsRepo)

	assetUC := asset_usecase.NewAdapter(&asset_usecase.AdapterCfg{
		ContractRepo: contractRepo,
		HoldingRepo:  holdingRepo,
	})
	ledgerUC := ledger_usecase.New(&ledger_usecase.LedgerUseCaseCfg{
		Repo: ledgerRepo,
	})
	paytokenUC := paytoken_usecase.New(&paytoken_usecase.PayTokenUseCaseCfg{
		Repo:         paytokenRepo,
		SettingsRepo: settingsRepo,
	})
	royaltyUC := royalty_usecase.New(&royalty_usecase.RoyaltyUseCaseCfg{
		Repo:         royaltyRepo,
		Asset:        assetUC,
		SettingsRepo: settingsRepo,
	})
	settingsUC := settings_usecase.New(&settings_usecase.SettingsUseCaseCfg{
		Repo: settingsRepo,
	})
	settlementUC := settlement_usecase.New(&settlement_usecase.SettlementUseCaseCfg{
		Ledger:       ledgerUC,
		Royalty:      royaltyUC,
		SettingsRepo: settingsRepo,
	})
	activityUC := activity_usecase.New(&activity_usecase.ActivityUseCaseCfg{
		ActivityRepo: activityRepo,
		Cache:        activityCache,
	})
	auctionUC := auction_usecase.New(&auction_usecase.AuctionUseCaseCfg{
		AuctionRepo:  auctionRepo,
		BidRepo:      bidRepo,
		Asset:        assetUC,
		Ledger:       ledgerUC,
		PayToken:     paytokenUC,
		Settlement:   settlementUC,
		SettingsRepo: settingsRepo,
		ActivityRepo: activityRepo,
	})
	listingUC := listing_usecase.New(&listing_usecase.ListingUseCaseCfg{
		ListingRepo:  listingRepo,
		Asset:        assetUC,
		Ledger:       ledgerUC,
		PayToken:     paytokenUC,
		Settlement:   settlementUC,
		ActivityRepo: activityRepo,
	})
	offerUC := offer_usecase.New(&offer_usecase.OfferUseCaseCfg{
		OfferRepo:    offerRepo,
		ListingRepo:  listingRepo,
		Asset:        assetUC,
		Ledger:       ledgerUC,
		PayToken:     paytokenUC,
		Settlement:   settlementUC,
		SettingsRepo: settingsRepo,
		ActivityRepo: activityRepo,
	})

	auction_delivery.New(e, auctionUC)
	listing_delivery.New(e, listingUC)
	offer_delivery.New(e, offerUC)
	paytoken_delivery.New(e, paytokenUC)
	royalty_delivery.New(e, royaltyUC)
	settings_delivery.New(e, settingsUC)
	ledger_delivery.New(e, ledgerUC, paytokenUC)
	asset_delivery.New(e, assetUC)
	activity_delivery.New(e, activityUC)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := bCtx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}

// seedSettings writes the initial venue settings record on a fresh
// database. An existing record always wins over config.
func seedSettings(c bCtx.Ctx, repo marketplace.SettingsRepo) {
	if _, err := repo.Get(c); err == nil {
		return
	} else if err != domain.ErrNotFound {
		log.Log().WithField("err", err).Panic("read settings failed")
	}

	settings := &marketplace.Settings{
		Owner:            domain.Address(viper.GetString("venue.owner")).ToLower(),
		FeeRecipient:     domain.Address(viper.GetString("venue.feeRecipient")).ToLower(),
		FeeRate:          viper.GetInt64("venue.feeRate"),
		MinBidIncrement:  viper.GetString("venue.minBidIncrement"),
		EscrowOfferFunds: viper.GetBool("venue.escrowOfferFunds"),
	}
	if err := repo.Upsert(c, settings); err != nil {
		log.Log().WithField("err", err).Panic("seed settings failed")
	}
	c.WithField("owner", settings.Owner).Info("seeded venue settings")
}
