package main

import (
	"context"
	"flag"
	"github.com/aws/aws-lambda-go/lambda"
	echoadapter "github.com/awslabs/aws-lambda-go-api-proxy/echo"
	"github.com/gissleh/poet"
	"github.com/gissleh/poet/adapters/cmudict"
	"github.com/gissleh/poet/adapters/jsonstorage"
	"github.com/gissleh/poet/adapters/sqlitestorage"
	"github.com/gissleh/poet/adapters/templfrontend"
	"github.com/gissleh/poet/adapters/webapi"
	"github.com/gissleh/poet/internal/config"
	"github.com/gissleh/poet/internal/logging"
	"github.com/gissleh/poet/service"
	"go.uber.org/zap"
	"log"
)

var flagConfigFile = flag.String("config", "", "Config file, the environment is used if left out.")

func main() {
	flag.Parse()

	cfg, err := config.Load(*flagConfigFile)
	if err != nil {
		log.Fatalln("Failed to load config:", err)
	}

	logger, err := logging.New(cfg.Log, false)
	if err != nil {
		log.Fatalln("Failed to set up logging:", err)
	}

	dict := poet.NewDictionary()
	if _, err := cmudict.LoadFile(cfg.Dictionary.CMUDictPath, dict, cmudict.Options{}); err != nil {
		logger.Fatal("Failed to load dictionary", zap.Error(err))
	}
	if cfg.Dictionary.UserDictPath != "" {
		_, err := cmudict.LoadFile(cfg.Dictionary.UserDictPath, dict, cmudict.Options{SkipMalformed: true})
		if err != nil {
			logger.Warn("Failed to load user dictionary", zap.Error(err))
		}
	}

	svc := &service.Service{
		Dictionary:         dict,
		Logger:             logger,
		MaxInterpretations: cfg.Analysis.MaxInterpretations,
		ReadOnly:           true,
	}

	// The library is bundled with the function, so it can only be read.
	switch cfg.Storage.Driver {
	case "json":
		storage, err := jsonstorage.Open(cfg.Storage.Path, true)
		if err != nil {
			logger.Fatal("Failed to open json storage", zap.Error(err))
		}

		svc.Storage = storage
	case "sqlite":
		storage, err := sqlitestorage.Open(context.Background(), cfg.Storage.Path, true)
		if err != nil {
			logger.Fatal("Failed to open sqlite storage", zap.Error(err))
		}
		defer storage.Close()

		svc.Storage = storage
	}

	api := webapi.New()
	webapi.Register(api, svc)
	templfrontend.Endpoints(api.Group(""), svc)

	lambda.Start(echoadapter.New(api).ProxyWithContext)
}
