package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/data-ingestion-approver/lambdas/config"
	"github.com/data-ingestion-approver/lambdas/dynamodb"
	"github.com/data-ingestion-approver/lambdas/handler"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	logger := cfg.NewLogger()

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		logger.WithError(err).Fatal("failed to load AWS config")
	}

	opts := []dynamodb.Option{dynamodb.WithLogger(logger)}
	if cfg.Endpoint != "" {
		opts = append(opts, dynamodb.WithEndpoint(cfg.Endpoint))
	}

	store := dynamodb.New(&awsCfg, cfg.Table, opts...)

	if err := store.Connect(); err != nil {
		logger.WithError(err).Fatal("failed to connect to DynamoDB")
	}

	if err := store.Init(ctx, cfg.SkipSchemaValidation); err != nil {
		logger.WithError(err).Fatal("failed to validate user table")
	}

	h := handler.New(store, handler.WithLogger(logger))

	lambda.Start(h.Handle)
}
