package main

import (
	"context"

	"source.hodakov.me/hdkv/avweb/internal/application"
	"source.hodakov.me/hdkv/avweb/internal/domains"
	"source.hodakov.me/hdkv/avweb/internal/domains/converter"
	"source.hodakov.me/hdkv/avweb/internal/domains/queue"
	"source.hodakov.me/hdkv/avweb/internal/domains/transcoder"
)

// bootstrap builds the application with every domain connected and started.
func bootstrap(ctx context.Context, flags *globalFlags) (*application.App, error) {
	app := application.New(ctx)

	app.Logger().Debug("Starting avweb...")

	err := app.InitConfig(flags.config)
	if err != nil {
		return nil, err
	}

	if flags.binary != "" {
		app.Config().Transcoding.Binary = flags.binary
	}

	if flags.parallel != 0 {
		app.Config().Transcoding.Parallel = flags.parallel
	}

	app.InitLogger()

	app.RegisterDomain(domains.TranscoderName, transcoder.New(app))
	app.RegisterDomain(domains.QueueName, queue.New(app))
	app.RegisterDomain(domains.ConverterName, converter.New(app))

	err = app.ConnectDependencies()
	if err != nil {
		return nil, err
	}

	err = app.StartDomains()
	if err != nil {
		return nil, err
	}

	return app, nil
}
