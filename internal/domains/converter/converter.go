package converter

import (
	"fmt"

	"source.hodakov.me/hdkv/avweb/internal/application"
	"source.hodakov.me/hdkv/avweb/internal/domains"
)

var (
	_ domains.Converter = new(Converter)
	_ domains.Domain    = new(Converter)
)

type Converter struct {
	app *application.App

	queue domains.Queue
}

func New(app *application.App) *Converter {
	return &Converter{
		app: app,
	}
}

func (c *Converter) ConnectDependencies() error {
	queue, ok := c.app.RetrieveDomain(domains.QueueName).(domains.Queue)
	if !ok {
		return fmt.Errorf(
			"%w: %w (%s)", ErrConverter, ErrConnectDependencies,
			"queue domain interface conversion failed",
		)
	}

	c.queue = queue

	return nil
}

func (c *Converter) Start() error {
	return nil
}
