package transcoder

import (
	"source.hodakov.me/hdkv/avweb/internal/application"
	"source.hodakov.me/hdkv/avweb/internal/domains"
)

var (
	_ domains.Transcoder = new(Transcoder)
	_ domains.Domain     = new(Transcoder)
)

type Transcoder struct {
	app    *application.App
	binary string
}

func New(app *application.App) *Transcoder {
	return &Transcoder{
		app:    app,
		binary: app.Config().Transcoding.Binary,
	}
}

func (t *Transcoder) ConnectDependencies() error {
	return nil
}

func (t *Transcoder) Start() error {
	return nil
}
