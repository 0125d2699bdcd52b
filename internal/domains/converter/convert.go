package converter

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"source.hodakov.me/hdkv/avweb/internal/domains/converter/dto"
	transcoderDTO "source.hodakov.me/hdkv/avweb/internal/domains/transcoder/dto"
)

// Convert queues a conversion of inputPath to kind. It returns the job ID
// once the job is queued. Bad requests fail here and are never queued; the
// transcoder's own outcome only reaches options.OnComplete.
func (c *Converter) Convert(kind dto.Kind, inputPath string, options *dto.Options) (string, error) {
	if options == nil {
		options = new(dto.Options)
	}

	arguments, outputPath, err := BuildArguments(kind, inputPath, options)
	if err != nil {
		return "", err
	}

	job := transcoderDTO.NewJob(arguments, options.OnComplete)

	c.app.Logger().WithFields(logrus.Fields{
		"job":         job.ID,
		"kind":        kind,
		"source file": inputPath,
		"destination": outputPath,
	}).Info("Queueing conversion")

	err = c.queue.Submit(job)
	if err != nil {
		return "", fmt.Errorf("%w: %w (%w)", ErrConverter, ErrSubmitFailed, err)
	}

	return job.ID, nil
}

func (c *Converter) MP4(inputPath string, options *dto.Options) (string, error) {
	return c.Convert(dto.KindMP4, inputPath, options)
}

func (c *Converter) OGG(inputPath string, options *dto.Options) (string, error) {
	return c.Convert(dto.KindOGG, inputPath, options)
}

func (c *Converter) WebM(inputPath string, options *dto.Options) (string, error) {
	return c.Convert(dto.KindWebM, inputPath, options)
}

func (c *Converter) MP3(inputPath string, options *dto.Options) (string, error) {
	return c.Convert(dto.KindMP3, inputPath, options)
}

func (c *Converter) M4A(inputPath string, options *dto.Options) (string, error) {
	return c.Convert(dto.KindM4A, inputPath, options)
}
