package dto

import transcoderDTO "source.hodakov.me/hdkv/avweb/internal/domains/transcoder/dto"

type Kind string

const (
	KindMP4  Kind = "mp4"
	KindOGG  Kind = "ogg"
	KindWebM Kind = "webm"
	KindMP3  Kind = "mp3"
	KindM4A  Kind = "m4a"
)

// Options are the optional parts of a conversion request. All fields may
// be left empty.
type Options struct {
	// ExtraArgs are appended after the preset arguments.
	ExtraArgs []string
	// OutputPath overrides the input path with the kind's extension.
	OutputPath string
	OnComplete func(result *transcoderDTO.Result)
}
